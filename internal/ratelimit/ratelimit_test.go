package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
		DB:   0,
	})

	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Failed to connect to test Redis: %v", err)
	}

	cleanup := func() {
		redisClient.Close()
		mr.Close()
	}

	return redisClient, cleanup
}

func TestLimiter_Allow(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	// Upload budget: 5 submissions per minute.
	limiter := NewLimiter(redisClient, 5, 5)

	ctx := context.Background()
	userID := "42"
	action := "upload"

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, userID, action)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("Expected submission %d to be allowed", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, userID, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("Expected submission to be denied after budget exhausted")
	}

	remaining, err := limiter.GetRemaining(ctx, userID, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("Expected 0 remaining tokens, got %d", remaining)
	}
}

func TestLimiter_ActionsAreIndependent(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(redisClient, 3, 3)

	ctx := context.Background()
	userID := "42"

	for i := 0; i < 3; i++ {
		limiter.Allow(ctx, userID, "upload")
	}

	// Exhausting uploads must not consume the write budget.
	allowed, err := limiter.Allow(ctx, userID, "write")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("Expected write action to still be allowed")
	}
}

func TestLimiter_Reset(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewLimiter(redisClient, 5, 5)

	ctx := context.Background()
	userID := "42"
	action := "upload"

	for i := 0; i < 5; i++ {
		limiter.Allow(ctx, userID, action)
	}

	err := limiter.Reset(ctx, userID, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	remaining, err := limiter.GetRemaining(ctx, userID, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if remaining != 5 {
		t.Fatalf("Expected 5 remaining tokens after reset, got %d", remaining)
	}
}
