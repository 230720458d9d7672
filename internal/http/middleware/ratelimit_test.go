package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func setupRateLimits(t *testing.T) (*RateLimitConfig, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cleanup := func() {
		redisClient.Close()
		mr.Close()
	}

	return NewRateLimitConfig(redisClient), cleanup
}

func limitedRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/courses/upload", nil)
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestRateLimitMiddleware_HeadersMatchLimiterCapacity(t *testing.T) {
	rlc, cleanup := setupRateLimits(t)
	defer cleanup()

	handler := rlc.RateLimitedHandler("upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, limitedRequest("7"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// The limit header comes from the limiter itself, not a parallel table.
	want := strconv.FormatInt(rlc.limiters["upload"].Capacity(), 10)
	if got := rec.Header().Get("X-RateLimit-Limit"); got != want {
		t.Errorf("expected X-RateLimit-Limit %s, got %q", want, got)
	}
	if rec.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("expected X-RateLimit-Remaining to be set")
	}
}

func TestRateLimitMiddleware_DeniesOverCapacity(t *testing.T) {
	rlc, cleanup := setupRateLimits(t)
	defer cleanup()

	handler := rlc.RateLimitedHandler("upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	capacity := rlc.limiters["upload"].Capacity()
	for i := int64(0); i < capacity; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, limitedRequest("7"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, limitedRequest("7"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after %d requests, got %d", capacity, rec.Code)
	}
}

func TestRateLimitMiddleware_RequiresAuthentication(t *testing.T) {
	rlc, cleanup := setupRateLimits(t)
	defer cleanup()

	handler := rlc.RateLimitedHandler("upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/courses/upload", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without an authenticated user, got %d", rec.Code)
	}
}
