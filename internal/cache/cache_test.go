package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/eduportal/resources-service/internal/types"
)

type countingStore struct {
	courses    []types.Course
	count      int
	listCalls  int
	countCalls int
}

func (s *countingStore) ListActiveCourses() ([]types.Course, error) {
	s.listCalls++
	return s.courses, nil
}

func (s *countingStore) CountActiveResources(resourceType types.ResourceType) (int, error) {
	s.countCalls++
	return s.count, nil
}

func setupCache(t *testing.T, store Store) (*CacheService, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cleanup := func() {
		redisClient.Close()
		mr.Close()
	}

	return NewCacheService(store, redisClient), cleanup
}

func TestCacheService_CoursesReadThrough(t *testing.T) {
	store := &countingStore{courses: []types.Course{{ID: "1", Name: "Intro to Testing", Code: "CS999"}}}
	svc, cleanup := setupCache(t, store)
	defer cleanup()

	ctx := context.Background()

	first, err := svc.GetActiveCourses(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetActiveCourses(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.listCalls != 1 {
		t.Errorf("expected one storage hit, got %d", store.listCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Code != "CS999" {
		t.Errorf("expected cached list to match, got %+v", second)
	}
}

func TestCacheService_Invalidation(t *testing.T) {
	store := &countingStore{}
	svc, cleanup := setupCache(t, store)
	defer cleanup()

	ctx := context.Background()

	svc.GetActiveCourses(ctx)
	svc.InvalidateCourseCaches(ctx)
	svc.GetActiveCourses(ctx)

	if store.listCalls != 2 {
		t.Errorf("expected a fresh fetch after invalidation, got %d storage hits", store.listCalls)
	}
}

func TestCacheService_CountBucketsAreSeparate(t *testing.T) {
	store := &countingStore{count: 7}
	svc, cleanup := setupCache(t, store)
	defer cleanup()

	ctx := context.Background()

	if _, err := svc.GetResourceCount(ctx, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetResourceCount(ctx, types.ResourceTypeVideo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetResourceCount(ctx, types.ResourceTypeVideo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// all and video are distinct keys; the repeat video read is cached.
	if store.countCalls != 2 {
		t.Errorf("expected 2 storage hits, got %d", store.countCalls)
	}
}
