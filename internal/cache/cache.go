package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/eduportal/resources-service/internal/types"
)

// Store is the slice of the row store the cache fronts.
type Store interface {
	ListActiveCourses() ([]types.Course, error)
	CountActiveResources(resourceType types.ResourceType) (int, error)
}

// CacheService puts a redis read-through in front of the hot list and count
// queries the portal's landing pages hammer.
type CacheService struct {
	storage Store
	redis   *redis.Client
}

func NewCacheService(storage Store, redisClient *redis.Client) *CacheService {
	return &CacheService{
		storage: storage,
		redis:   redisClient,
	}
}

// Cache key patterns
const (
	ActiveCoursesKey = "courses:active"
	ResourceCountKey = "resources:count:%s" // resources:count:<type or all>
)

// Cache durations
const (
	CoursesCacheDuration = 1 * time.Minute
	CountsCacheDuration  = 2 * time.Minute
)

// GetActiveCourses returns the cached active course list or fetches it.
func (c *CacheService) GetActiveCourses(ctx context.Context) ([]types.Course, error) {
	cached, err := c.redis.Get(ctx, ActiveCoursesKey).Result()
	if err == nil {
		var courses []types.Course
		if err := json.Unmarshal([]byte(cached), &courses); err == nil {
			return courses, nil
		}
	}

	courses, err := c.storage.ListActiveCourses()
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(courses)
	c.redis.Set(ctx, ActiveCoursesKey, data, CoursesCacheDuration)

	return courses, nil
}

// GetResourceCount returns the cached active resource count for a type, or
// for everything when resourceType is empty.
func (c *CacheService) GetResourceCount(ctx context.Context, resourceType types.ResourceType) (int, error) {
	key := fmt.Sprintf(ResourceCountKey, countBucket(resourceType))

	cached, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var count int
		if err := json.Unmarshal([]byte(cached), &count); err == nil {
			return count, nil
		}
	}

	count, err := c.storage.CountActiveResources(resourceType)
	if err != nil {
		return 0, err
	}

	data, _ := json.Marshal(count)
	c.redis.Set(ctx, key, data, CountsCacheDuration)

	return count, nil
}

// InvalidateCourseCaches drops the course list after a create/update/archive.
func (c *CacheService) InvalidateCourseCaches(ctx context.Context) {
	c.redis.Del(ctx, ActiveCoursesKey)
}

// InvalidateResourceCaches drops the counts after uploads or deletes.
func (c *CacheService) InvalidateResourceCaches(ctx context.Context) {
	for _, bucket := range []string{"all", "material", "video"} {
		c.redis.Del(ctx, fmt.Sprintf(ResourceCountKey, bucket))
	}
}

func countBucket(resourceType types.ResourceType) string {
	if resourceType == "" {
		return "all"
	}
	return string(resourceType)
}
