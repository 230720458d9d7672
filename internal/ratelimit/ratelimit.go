package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter is a redis-backed token bucket, keyed per user and action. Upload
// submissions get a much smaller budget than plain writes since each one can
// move hundreds of megabytes.
type Limiter struct {
	redis    *redis.Client
	capacity int64
	refill   int64 // tokens refilled per window
	window   time.Duration
}

func NewLimiter(redisClient *redis.Client, capacity, refillRate int64) *Limiter {
	return &Limiter{
		redis:    redisClient,
		capacity: capacity,
		refill:   refillRate,
		window:   time.Minute,
	}
}

// Lua keeps the read-refill-consume sequence atomic under concurrent
// requests from the same user.
const consumeScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local refill_rate = tonumber(ARGV[2])
	local window = tonumber(ARGV[3])
	local now = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local tokens = tonumber(bucket[1]) or capacity
	local last_refill = tonumber(bucket[2]) or now

	local time_passed = now - last_refill
	local tokens_to_add = math.floor((time_passed / window) * refill_rate)

	if tokens_to_add > 0 then
		tokens = math.min(capacity, tokens + tokens_to_add)
		last_refill = now
	end

	if tokens > 0 then
		tokens = tokens - 1
		redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
		redis.call('EXPIRE', key, window * 2)
		return 1
	else
		redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
		redis.call('EXPIRE', key, window * 2)
		return 0
	end
`

const remainingScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local refill_rate = tonumber(ARGV[2])
	local window = tonumber(ARGV[3])
	local now = tonumber(ARGV[4])

	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local tokens = tonumber(bucket[1]) or capacity
	local last_refill = tonumber(bucket[2]) or now

	local time_passed = now - last_refill
	local tokens_to_add = math.floor((time_passed / window) * refill_rate)

	if tokens_to_add > 0 then
		tokens = math.min(capacity, tokens + tokens_to_add)
	end

	return tokens
`

// Capacity reports the bucket size, for rate-limit response headers.
func (l *Limiter) Capacity() int64 {
	return l.capacity
}

func (l *Limiter) key(userID, action string) string {
	return fmt.Sprintf("throttle:%s:%s", userID, action)
}

// Allow consumes one token for the user's action, reporting whether the
// request may proceed.
func (l *Limiter) Allow(ctx context.Context, userID, action string) (bool, error) {
	now := time.Now().Unix()
	result, err := l.redis.Eval(ctx, consumeScript, []string{l.key(userID, action)},
		l.capacity, l.refill, int64(l.window.Seconds()), now).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type from rate limit script")
	}

	return allowed == 1, nil
}

// GetRemaining reports the tokens left for the user's action.
func (l *Limiter) GetRemaining(ctx context.Context, userID, action string) (int64, error) {
	now := time.Now().Unix()
	result, err := l.redis.Eval(ctx, remainingScript, []string{l.key(userID, action)},
		l.capacity, l.refill, int64(l.window.Seconds()), now).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get remaining tokens: %w", err)
	}

	remaining, ok := result.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected result type from remaining tokens script")
	}

	return remaining, nil
}

// Reset clears the bucket for a user's action.
func (l *Limiter) Reset(ctx context.Context, userID, action string) error {
	return l.redis.Del(ctx, l.key(userID, action)).Err()
}
