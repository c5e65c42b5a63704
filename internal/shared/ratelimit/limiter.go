package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited signals the caller exceeded the allowed attempts for the window.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrRedisUnavailable wraps transport failures talking to Redis.
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// Limiter enforces fixed-window rate limits backed by Redis counters.
type Limiter struct {
	redis redis.UniversalClient
}

// New creates a rate Limiter backed by the given Redis client.
func New(redisClient redis.UniversalClient) *Limiter {
	return &Limiter{redis: redisClient}
}

// Allow increments the counter for key and reports whether the caller is
// still within max attempts for the window. The remaining window duration
// is returned so callers can populate Retry-After.
func (l *Limiter) Allow(ctx context.Context, key string, max int, window time.Duration) (bool, time.Duration, error) {
	count, err := l.redis.Incr(ctx, counterKey(key)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, counterKey(key), window).Err(); err != nil {
			return false, 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	if count > int64(max) {
		ttl, err := l.redis.TTL(ctx, counterKey(key)).Result()
		if err != nil {
			ttl = window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}

// Reset clears the counter for key. Called after a successful login to
// stop a prior burst of failures from blocking the account.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, counterKey(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Attempts returns the current counter value for key.
// Missing keys return zero.
func (l *Limiter) Attempts(ctx context.Context, key string) (int, error) {
	count, err := l.redis.Get(ctx, counterKey(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}

func counterKey(key string) string {
	return "ratelimit:" + key
}
