package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestLimiterAllowWithinLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, retryAfter, err := limiter.Allow(ctx, "uid:1", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
		assert.Zero(t, retryAfter)
	}
}

func TestLimiterBlocksOverLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := limiter.Allow(ctx, "uid:1", 5, time.Minute)
		require.NoError(t, err)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "uid:1", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestLimiterWindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _, _ = limiter.Allow(ctx, "uid:1", 5, time.Minute)
	}

	mr.FastForward(time.Minute + time.Second)

	allowed, _, err := limiter.Allow(ctx, "uid:1", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "counter should reset after the window passes")
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _, _ = limiter.Allow(ctx, "uid:1", 5, time.Minute)
	}

	allowed, _, err := limiter.Allow(ctx, "uid:2", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiterReset(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _, _ = limiter.Allow(ctx, "uid:1", 5, time.Minute)
	}
	require.NoError(t, limiter.Reset(ctx, "uid:1"))

	attempts, err := limiter.Attempts(ctx, "uid:1")
	require.NoError(t, err)
	assert.Zero(t, attempts)

	allowed, _, err := limiter.Allow(ctx, "uid:1", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiterRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	mr.Close()

	_, _, err := limiter.Allow(context.Background(), "uid:1", 5, time.Minute)
	assert.ErrorIs(t, err, ErrRedisUnavailable)
}
