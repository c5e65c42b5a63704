package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheManager(client), mr
}

func TestCacheSetGet(t *testing.T) {
	cm, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cm.Set(ctx, "greeting", "hello", time.Minute))

	val, err := cm.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", val)
}

func TestCacheGetMissing(t *testing.T) {
	cm, _ := newTestCache(t)

	_, err := cm.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCacheDelete(t *testing.T) {
	cm, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cm.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, cm.Delete(ctx, "k"))

	_, err := cm.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCacheExpiration(t *testing.T) {
	cm, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cm.Set(ctx, "k", "v", 30*time.Second))
	mr.FastForward(31 * time.Second)

	_, err := cm.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCacheJSONRoundTrip(t *testing.T) {
	cm, _ := newTestCache(t)
	ctx := context.Background()

	type profile struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}

	in := profile{ID: 42, Email: "jane@example.com"}
	require.NoError(t, cm.SetJSON(ctx, "user:jane@example.com", in, time.Minute))

	var out profile
	require.NoError(t, cm.GetJSON(ctx, "user:jane@example.com", &out))
	assert.Equal(t, in, out)
}

func TestCacheGetJSONMissing(t *testing.T) {
	cm, _ := newTestCache(t)

	var out map[string]interface{}
	err := cm.GetJSON(context.Background(), "missing", &out)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
