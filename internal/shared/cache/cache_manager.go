package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/utils"
)

// ErrKeyNotFound is returned when a cache key does not exist.
var ErrKeyNotFound = errors.New("cache key not found")

type CacheManager struct {
	client *redis.Client
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{client: client}
}

func (cm *CacheManager) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	err := cm.client.Set(ctx, key, value, expiration).Err()
	if err != nil {
		utils.Logger.Error(
			"CacheManager: Failed to set cache key",
			zap.String("key", key),
			zap.Duration("expiration", expiration),
			zap.Error(err),
		)
		return fmt.Errorf("failed to set cache key '%s': %w", key, err)
	}
	utils.Logger.Debug("CacheManager: Cache key set successfully", zap.String("key", key))
	return nil
}

func (cm *CacheManager) Get(ctx context.Context, key string) (string, error) {
	val, err := cm.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		utils.Logger.Debug("CacheManager: Cache key not found", zap.String("key", key))
		return "", ErrKeyNotFound
	}
	if err != nil {
		utils.Logger.Error(
			"CacheManager: Failed to get cache key",
			zap.String("key", key),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get cache key '%s': %w", key, err)
	}
	return val, nil
}

func (cm *CacheManager) Delete(ctx context.Context, key string) error {
	err := cm.client.Del(ctx, key).Err()
	if err != nil {
		utils.Logger.Error(
			"CacheManager: Failed to delete cache key",
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete cache key '%s': %w", key, err)
	}
	utils.Logger.Debug("CacheManager: Cache key deleted successfully", zap.String("key", key))
	return nil
}

// SetJSON marshals value to JSON and stores it under key.
func (cm *CacheManager) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for '%s': %w", key, err)
	}
	return cm.Set(ctx, key, raw, expiration)
}

// GetJSON retrieves key and unmarshals the stored JSON into dest.
// Returns ErrKeyNotFound when the key does not exist.
func (cm *CacheManager) GetJSON(ctx context.Context, key string, dest interface{}) error {
	raw, err := cm.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value for '%s': %w", key, err)
	}
	return nil
}
