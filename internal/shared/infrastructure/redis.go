package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/utils"
)

// RedisClient wraps the Redis client and provides connection management
type RedisClient struct {
	client   *redis.Client
	addr     string
	password string
	db       int
}

// NewRedisClient creates a new RedisClient instance.
// It doesn't establish the connection yet, only sets up the configuration.
func NewRedisClient(addr, password string, db int) *RedisClient {
	return &RedisClient{
		addr:     addr,
		password: password,
		db:       db,
	}
}

// Connect establishes a connection to the Redis server.
// It returns the *redis.Client instance or an error.
func (rc *RedisClient) Connect(ctx context.Context) (*redis.Client, error) {
	rc.client = redis.NewClient(&redis.Options{
		Addr:     rc.addr,
		Password: rc.password,
		DB:       rc.db,
	})

	// Ping the Redis server to verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.client.Ping(pingCtx).Err(); err != nil {
		if closeErr := rc.client.Close(); closeErr != nil {
			utils.Logger.Warn("Error closing Redis client after failed ping", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return rc.client, nil
}

// GetClient returns the underlying *redis.Client.
// Call this *after* a successful Connect().
func (rc *RedisClient) GetClient() *redis.Client {
	return rc.client
}

// Disconnect closes the Redis connection.
func (rc *RedisClient) Disconnect() {
	if rc.client != nil {
		if err := rc.client.Close(); err != nil {
			utils.Logger.Warn("Error disconnecting from Redis", zap.Error(err))
		}
	}
}
