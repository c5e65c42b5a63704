package infrastructure

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/iots1/contacts-api/config"
	"github.com/iots1/contacts-api/internal/shared/adapters"
	"github.com/iots1/contacts-api/internal/shared/cache"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/ratelimit"
)

// AppDependencies bundles shared infrastructure handed to the feature modules.
type AppDependencies struct {
	AppCtx         context.Context
	DB             *pgxpool.Pool
	RedisClient    *redis.Client
	Cache          *cache.CacheManager
	Limiter        *ratelimit.Limiter
	LowPub         event.Publisher
	HighPub        event.Publisher
	InMemPubSub    *event.InMemPubSub
	AppConfig      config.AppConfig
	PasswordHasher adapters.PasswordHasher
}

func NewAppDependencies(
	ctx context.Context,
	db *pgxpool.Pool,
	rdb *redis.Client,
	cacheManager *cache.CacheManager,
	limiter *ratelimit.Limiter,
	lowPub event.Publisher,
	highPub event.Publisher,
	inMemPubSub *event.InMemPubSub,
	appConfig config.AppConfig,
	passwordHasher adapters.PasswordHasher,
) AppDependencies {
	return AppDependencies{
		AppCtx:         ctx,
		DB:             db,
		RedisClient:    rdb,
		Cache:          cacheManager,
		Limiter:        limiter,
		LowPub:         lowPub,
		HighPub:        highPub,
		InMemPubSub:    inMemPubSub,
		AppConfig:      appConfig,
		PasswordHasher: passwordHasher,
	}
}
