package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iots1/contacts-api/config"
)

// PostgresClient wraps a pgx connection pool and provides connection management.
type PostgresClient struct {
	pool *pgxpool.Pool
	conf config.PostgresConfig
}

// NewPostgresClient creates a new PostgresClient instance.
// It doesn't establish the connection yet, only sets up the configuration.
func NewPostgresClient(conf config.PostgresConfig) *PostgresClient {
	return &PostgresClient{conf: conf}
}

// Connect establishes the connection pool and verifies it with a ping.
func (pc *PostgresClient) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, pc.conf.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to create Postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	pc.pool = pool
	return pool, nil
}

// GetPool returns the underlying pool. Call this after a successful Connect().
func (pc *PostgresClient) GetPool() *pgxpool.Pool {
	return pc.pool
}

// Disconnect closes the connection pool.
func (pc *PostgresClient) Disconnect() {
	if pc.pool != nil {
		pc.pool.Close()
	}
}
