package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrTokenNotFound means the refresh token record is absent: either it was
// never issued, expired out, or was already consumed by a rotation.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository persists one row per live refresh token, keyed by
// a hash of the token's jti. Rotation consumes the row; a second consume of
// the same jti is how token reuse is detected.
type RefreshTokenRepository interface {
	Save(ctx context.Context, userID int64, jti string, expiresAt time.Time) error
	Consume(ctx context.Context, jti string) (int64, error)
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// HashToken derives the storage key for a jti. Hashing keeps raw token
// identifiers out of the database.
func HashToken(jti string) string {
	sum := sha256.Sum256([]byte(jti))
	return hex.EncodeToString(sum[:])
}

type PostgresRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRefreshTokenRepository(pool *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{pool: pool}
}

var _ RefreshTokenRepository = (*PostgresRefreshTokenRepository)(nil)

func (r *PostgresRefreshTokenRepository) Save(ctx context.Context, userID int64, jti string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES ($1, $2, $3)`,
		userID, HashToken(jti), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Consume atomically deletes the record for jti and returns the owning user.
// Expired records do not count as live tokens.
func (r *PostgresRefreshTokenRepository) Consume(ctx context.Context, jti string) (int64, error) {
	var userID int64
	err := r.pool.QueryRow(ctx,
		`DELETE FROM refresh_tokens
		 WHERE token_hash = $1 AND expires_at > now()
		 RETURNING user_id`,
		HashToken(jti),
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrTokenNotFound
		}
		return 0, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	return userID, nil
}

func (r *PostgresRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user %d: %w", userID, err)
	}
	return nil
}

// DeleteExpired removes stale rows. Intended for periodic housekeeping.
func (r *PostgresRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
