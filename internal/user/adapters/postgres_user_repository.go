package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iots1/contacts-api/internal/user/domain"
)

const uniqueViolationCode = "23505"

// PostgresUserRepository implements domain.UserRepository over a pgx pool.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var _ domain.UserRepository = (*PostgresUserRepository)(nil)

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, hashed_password, role)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, hashed_password, is_verified, avatar_url, role, created_at, updated_at`,
		user.Email, user.Password, user.Role,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return created, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, is_verified, avatar_url, role, created_at, updated_at
		 FROM users WHERE id = $1`, id)
	return scanUserNotFound(row)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, is_verified, avatar_url, role, created_at, updated_at
		 FROM users WHERE email = $1`, email)
	return scanUserNotFound(row)
}

func (r *PostgresUserRepository) SetVerified(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = now()
		 WHERE id = $1
		 RETURNING id, email, hashed_password, is_verified, avatar_url, role, created_at, updated_at`, id)
	return scanUserNotFound(row)
}

func (r *PostgresUserRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, email, hashed_password, is_verified, avatar_url, role, created_at, updated_at`,
		id, avatarURL)
	return scanUserNotFound(row)
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET hashed_password = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING id, email, hashed_password, is_verified, avatar_url, role, created_at, updated_at`,
		id, hashedPassword)
	return scanUserNotFound(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.IsVerified, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUserNotFound(row pgx.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}
