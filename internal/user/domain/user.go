package domain

import (
	"context"
	"errors"
	"time"
)

// Roles assignable to a user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// User is an application account. Password always holds the bcrypt hash,
// never the plain text.
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	IsVerified bool      `json:"is_verified"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	SetVerified(ctx context.Context, id int64) (*User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) (*User, error)
}
