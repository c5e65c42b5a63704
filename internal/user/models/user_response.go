package models

import (
	"time"

	"github.com/iots1/contacts-api/internal/user/domain"
)

type UserResponse struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	IsVerified bool    `json:"is_verified"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	Role       string  `json:"role"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func ToUserResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		AvatarURL:  user.AvatarURL,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  user.UpdatedAt.Format(time.RFC3339),
	}
}
