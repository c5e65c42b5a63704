package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/auth/adapters"
	"github.com/iots1/contacts-api/internal/auth/models"
	"github.com/iots1/contacts-api/internal/auth/repository"
	sharedAdapters "github.com/iots1/contacts-api/internal/shared/adapters"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/utils"
	"github.com/iots1/contacts-api/internal/user/domain"
	userModel "github.com/iots1/contacts-api/internal/user/models"
	userUsecase "github.com/iots1/contacts-api/internal/user/usecase"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	// ErrInvalidToken covers expired, malformed and revoked tokens alike so
	// responses never reveal which case was hit.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthUsecase implements signup, login, token rotation and the email-driven
// verification / password reset flows.
type AuthUsecase struct {
	users      *userUsecase.UserUsecase
	tokens     repository.RefreshTokenRepository
	jwt        adapters.JWTTokenGenerator
	hasher     sharedAdapters.PasswordHasher
	highPub    event.Publisher
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthUsecase(
	users *userUsecase.UserUsecase,
	tokens repository.RefreshTokenRepository,
	jwt adapters.JWTTokenGenerator,
	hasher sharedAdapters.PasswordHasher,
	highPub event.Publisher,
	accessTTL, refreshTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		tokens:     tokens,
		jwt:        jwt,
		hasher:     hasher,
		highPub:    highPub,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates an unverified user and enqueues the verification email.
// Returns domain.ErrUserAlreadyExists on duplicate email.
func (s *AuthUsecase) Register(ctx context.Context, req *models.RegisterRequest) (*userModel.UserResponse, error) {
	hashed, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, &domain.User{
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendVerificationEmail(ctx, user); err != nil {
		// The account exists; the user can request a resend.
		utils.Logger.Error("Failed to enqueue verification email",
			zap.String("email", user.Email), zap.Error(err))
	}

	return userModel.ToUserResponse(user), nil
}

// Login verifies credentials against Postgres (never the cache), requires a
// verified email, and issues a fresh token pair with the refresh jti
// persisted for rotation.
func (s *AuthUsecase) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrEmailNotVerified
	}

	resp, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	// Warm the cache for the upcoming authenticated requests.
	s.users.CacheUser(ctx, user)
	return resp, nil
}

// Refresh rotates a refresh token: the presented token's jti is consumed and
// a new pair is issued. A jti that is not on record means the token was
// already rotated (or revoked) — that is treated as reuse and every live
// refresh token for the user is revoked.
func (s *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.jwt.ParseToken(refreshToken, adapters.ScopeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if _, err := s.tokens.Consume(ctx, claims.ID); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			utils.Logger.Warn("Refresh token reuse detected, revoking all sessions",
				zap.Int64("user_id", claims.UserID))
			if revokeErr := s.tokens.RevokeAllForUser(ctx, claims.UserID); revokeErr != nil {
				utils.Logger.Error("Failed to revoke tokens after reuse",
					zap.Int64("user_id", claims.UserID), zap.Error(revokeErr))
			}
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokenPair(ctx, user)
}

// Logout consumes the presented refresh token so it can no longer be
// rotated. Unknown tokens are ignored: logout is idempotent.
func (s *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.ParseToken(refreshToken, adapters.ScopeRefresh)
	if err != nil {
		return ErrInvalidToken
	}
	if _, err := s.tokens.Consume(ctx, claims.ID); err != nil && !errors.Is(err, repository.ErrTokenNotFound) {
		return err
	}
	return nil
}

// VerifyEmail marks the token's user as verified. Verifying an already
// verified account is a no-op success.
func (s *AuthUsecase) VerifyEmail(ctx context.Context, token string) (*userModel.UserResponse, error) {
	claims, err := s.jwt.ParseToken(token, adapters.ScopeVerification)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if user.IsVerified {
		return userModel.ToUserResponse(user), nil
	}

	user, err = s.users.VerifyUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return userModel.ToUserResponse(user), nil
}

// ResendVerification enqueues a fresh verification email. It succeeds
// silently for unknown addresses to avoid leaking which emails exist, and
// reports already-verified accounts.
func (s *AuthUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if user.IsVerified {
		return nil
	}
	return s.sendVerificationEmail(ctx, user)
}

// RequestPasswordReset enqueues a reset email. Unknown addresses succeed
// silently for the same reason as ResendVerification.
func (s *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := s.jwt.GeneratePasswordResetToken(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	return s.highPub.Publish(ctx, event.SendPasswordResetEmailTaskName, event.SendPasswordResetEmailPayload{
		Email: user.Email,
		Token: token,
	})
}

// ConfirmPasswordReset sets a new password and revokes every refresh token
// the user holds, forcing a re-login everywhere.
func (s *AuthUsecase) ConfirmPasswordReset(ctx context.Context, req *models.PasswordResetConfirm) error {
	claims, err := s.jwt.ParseToken(req.Token, adapters.ScopeReset)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := s.hasher.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.users.UpdatePassword(ctx, claims.UserID, hashed); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if err := s.tokens.RevokeAllForUser(ctx, claims.UserID); err != nil {
		utils.Logger.Error("Failed to revoke tokens after password reset",
			zap.Int64("user_id", claims.UserID), zap.Error(err))
	}
	return nil
}

func (s *AuthUsecase) issueTokenPair(ctx context.Context, user *domain.User) (*models.AuthResponse, error) {
	access, refresh, refreshClaims, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	if err := s.tokens.Save(ctx, user.ID, refreshClaims.ID, refreshClaims.ExpiresAt.Time); err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		User:         userModel.ToUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		TokenType:    "bearer",
	}, nil
}

func (s *AuthUsecase) sendVerificationEmail(ctx context.Context, user *domain.User) error {
	token, err := s.jwt.GenerateVerificationToken(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	return s.highPub.Publish(ctx, event.SendVerificationEmailTaskName, event.SendVerificationEmailPayload{
		Email: user.Email,
		Token: token,
	})
}
