package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/cache"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/utils"
	"github.com/iots1/contacts-api/internal/user/domain"
)

// UserUsecase wraps user persistence with a Redis read-through cache.
// Cached entries never contain the password hash, so credential checks
// always go to Postgres.
type UserUsecase struct {
	repo     domain.UserRepository
	cache    *cache.CacheManager
	cacheTTL time.Duration
	lowPub   event.Publisher
}

func NewUserUsecase(
	repo domain.UserRepository,
	cacheManager *cache.CacheManager,
	cacheTTL time.Duration,
	lowPub event.Publisher,
) *UserUsecase {
	return &UserUsecase{
		repo:     repo,
		cache:    cacheManager,
		cacheTTL: cacheTTL,
		lowPub:   lowPub,
	}
}

func userCacheKey(email string) string {
	return "user:" + email
}

func (s *UserUsecase) CreateUser(ctx context.Context, data *domain.User) (*domain.User, error) {
	if data.Role == "" {
		data.Role = domain.RoleUser
	}

	createdUser, err := s.repo.Create(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			utils.Logger.Info("UserUsecase: User with this email already exists", zap.String("email", data.Email))
			return nil, domain.ErrUserAlreadyExists
		}
		utils.Logger.Error("UserUsecase: Failed to save user to database", zap.Error(err), zap.String("email", data.Email))
		return nil, fmt.Errorf("failed to save user to database: %w", err)
	}

	if err := s.lowPub.Publish(ctx, string(event.UserRegisteredInMemoryEvent), event.UserRegisteredPayload{
		UserID: createdUser.ID,
		Email:  createdUser.Email,
	}); err != nil {
		utils.Logger.Warn("UserUsecase: Failed to publish user registered event",
			zap.String("email", createdUser.Email), zap.Error(err))
	}

	utils.Logger.Debug("UserUsecase: User created", zap.Int64("user_id", createdUser.ID))
	return createdUser, nil
}

func (s *UserUsecase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			utils.Logger.Info("GetUserByID: User not found", zap.Int64("user_id", id))
			return nil, domain.ErrUserNotFound
		}
		utils.Logger.Error("GetUserByID: Failed to get user by ID", zap.Int64("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *UserUsecase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			utils.Logger.Debug("GetUserByEmail: User not found", zap.String("email", email))
			return nil, domain.ErrUserNotFound
		}
		utils.Logger.Error("GetUserByEmail: Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByEmailCached resolves a user through the cache first, falling back
// to Postgres and repopulating the cache on a miss.
func (s *UserUsecase) GetUserByEmailCached(ctx context.Context, email string) (*domain.User, error) {
	var cached domain.User
	err := s.cache.GetJSON(ctx, userCacheKey(email), &cached)
	if err == nil {
		utils.Logger.Debug("GetUserByEmailCached: Cache hit", zap.String("email", email))
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		utils.Logger.Warn("GetUserByEmailCached: Cache read failed, falling back to database",
			zap.String("email", email), zap.Error(err))
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.CacheUser(ctx, user)
	return user, nil
}

// CacheUser stores the user under its email key. Failures are logged only:
// the cache is an optimization, not a source of truth.
func (s *UserUsecase) CacheUser(ctx context.Context, user *domain.User) {
	if err := s.cache.SetJSON(ctx, userCacheKey(user.Email), user, s.cacheTTL); err != nil {
		utils.Logger.Warn("CacheUser: Failed to cache user", zap.String("email", user.Email), zap.Error(err))
	}
}

// InvalidateCache drops the cached entry for email.
func (s *UserUsecase) InvalidateCache(ctx context.Context, email string) {
	if err := s.cache.Delete(ctx, userCacheKey(email)); err != nil {
		utils.Logger.Warn("InvalidateCache: Failed to delete cached user", zap.String("email", email), zap.Error(err))
	}
}

// VerifyUser marks the user's email as confirmed and refreshes the cache.
func (s *UserUsecase) VerifyUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.SetVerified(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		utils.Logger.Error("VerifyUser: Failed to mark user verified", zap.Int64("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	s.CacheUser(ctx, user)

	if err := s.lowPub.Publish(ctx, string(event.UserVerifiedInMemoryEvent), event.UserVerifiedPayload{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		utils.Logger.Warn("VerifyUser: Failed to publish user verified event",
			zap.String("email", user.Email), zap.Error(err))
	}
	return user, nil
}

// UpdateAvatar persists a new avatar URL and refreshes the cache.
func (s *UserUsecase) UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*domain.User, error) {
	user, err := s.repo.UpdateAvatar(ctx, id, avatarURL)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		utils.Logger.Error("UpdateAvatar: Failed to update avatar", zap.Int64("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	s.CacheUser(ctx, user)
	return user, nil
}

// UpdatePassword stores a new bcrypt hash and refreshes the cache.
func (s *UserUsecase) UpdatePassword(ctx context.Context, id int64, hashedPassword string) (*domain.User, error) {
	user, err := s.repo.UpdatePassword(ctx, id, hashedPassword)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		utils.Logger.Error("UpdatePassword: Failed to update password", zap.Int64("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	s.CacheUser(ctx, user)
	return user, nil
}
