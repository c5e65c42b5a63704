package delivery

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/auth/adapters"
	sharedModel "github.com/iots1/contacts-api/internal/shared/models"
	"github.com/iots1/contacts-api/internal/shared/utils"
	userDomain "github.com/iots1/contacts-api/internal/user/domain"
	userUsecase "github.com/iots1/contacts-api/internal/user/usecase"
)

// Locals keys set by RequireAuth.
const (
	LocalsUserKey   = "user"
	LocalsUserIDKey = "userID"
)

// AuthMiddleware guards routes with Bearer access tokens and loads the
// current user through the Redis read-through cache.
type AuthMiddleware struct {
	jwt   adapters.JWTTokenGenerator
	users *userUsecase.UserUsecase
}

func NewAuthMiddleware(jwt adapters.JWTTokenGenerator, users *userUsecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

func (m *AuthMiddleware) unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(sharedModel.CommonErrorResponse{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Message:   message,
		Code:      fiber.StatusUnauthorized * 1000,
		Method:    c.Method(),
		Path:      c.Path(),
	})
}

// RequireAuth validates the Authorization header, resolves the user and
// stores it in Locals for downstream handlers.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return m.unauthorized(c, "Missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return m.unauthorized(c, "Invalid authorization header")
		}

		claims, err := m.jwt.ParseToken(parts[1], adapters.ScopeAccess)
		if err != nil {
			return m.unauthorized(c, "Invalid or expired access token")
		}

		user, err := m.users.GetUserByEmailCached(c.Context(), claims.Subject)
		if err != nil {
			if err == userDomain.ErrUserNotFound {
				return m.unauthorized(c, "User no longer exists")
			}
			utils.Logger.Error("Auth middleware: failed to load user",
				zap.String("email", claims.Subject), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(sharedModel.CommonErrorResponse{
				Success:   false,
				Timestamp: time.Now().UTC(),
				Message:   "Failed to load user",
				Code:      fiber.StatusInternalServerError * 1000,
				Method:    c.Method(),
				Path:      c.Path(),
			})
		}

		c.Locals(LocalsUserKey, user)
		c.Locals(LocalsUserIDKey, user.ID)
		return c.Next()
	}
}

// RequireRole allows the request only when the authenticated user holds one
// of the given roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(LocalsUserKey).(*userDomain.User)
		if !ok {
			return m.unauthorized(c, "Authentication required")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		utils.Logger.Warn("Role check failed",
			zap.String("email", user.Email), zap.String("role", user.Role))
		return c.Status(fiber.StatusForbidden).JSON(sharedModel.CommonErrorResponse{
			Success:   false,
			Timestamp: time.Now().UTC(),
			Message:   "Insufficient permissions",
			Code:      fiber.StatusForbidden * 1000,
			Method:    c.Method(),
			Path:      c.Path(),
		})
	}
}

// CurrentUser extracts the authenticated user placed by RequireAuth.
func CurrentUser(c *fiber.Ctx) (*userDomain.User, bool) {
	user, ok := c.Locals(LocalsUserKey).(*userDomain.User)
	return user, ok
}
