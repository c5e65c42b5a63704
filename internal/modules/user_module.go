package modules

import (
	"time"

	"github.com/gofiber/fiber/v2"

	authDelivery "github.com/iots1/contacts-api/internal/auth/delivery"
	"github.com/iots1/contacts-api/internal/shared/infrastructure"
	"github.com/iots1/contacts-api/internal/shared/ratelimit"
	"github.com/iots1/contacts-api/internal/shared/utils"
	"github.com/iots1/contacts-api/internal/user/adapters"
	"github.com/iots1/contacts-api/internal/user/delivery"
	"github.com/iots1/contacts-api/internal/user/domain"
	"github.com/iots1/contacts-api/internal/user/usecase"
)

// Profile reads are rate limited per user.
const (
	profileRateLimit  = 5
	profileRateWindow = 60 * time.Second
)

// SetupUserModule wires the user feature. Routes are registered separately
// with RegisterUserRoutes once the auth middleware exists, since the
// middleware itself depends on the user usecase returned here.
func SetupUserModule(
	deps infrastructure.AppDependencies,
	uploader adapters.AvatarUploader,
) (*usecase.UserUsecase, *delivery.UserHandler) {
	utils.Logger.Info("========== Setup User Module ==========")

	repo := adapters.NewPostgresUserRepository(deps.DB)
	utils.Logger.Debug("User module: User repository initialized.")

	userUsecase := usecase.NewUserUsecase(repo, deps.Cache, deps.AppConfig.AccessTTL, deps.LowPub)
	utils.Logger.Debug("User module: User use case initialized.")

	userInMemorySubscribers := delivery.NewUserInmemoryEventSubscribers(deps.InMemPubSub)
	userInMemorySubscribers.StartAllSubscribers(deps.AppCtx)
	utils.Logger.Debug("User module: User in-memory event subscribers started.")

	userHandler := delivery.NewUserHandler(userUsecase, uploader)
	utils.Logger.Debug("User module: User HTTP handler initialized.")

	utils.Logger.Info("========== User module setup complete. ==========")
	return userUsecase, userHandler
}

// RegisterUserRoutes mounts the /users routes behind authentication.
func RegisterUserRoutes(
	router fiber.Router,
	deps infrastructure.AppDependencies,
	userHandler *delivery.UserHandler,
	authMiddleware *authDelivery.AuthMiddleware,
) {
	users := router.Group("/users")

	meLimiter := ratelimit.NewMiddleware(
		deps.Limiter, "users_me", profileRateLimit, profileRateWindow, ratelimit.KeyByUser)

	users.Get("/me", authMiddleware.RequireAuth(), meLimiter, userHandler.GetMe)
	users.Put("/avatar",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRole(domain.RoleAdmin),
		userHandler.UpdateAvatar)
}
