package modules

import (
	"time"

	"github.com/gofiber/fiber/v2"

	authAdapter "github.com/iots1/contacts-api/internal/auth/adapters"
	"github.com/iots1/contacts-api/internal/auth/delivery"
	"github.com/iots1/contacts-api/internal/auth/repository"
	authUsecase "github.com/iots1/contacts-api/internal/auth/usecase"
	"github.com/iots1/contacts-api/internal/shared/infrastructure"
	"github.com/iots1/contacts-api/internal/shared/ratelimit"
	"github.com/iots1/contacts-api/internal/shared/utils"
	userUsecase "github.com/iots1/contacts-api/internal/user/usecase"
)

// Credential endpoints are throttled per client IP to slow down guessing.
const (
	loginRateLimit = 10
	resetRateLimit = 5
	authRateWindow = 60 * time.Second
)

// SetupAuthModule wires authentication, registers the /auth routes and
// returns the middleware other modules mount in front of their routes.
func SetupAuthModule(
	router fiber.Router,
	deps infrastructure.AppDependencies,
	users *userUsecase.UserUsecase,
) *delivery.AuthMiddleware {
	utils.Logger.Info("========== Setup Auth Module ==========")

	jwtGenerator := authAdapter.NewJWTTokenGenerator(
		deps.AppConfig.SecretKey, deps.AppConfig.AccessTTL, deps.AppConfig.RefreshTTL)

	tokenRepo := repository.NewPostgresRefreshTokenRepository(deps.DB)
	utils.Logger.Debug("Auth module: Refresh token repository initialized.")

	usecase := authUsecase.NewAuthUsecase(
		users,
		tokenRepo,
		jwtGenerator,
		deps.PasswordHasher,
		deps.HighPub,
		deps.AppConfig.AccessTTL,
		deps.AppConfig.RefreshTTL,
	)
	utils.Logger.Debug("Auth module: Auth use case initialized.")

	authHandler := delivery.NewAuthHandler(usecase, deps.Limiter)
	authMiddleware := delivery.NewAuthMiddleware(jwtGenerator, users)
	setupAuthRoutes(router, authHandler, deps.Limiter)

	utils.Logger.Info("========== Auth module setup complete. ==========")
	return authMiddleware
}

func setupAuthRoutes(router fiber.Router, authHandler *delivery.AuthHandler, limiter *ratelimit.Limiter) {
	auth := router.Group("/auth")

	loginLimiter := ratelimit.NewMiddleware(
		limiter, delivery.LoginRateRoute, loginRateLimit, authRateWindow, ratelimit.KeyByIP)
	resetLimiter := ratelimit.NewMiddleware(
		limiter, "password_reset", resetRateLimit, authRateWindow, ratelimit.KeyByIP)

	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", loginLimiter, authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/verify", authHandler.VerifyEmail)
	auth.Post("/verify", authHandler.ResendVerification)
	auth.Post("/password/reset", resetLimiter, authHandler.RequestPasswordReset)
	auth.Post("/password/reset/confirm", authHandler.ConfirmPasswordReset)
}
