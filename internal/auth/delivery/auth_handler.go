package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/auth/models"
	"github.com/iots1/contacts-api/internal/auth/usecase"
	sharedModel "github.com/iots1/contacts-api/internal/shared/models"
	"github.com/iots1/contacts-api/internal/shared/ratelimit"
	"github.com/iots1/contacts-api/internal/shared/utils"
	userDomain "github.com/iots1/contacts-api/internal/user/domain"
)

const handlerTimeout = 5 * time.Second

// LoginRateRoute names the login throttle; the middleware and the
// post-login counter reset must agree on it.
const LoginRateRoute = "login"

type AuthHandler struct {
	authUsecase *usecase.AuthUsecase
	limiter     *ratelimit.Limiter
}

func NewAuthHandler(authUsecase *usecase.AuthUsecase, limiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, limiter: limiter}
}

func (h *AuthHandler) sendErrorResponse(c *fiber.Ctx, statusCode int, message string, err error, validationErrors map[string][]string) error {
	logFields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status_code", statusCode),
		zap.String("message", message),
	}
	if err != nil {
		logFields = append(logFields, zap.Error(err))
	}
	if validationErrors != nil {
		logFields = append(logFields, zap.Any("validation_errors", validationErrors))
	}
	utils.Logger.Error("API Error", logFields...)

	return c.Status(statusCode).JSON(sharedModel.CommonErrorResponse{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Message:   message,
		Errors:    validationErrors,
		Code:      statusCode * 1000,
		Method:    c.Method(),
		Path:      c.Path(),
	})
}

func (h *AuthHandler) sendSuccessResponse(c *fiber.Ctx, statusCode int, data interface{}, count int) error {
	return c.Status(statusCode).JSON(sharedModel.GenericSuccessResponse{
		Code:    statusCode,
		Success: true,
		Data:    data,
		Count:   count,
	})
}

// Signup godoc
// @Summary Register a new user
// @Description Create an account and send a verification email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Signup payload"
// @Success 201 {object} sharedModel.GenericSuccessResponse{data=userModel.UserResponse} "User registered"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 409 {object} sharedModel.CommonErrorResponse "Email already registered"
// @Failure 500 {object} sharedModel.CommonErrorResponse "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		utils.Logger.Warn("Signup: Invalid request body", zap.Error(err))
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}

	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		utils.Logger.Warn("Signup: Validation failed", zap.Any("validation_details", formattedErrors))
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	user, err := h.authUsecase.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserAlreadyExists) {
			utils.Logger.Info("Signup: Email already registered", zap.String("email", req.Email))
			return h.sendErrorResponse(c, fiber.StatusConflict, "Email already registered", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusCreated, user, 1)
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password, returns access and refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=models.AuthResponse} "Login successful"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Invalid credentials"
// @Failure 403 {object} sharedModel.CommonErrorResponse "Email not verified"
// @Failure 429 {object} sharedModel.CommonErrorResponse "Too many requests"
// @Failure 500 {object} sharedModel.CommonErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		utils.Logger.Warn("Login: Invalid request body", zap.Error(err))
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}

	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	resp, err := h.authUsecase.Login(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utils.Logger.Info("Login: Invalid credentials", zap.String("email", req.Email))
			return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", nil, nil)
		case errors.Is(err, usecase.ErrEmailNotVerified):
			utils.Logger.Info("Login: Email not verified", zap.String("email", req.Email))
			return h.sendErrorResponse(c, fiber.StatusForbidden, "Email not verified", nil, nil)
		default:
			return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to log in", err, nil)
		}
	}

	// A successful login clears the throttle so earlier failed attempts
	// from the same address stop counting against the user.
	if h.limiter != nil {
		if err := h.limiter.Reset(ctx, LoginRateRoute+":"+c.IP()); err != nil {
			utils.Logger.Warn("Failed to reset login rate limit", zap.Error(err))
		}
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, resp, 1)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotate the refresh token and get a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=models.AuthResponse} "Tokens rotated"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Invalid, expired or revoked refresh token"
// @Failure 500 {object} sharedModel.CommonErrorResponse "Internal server error"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}

	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	resp, err := h.authUsecase.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired refresh token", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to refresh tokens", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, resp, 1)
}

// Logout godoc
// @Summary Log out
// @Description Revoke the presented refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LogoutRequest true "Refresh token"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=sharedModel.MessageResponse} "Logged out"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Invalid refresh token"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req models.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}

	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	if err := h.authUsecase.Logout(ctx, req.RefreshToken); err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to log out", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, sharedModel.MessageResponse{Message: "Logged out"}, 1)
}

// VerifyEmail godoc
// @Summary Verify email address
// @Description Confirm the email using the token from the verification mail
// @Tags Auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=userModel.UserResponse} "Email verified"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Missing token"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Invalid or expired token"
// @Router /auth/verify [get]
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Missing verification token", nil, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	user, err := h.authUsecase.VerifyEmail(ctx, token)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired verification token", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to verify email", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, user, 1)
}

// ResendVerification godoc
// @Summary Resend verification email
// @Description Send a fresh verification mail. Always responds 200 so addresses cannot be probed.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.EmailRequest true "Account email"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=sharedModel.MessageResponse} "Verification email queued"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Router /auth/verify [post]
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req models.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}

	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	if err := h.authUsecase.ResendVerification(ctx, req.Email); err != nil {
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to send verification email", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK,
		sharedModel.MessageResponse{Message: "If the account exists, a verification email has been sent"}, 1)
}

// RequestPasswordReset godoc
// @Summary Request a password reset
// @Description Send a password reset mail. Always responds 200 so addresses cannot be probed.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.PasswordResetRequest true "Account email"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=sharedModel.MessageResponse} "Reset email queued"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 429 {object} sharedModel.CommonErrorResponse "Too many requests"
// @Router /auth/password/reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req models.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}

	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	if err := h.authUsecase.RequestPasswordReset(ctx, req.Email); err != nil {
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to send password reset email", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK,
		sharedModel.MessageResponse{Message: "If the account exists, a password reset email has been sent"}, 1)
}

// ConfirmPasswordReset godoc
// @Summary Confirm a password reset
// @Description Set a new password using the token from the reset mail; revokes all sessions
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.PasswordResetConfirm true "Reset token and new password"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=sharedModel.MessageResponse} "Password updated"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Invalid or expired token"
// @Router /auth/password/reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req models.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}

	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	if err := h.authUsecase.ConfirmPasswordReset(ctx, &req); err != nil {
		if errors.Is(err, usecase.ErrInvalidToken) {
			return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired reset token", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to reset password", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, sharedModel.MessageResponse{Message: "Password updated"}, 1)
}
