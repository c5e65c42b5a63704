package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	sharedModel "github.com/iots1/contacts-api/internal/shared/models"
	"github.com/iots1/contacts-api/internal/shared/utils"
	"github.com/iots1/contacts-api/internal/user/adapters"
	"github.com/iots1/contacts-api/internal/user/domain"
	"github.com/iots1/contacts-api/internal/user/models"
	"github.com/iots1/contacts-api/internal/user/usecase"
)

const handlerTimeout = 10 * time.Second

type UserHandler struct {
	userUsecase *usecase.UserUsecase
	uploader    adapters.AvatarUploader
}

func NewUserHandler(userUsecase *usecase.UserUsecase, uploader adapters.AvatarUploader) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, uploader: uploader}
}

func (h *UserHandler) sendErrorResponse(c *fiber.Ctx, statusCode int, message string, err error, validationErrors map[string][]string) error {
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

func (h *UserHandler) sendSuccessResponse(c *fiber.Ctx, statusCode int, data interface{}, count int) error {
	return c.Status(statusCode).JSON(sharedModel.GenericSuccessResponse{
		Code:    statusCode,
		Success: true,
		Data:    data,
		Count:   count,
	})
}

// GetMe godoc
// @Summary Current user profile
// @Description Return the authenticated user's profile
// @Tags Users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=models.UserResponse} "User profile"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 429 {object} sharedModel.CommonErrorResponse "Too many requests"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*domain.User)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}
	return h.sendSuccessResponse(c, fiber.StatusOK, models.ToUserResponse(user), 1)
}

// UpdateAvatar godoc
// @Summary Update avatar
// @Description Upload a new avatar image for the authenticated admin
// @Tags Users
// @Security ApiKeyAuth
// @Accept mpfd
// @Produce json
// @Param file formData file true "Avatar image"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=models.UserResponse} "Avatar updated"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Missing or invalid file"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 403 {object} sharedModel.CommonErrorResponse "Insufficient permissions"
// @Failure 500 {object} sharedModel.CommonErrorResponse "Internal server error"
// @Router /users/avatar [put]
func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*domain.User)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Missing avatar file", err, nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Failed to read avatar file", err, nil)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	avatarURL, err := h.uploader.Upload(ctx, file, fmt.Sprintf("user_%d", user.ID))
	if err != nil {
		switch {
		case errors.Is(err, adapters.ErrUploaderNotConfigured):
			return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Avatar storage is not configured", err, nil)
		case errors.Is(err, adapters.ErrNoUploadURL):
			return h.sendErrorResponse(c, fiber.StatusBadRequest, "Upload did not return an image URL", err, nil)
		default:
			return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload avatar", err, nil)
		}
	}

	updated, err := h.userUsecase.UpdateAvatar(ctx, user.ID, avatarURL)
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to update avatar", err, nil)
	}

	utils.Logger.Info("Avatar updated",
		zap.Int64("user_id", user.ID), zap.String("avatar_url", avatarURL))
	return h.sendSuccessResponse(c, fiber.StatusOK, models.ToUserResponse(updated), 1)
}
