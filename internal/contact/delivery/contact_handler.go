package delivery

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/contact/domain"
	"github.com/iots1/contacts-api/internal/contact/models"
	"github.com/iots1/contacts-api/internal/contact/usecase"
	sharedModel "github.com/iots1/contacts-api/internal/shared/models"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

const handlerTimeout = 5 * time.Second

type ContactHandler struct {
	contactUsecase *usecase.ContactUsecase
}

func NewContactHandler(contactUsecase *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{contactUsecase: contactUsecase}
}

func (h *ContactHandler) sendErrorResponse(c *fiber.Ctx, statusCode int, message string, err error, validationErrors map[string][]string) error {
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

func (h *ContactHandler) sendSuccessResponse(c *fiber.Ctx, statusCode int, data interface{}, count int) error {
	return c.Status(statusCode).JSON(sharedModel.GenericSuccessResponse{
		Code:    statusCode,
		Success: true,
		Data:    data,
		Count:   count,
	})
}

func ownerID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals("userID").(int64)
	return id, ok
}

func contactID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// CreateContact godoc
// @Summary Create a contact
// @Description Add a contact to the authenticated user's address book
// @Tags Contacts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body models.CreateContactRequest true "Contact payload"
// @Success 201 {object} sharedModel.GenericSuccessResponse{data=models.ContactResponse} "Contact created"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 409 {object} sharedModel.CommonErrorResponse "Contact email already exists"
// @Failure 500 {object} sharedModel.CommonErrorResponse "Internal server error"
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}

	var req models.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}
	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	contact, err := h.contactUsecase.CreateContact(ctx, owner, &req)
	if err != nil {
		if errors.Is(err, domain.ErrContactAlreadyExists) {
			return h.sendErrorResponse(c, fiber.StatusConflict, "Contact with this email already exists", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to create contact", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusCreated, models.ToContactResponse(contact), 1)
}

// ListContacts godoc
// @Summary List contacts
// @Description List the authenticated user's contacts with optional search and pagination
// @Tags Contacts
// @Security ApiKeyAuth
// @Produce json
// @Param q query string false "Search in first name, last name or email"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=[]models.ContactResponse} "Contacts"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 500 {object} sharedModel.CommonErrorResponse "Internal server error"
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}

	q := c.Query("q")
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", usecase.DefaultListLimit)

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	contacts, err := h.contactUsecase.ListContacts(ctx, owner, q, skip, limit)
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to list contacts", err, nil)
	}

	resp := models.ToContactResponses(contacts)
	return h.sendSuccessResponse(c, fiber.StatusOK, resp, len(resp))
}

// GetContact godoc
// @Summary Get a contact
// @Description Fetch one of the authenticated user's contacts by ID
// @Tags Contacts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=models.ContactResponse} "Contact"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Invalid contact ID"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 404 {object} sharedModel.CommonErrorResponse "Contact not found"
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}
	id, err := contactID(c)
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", err, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	contact, err := h.contactUsecase.GetContact(ctx, owner, id)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return h.sendErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch contact", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, models.ToContactResponse(contact), 1)
}

// UpdateContact godoc
// @Summary Update a contact
// @Description Apply a partial update to one of the authenticated user's contacts; absent fields keep their value
// @Tags Contacts
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body models.UpdateContactRequest true "Contact payload"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=models.ContactResponse} "Contact updated"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Bad request or validation error"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 404 {object} sharedModel.CommonErrorResponse "Contact not found"
// @Failure 409 {object} sharedModel.CommonErrorResponse "Contact email already exists"
// @Router /contacts/{id} [patch]
func (h *ContactHandler) UpdateContact(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}
	id, err := contactID(c)
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", err, nil)
	}

	var req models.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err, nil)
	}
	if err := utils.GetGlobalValidator().Struct(req); err != nil {
		formattedErrors := utils.FormatValidationErrors(err)
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Validation failed", nil, formattedErrors)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	contact, err := h.contactUsecase.UpdateContact(ctx, owner, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrContactNotFound):
			return h.sendErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil, nil)
		case errors.Is(err, domain.ErrContactAlreadyExists):
			return h.sendErrorResponse(c, fiber.StatusConflict, "Contact with this email already exists", nil, nil)
		default:
			return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to update contact", err, nil)
		}
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, models.ToContactResponse(contact), 1)
}

// DeleteContact godoc
// @Summary Delete a contact
// @Description Remove one of the authenticated user's contacts
// @Tags Contacts
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=sharedModel.MessageResponse} "Contact deleted"
// @Failure 400 {object} sharedModel.CommonErrorResponse "Invalid contact ID"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 404 {object} sharedModel.CommonErrorResponse "Contact not found"
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}
	id, err := contactID(c)
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusBadRequest, "Invalid contact ID", err, nil)
	}

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	if err := h.contactUsecase.DeleteContact(ctx, owner, id); err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return h.sendErrorResponse(c, fiber.StatusNotFound, "Contact not found", nil, nil)
		}
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete contact", err, nil)
	}

	return h.sendSuccessResponse(c, fiber.StatusOK, sharedModel.MessageResponse{Message: "Contact deleted"}, 1)
}

// UpcomingBirthdays godoc
// @Summary Upcoming birthdays
// @Description List contacts whose birthday falls within the next N days (default 7)
// @Tags Contacts
// @Security ApiKeyAuth
// @Produce json
// @Param days query int false "Lookahead window in days" default(7)
// @Success 200 {object} sharedModel.GenericSuccessResponse{data=[]models.ContactResponse} "Contacts with upcoming birthdays"
// @Failure 401 {object} sharedModel.CommonErrorResponse "Unauthorized"
// @Failure 500 {object} sharedModel.CommonErrorResponse "Internal server error"
// @Router /contacts/birthdays/upcoming [get]
func (h *ContactHandler) UpcomingBirthdays(c *fiber.Ctx) error {
	owner, ok := ownerID(c)
	if !ok {
		return h.sendErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil, nil)
	}
	days := c.QueryInt("days", usecase.DefaultLookahead)

	ctx, cancel := context.WithTimeout(c.Context(), handlerTimeout)
	defer cancel()

	contacts, err := h.contactUsecase.UpcomingBirthdays(ctx, owner, days)
	if err != nil {
		return h.sendErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch upcoming birthdays", err, nil)
	}

	resp := models.ToContactResponses(contacts)
	return h.sendSuccessResponse(c, fiber.StatusOK, resp, len(resp))
}
