package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/contact/domain"
	"github.com/iots1/contacts-api/internal/contact/models"
	"github.com/iots1/contacts-api/internal/shared/event"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	DefaultLookahead = 7
	birthDateLayout  = "2006-01-02"
)

// ContactUsecase owns the contact business rules. All operations are scoped
// to the owner passed in; cross-owner access surfaces as not-found.
type ContactUsecase struct {
	repo   domain.ContactRepository
	lowPub event.Publisher
}

func NewContactUsecase(repo domain.ContactRepository, lowPub event.Publisher) *ContactUsecase {
	return &ContactUsecase{repo: repo, lowPub: lowPub}
}

// parseBirthDate parses an optional YYYY-MM-DD date. A nil input stays nil.
func parseBirthDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(birthDateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date: %w", err)
	}
	return &parsed, nil
}

func (s *ContactUsecase) CreateContact(ctx context.Context, ownerID int64, req *models.CreateContactRequest) (*domain.Contact, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	contact, err := s.repo.Create(ctx, &domain.Contact{
		OwnerID:   ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: birthDate,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}

	if pubErr := s.lowPub.Publish(ctx, string(event.ContactCreatedInMemoryEvent), event.ContactCreatedPayload{
		ContactID: contact.ID,
		OwnerID:   contact.OwnerID,
	}); pubErr != nil {
		utils.Logger.Warn("Failed to publish contact created event",
			zap.Int64("contact_id", contact.ID), zap.Error(pubErr))
	}

	return contact, nil
}

func (s *ContactUsecase) GetContact(ctx context.Context, ownerID, id int64) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// ListContacts applies pagination defaults and caps the page size.
func (s *ContactUsecase) ListContacts(ctx context.Context, ownerID int64, q string, skip, limit int) ([]*domain.Contact, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.List(ctx, ownerID, domain.ListFilter{Query: q, Skip: skip, Limit: limit})
}

// UpdateContact applies a partial update: only fields present in the
// request replace the stored values. The initial fetch keeps update errors
// distinguishable, a missing row is 404 while a duplicate email on another
// row is 409.
func (s *ContactUsecase) UpdateContact(ctx context.Context, ownerID, id int64, req *models.UpdateContactRequest) (*domain.Contact, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	contact, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}
	if birthDate != nil {
		contact.BirthDate = birthDate
	}
	if req.Notes != nil {
		contact.Notes = req.Notes
	}

	return s.repo.Update(ctx, contact)
}

func (s *ContactUsecase) DeleteContact(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// UpcomingBirthdays lists contacts whose birthday falls within the next
// `days` days counting from today.
func (s *ContactUsecase) UpcomingBirthdays(ctx context.Context, ownerID int64, days int) ([]*domain.Contact, error) {
	if days <= 0 {
		days = DefaultLookahead
	}
	return s.repo.UpcomingBirthdays(ctx, ownerID, time.Now().UTC(), days)
}
