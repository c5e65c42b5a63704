package models

import (
	"time"

	"github.com/iots1/contacts-api/internal/contact/domain"
)

// ContactResponse is the API shape of a contact. BirthDate is rendered as a
// plain date.
type ContactResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func ToContactResponse(c *domain.Contact) *ContactResponse {
	var birthDate *string
	if c.BirthDate != nil {
		formatted := c.BirthDate.Format("2006-01-02")
		birthDate = &formatted
	}
	return &ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		BirthDate: birthDate,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func ToContactResponses(contacts []*domain.Contact) []*ContactResponse {
	out := make([]*ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, ToContactResponse(c))
	}
	return out
}
