package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrContactAlreadyExists = errors.New("contact with this email already exists")
)

// Contact is an address-book entry. Contacts are strictly owner-scoped:
// every repository operation takes the owner's user ID and never returns
// another user's rows.
type Contact struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListFilter narrows List results. Query matches first name, last name or
// email, case-insensitively. Skip/Limit paginate.
type ListFilter struct {
	Query string
	Skip  int
	Limit int
}

type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) (*Contact, error)
	FindByID(ctx context.Context, ownerID, id int64) (*Contact, error)
	List(ctx context.Context, ownerID int64, filter ListFilter) ([]*Contact, error)
	Update(ctx context.Context, contact *Contact) (*Contact, error)
	Delete(ctx context.Context, ownerID, id int64) error
	UpcomingBirthdays(ctx context.Context, ownerID int64, from time.Time, days int) ([]*Contact, error)
}
