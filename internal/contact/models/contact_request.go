package models

// CreateContactRequest is the payload for creating a contact. Phone and
// BirthDate are optional; BirthDate is a calendar date, no time component.
type CreateContactRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=50"`
	LastName  string  `json:"last_name" validate:"required,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateContactRequest is a partial update: only the fields present in the
// body change, everything else keeps its stored value.
type UpdateContactRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

// ListContactsQuery captures the query-string filters for listing contacts.
type ListContactsQuery struct {
	Q     string `query:"q"`
	Skip  int    `query:"skip" validate:"gte=0"`
	Limit int    `query:"limit" validate:"gte=1,lte=100"`
}

// UpcomingBirthdaysQuery selects the lookahead window in days.
type UpcomingBirthdaysQuery struct {
	Days int `query:"days" validate:"gte=1,lte=366"`
}
