package event

import "context"

// Topic represents an event topic/name
type Topic string

// In-memory event topics
const (
	UserRegisteredInMemoryEvent = Topic("user.registered.inmemory")
	UserVerifiedInMemoryEvent   = Topic("user.verified.inmemory")
	ContactCreatedInMemoryEvent = Topic("contact.created.inmemory")
)

// Asynq task names
const (
	SendVerificationEmailTaskName  = "email:send_verification"
	SendPasswordResetEmailTaskName = "email:send_password_reset"
)

// UserRegisteredPayload accompanies UserRegisteredInMemoryEvent.
type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// UserVerifiedPayload accompanies UserVerifiedInMemoryEvent.
type UserVerifiedPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// ContactCreatedPayload accompanies ContactCreatedInMemoryEvent.
type ContactCreatedPayload struct {
	ContactID int64 `json:"contact_id"`
	OwnerID   int64 `json:"owner_id"`
}

// SendVerificationEmailPayload is the task payload for verification mail delivery.
type SendVerificationEmailPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// SendPasswordResetEmailPayload is the task payload for password reset mail delivery.
type SendPasswordResetEmailPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Unified Publisher interface: All publishers (in-memory, Asynq) implement this.
type Publisher interface {
	Publish(ctx context.Context, topicOrTaskName string, payload interface{}) error
}

// EventHandler is the callback signature for in-memory subscriptions.
type EventHandler func(ctx context.Context, payload interface{}) error
