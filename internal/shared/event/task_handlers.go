package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/mailer"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

// MailTaskHandlers processes mail delivery tasks dequeued by the worker.
type MailTaskHandlers struct {
	mailer mailer.Mailer
}

func NewMailTaskHandlers(m mailer.Mailer) *MailTaskHandlers {
	return &MailTaskHandlers{mailer: m}
}

// Register attaches the mail handlers to an asynq mux.
func (h *MailTaskHandlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(SendVerificationEmailTaskName, h.HandleSendVerificationEmail)
	mux.HandleFunc(SendPasswordResetEmailTaskName, h.HandleSendPasswordResetEmail)
}

// HandleSendVerificationEmail handles the 'email:send_verification' task.
func (h *MailTaskHandlers) HandleSendVerificationEmail(ctx context.Context, t *asynq.Task) error {
	var payload SendVerificationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		utils.Logger.Error("Failed to unmarshal SendVerificationEmailPayload", zap.Error(err))
		// Malformed payload will never succeed, skip retries.
		return fmt.Errorf("json.Unmarshal failed: %w", asynq.SkipRetry)
	}

	if err := h.mailer.SendVerificationEmail(ctx, payload.Email, payload.Token); err != nil {
		utils.Logger.Error("Failed to send verification email",
			zap.String("email", payload.Email), zap.Error(err))
		return err
	}
	utils.Logger.Info("Verification email sent", zap.String("email", payload.Email))
	return nil
}

// HandleSendPasswordResetEmail handles the 'email:send_password_reset' task.
func (h *MailTaskHandlers) HandleSendPasswordResetEmail(ctx context.Context, t *asynq.Task) error {
	var payload SendPasswordResetEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		utils.Logger.Error("Failed to unmarshal SendPasswordResetEmailPayload", zap.Error(err))
		return fmt.Errorf("json.Unmarshal failed: %w", asynq.SkipRetry)
	}

	if err := h.mailer.SendPasswordResetEmail(ctx, payload.Email, payload.Token); err != nil {
		utils.Logger.Error("Failed to send password reset email",
			zap.String("email", payload.Email), zap.Error(err))
		return err
	}
	utils.Logger.Info("Password reset email sent", zap.String("email", payload.Email))
	return nil
}
