package mailer

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/iots1/contacts-api/config"
	"github.com/iots1/contacts-api/internal/shared/utils"
)

// Mailer sends transactional mail.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}

// SMTPMailer delivers mail over SMTP using go-mail.
type SMTPMailer struct {
	conf    config.MailConfig
	baseURL string
}

func NewSMTPMailer(conf config.MailConfig, baseURL string) *SMTPMailer {
	return &SMTPMailer{conf: conf, baseURL: baseURL}
}

// SendVerificationEmail mails the registration confirmation link.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/auth/verify?token=%s", m.baseURL, token)
	body := fmt.Sprintf(`<html>
  <body>
    <h2>Welcome!</h2>
    <p>To confirm your registration, follow the link:</p>
    <a href="%s">Confirm email</a>
  </body>
</html>`, link)
	return m.send(ctx, email, "Confirmation of registration", body)
}

// SendPasswordResetEmail mails password reset instructions.
func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/auth/password/reset/confirm?token=%s", m.baseURL, token)
	body := fmt.Sprintf(`<html>
  <body>
    <h2>Password reset</h2>
    <p>To reset your password, follow the link:</p>
    <a href="%s">Reset password</a>
  </body>
</html>`, link)
	return m.send(ctx, email, "Password reset instructions", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.conf.From); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", m.conf.From, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient(m.conf.Host,
		gomail.WithPort(m.conf.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.conf.Username),
		gomail.WithPassword(m.conf.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	utils.Logger.Info("Mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
