package notification

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/spec-kit/portfolio-backend/internal/config"
	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// MailSender is the part of the SendGrid client used to send email.
type MailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// EmailNotifier sends alerts through SendGrid.
type EmailNotifier struct {
	client MailSender
	from   string
	to     string
}

// NewEmailNotifier builds a SendGrid-backed notifier from configuration.
func NewEmailNotifier(cfg config.NotificationConfig) *EmailNotifier {
	return NewEmailNotifierWithClient(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg)
}

// NewEmailNotifierWithClient builds a notifier on top of an existing client.
func NewEmailNotifierWithClient(client MailSender, cfg config.NotificationConfig) *EmailNotifier {
	return &EmailNotifier{client: client, from: cfg.EmailFrom, to: cfg.EmailTo}
}

func (e *EmailNotifier) Name() string { return "email" }

func (e *EmailNotifier) NotifyNewContact(_ context.Context, message domain.ContactMessage) error {
	from := mail.NewEmail("Portfolio", e.from)
	to := mail.NewEmail("", e.to)
	subject := "New contact message: " + placeholder(message.Subject, "no subject")
	msg := mail.NewSingleEmail(from, subject, to, emailPlainText(message), emailHTML(message))
	if message.Email != "" {
		msg.SetReplyTo(mail.NewEmail(message.Name, message.Email))
	}

	resp, err := e.client.Send(msg)
	if err != nil {
		return err
	}
	if resp != nil && resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func emailPlainText(message domain.ContactMessage) string {
	return fmt.Sprintf("From: %s <%s>\nPhone: %s\nSubject: %s\n\n%s",
		placeholder(message.Name, "unknown"),
		placeholder(message.Email, "email?"),
		placeholder(message.Phone, "phone?"),
		placeholder(message.Subject, "no subject"),
		placeholder(message.Message, "no content"),
	)
}

func emailHTML(message domain.ContactMessage) string {
	return fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;<br><strong>Phone:</strong> %s<br><strong>Subject:</strong> %s</p><p>%s</p>",
		html.EscapeString(placeholder(message.Name, "unknown")),
		html.EscapeString(placeholder(message.Email, "email?")),
		html.EscapeString(placeholder(message.Phone, "phone?")),
		html.EscapeString(placeholder(message.Subject, "no subject")),
		html.EscapeString(placeholder(message.Message, "no content")),
	)
}
