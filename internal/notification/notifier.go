// Package notification delivers new-contact alerts to the site owner.
package notification

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

const (
	smsSubjectLimit = 60
	smsContentLimit = 160
)

// Notifier delivers a new-contact alert over one channel.
type Notifier interface {
	Name() string
	NotifyNewContact(ctx context.Context, message domain.ContactMessage) error
}

// SMSBody renders the short alert text. Long subjects and contents are cut
// and suffixed with "...", blank fields get a placeholder.
func SMSBody(message domain.ContactMessage) string {
	return fmt.Sprintf("New message: %s\nFrom: %s (%s, %s)\nContent: %s",
		placeholder(truncate(message.Subject, smsSubjectLimit), "no subject"),
		placeholder(message.Name, "unknown"),
		placeholder(message.Email, "email?"),
		placeholder(message.Phone, "phone?"),
		placeholder(truncate(message.Message, smsContentLimit), "no content"),
	)
}

func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit-3]) + "..."
}

func placeholder(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
