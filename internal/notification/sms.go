package notification

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/spec-kit/portfolio-backend/internal/config"
	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// ErrSMSSenderMissing is returned when neither a sender number nor a
// messaging service is configured.
var ErrSMSSenderMissing = errors.New("notification: sms sender not configured")

// MessageCreator is the part of the Twilio API used to send SMS.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier sends alerts through Twilio.
type SMSNotifier struct {
	api                 MessageCreator
	to                  string
	from                string
	messagingServiceSID string
}

// NewSMSNotifier builds a Twilio-backed notifier from configuration.
func NewSMSNotifier(cfg config.NotificationConfig) (*SMSNotifier, error) {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return NewSMSNotifierWithAPI(client.Api, cfg)
}

// NewSMSNotifierWithAPI builds a notifier on top of an existing API client.
func NewSMSNotifierWithAPI(api MessageCreator, cfg config.NotificationConfig) (*SMSNotifier, error) {
	if cfg.SMSFromNumber == "" && cfg.SMSMessagingService == "" {
		return nil, ErrSMSSenderMissing
	}
	return &SMSNotifier{
		api:                 api,
		to:                  cfg.SMSToNumber,
		from:                cfg.SMSFromNumber,
		messagingServiceSID: cfg.SMSMessagingService,
	}, nil
}

func (s *SMSNotifier) Name() string { return "sms" }

// NotifyNewContact sends the alert text. A messaging service takes precedence
// over the sender number.
func (s *SMSNotifier) NotifyNewContact(_ context.Context, message domain.ContactMessage) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.to)
	if s.messagingServiceSID != "" {
		params.SetMessagingServiceSid(s.messagingServiceSID)
	} else {
		params.SetFrom(s.from)
	}
	params.SetBody(SMSBody(message))

	_, err := s.api.CreateMessage(params)
	return err
}
