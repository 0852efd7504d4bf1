package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/events"
	"github.com/spec-kit/portfolio-backend/internal/notification"
)

const notificationQueueSize = 64

// NotificationService fans contact message events out to the configured
// notifiers. Events are queued on publish and delivered by Run, off the
// request path.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	notifiers  []notification.Notifier
	queue      chan domain.ContactMessage
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, notifiers ...notification.Notifier) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		notifiers:  notifiers,
		queue:      make(chan domain.ContactMessage, notificationQueueSize),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactMessageReceived, n.handleContactMessageReceived)
}

func (n *NotificationService) handleContactMessageReceived(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ContactMessageReceivedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	if len(n.notifiers) == 0 {
		n.logger.Debug("no notifier configured", zap.String("message_id", payload.MessageID))
		return nil
	}

	message := domain.ContactMessage{
		ID:      payload.MessageID,
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Subject: payload.Subject,
		Message: payload.Message,
		UserID:  payload.UserID,
	}
	select {
	case n.queue <- message:
	default:
		n.logger.Warn("notification queue full, dropping alert", zap.String("message_id", message.ID))
	}
	return nil
}

// Run delivers queued alerts until ctx is cancelled.
func (n *NotificationService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message := <-n.queue:
			n.Deliver(ctx, message)
		}
	}
}

// Deliver sends one alert through every notifier. Failures are logged and
// never stop the remaining notifiers.
func (n *NotificationService) Deliver(ctx context.Context, message domain.ContactMessage) {
	for _, notifier := range n.notifiers {
		if err := notifier.NotifyNewContact(ctx, message); err != nil {
			n.logger.Warn("notification failed",
				zap.String("channel", notifier.Name()),
				zap.String("message_id", message.ID),
				zap.Error(err))
			continue
		}
		n.logger.Info("notification sent",
			zap.String("channel", notifier.Name()),
			zap.String("message_id", message.ID))
	}
}
