package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/events"
	"github.com/spec-kit/portfolio-backend/internal/repository"
	apperrors "github.com/spec-kit/portfolio-backend/pkg/util/errorutil"
)

// MessageService handles contact form submissions and their administration.
type MessageService struct {
	messages   repository.ContactMessageRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MessageInput is a public contact form submission.
type MessageInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.ContactMessageRepository, dispatcher events.Dispatcher, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{messages: messages, dispatcher: dispatcher, logger: logger}
}

// Submit stores a message, linking it to the sender's account when the
// request is authenticated, and announces it to subscribers.
func (s *MessageService) Submit(ctx context.Context, input MessageInput, sender *auth.Principal) (*domain.ContactMessage, error) {
	message := &domain.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   domain.NormalizeEmail(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if sender != nil && sender.UserID != "" {
		userID := sender.UserID
		message.UserID = &userID
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventContactMessageReceived, message.ID, events.ContactMessageReceivedPayload{
			MessageID: message.ID,
			Name:      message.Name,
			Email:     message.Email,
			Phone:     message.Phone,
			Subject:   message.Subject,
			Message:   message.Message,
			UserID:    message.UserID,
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("contact message event not fully handled", zap.String("message_id", message.ID), zap.Error(err))
		}
	}
	return message, nil
}

func (s *MessageService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.messages.List(ctx)
}

func (s *MessageService) ListUnread(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.messages.ListUnread(ctx)
}

func (s *MessageService) ListByEmail(ctx context.Context, email string) ([]domain.ContactMessage, error) {
	return s.messages.ListByEmail(ctx, domain.NormalizeEmail(email))
}

// Search matches the keyword against name, email, subject and body.
func (s *MessageService) Search(ctx context.Context, keyword string) ([]domain.ContactMessage, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, apperrors.NewValidationError("search keyword required", nil)
	}
	return s.messages.Search(ctx, keyword)
}

func (s *MessageService) ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.ContactMessage, error) {
	return s.messages.ListCreatedAfter(ctx, after)
}

func (s *MessageService) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "message", "id", id)
	}
	return message, nil
}

func (s *MessageService) MarkRead(ctx context.Context, id string) error {
	return notFound(s.messages.MarkRead(ctx, id), "message", "id", id)
}

func (s *MessageService) Delete(ctx context.Context, id string) error {
	return notFound(s.messages.Delete(ctx, id), "message", "id", id)
}
