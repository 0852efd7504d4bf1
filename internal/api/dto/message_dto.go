package dto

import (
	"time"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// ContactMessageRequest is the public contact form payload.
type ContactMessageRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=40"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactMessageResponse represents a stored message.
type ContactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	UserID    *string   `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewContactMessageResponse(message *domain.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Message:   message.Message,
		Read:      message.Read,
		UserID:    message.UserID,
		CreatedAt: message.CreatedAt,
	}
}

func NewContactMessageList(messages []domain.ContactMessage) []ContactMessageResponse {
	out := make([]ContactMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, NewContactMessageResponse(&messages[i]))
	}
	return out
}
