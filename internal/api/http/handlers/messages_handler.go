package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-backend/internal/api/dto"
	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/service"
)

// MessagesHandler serves the contact form and the admin inbox.
type MessagesHandler struct {
	messages *service.MessageService
}

func NewMessagesHandler(messages *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// Submit handles POST /api/messages. Anonymous senders are accepted; an
// authenticated sender is linked to the message.
func (h *MessagesHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactMessageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	sender, _ := auth.PrincipalFromContext(c)
	message, err := h.messages.Submit(c.UserContext(), service.MessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}, sender)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewContactMessageResponse(message))
}

// List handles GET /api/admin/messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	messages, err := h.messages.List(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewContactMessageList(messages))
}

// ListUnread handles GET /api/admin/messages/unread.
func (h *MessagesHandler) ListUnread(c *fiber.Ctx) error {
	messages, err := h.messages.ListUnread(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewContactMessageList(messages))
}

// ListByEmail handles GET /api/admin/messages/email/:email.
func (h *MessagesHandler) ListByEmail(c *fiber.Ctx) error {
	messages, err := h.messages.ListByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewContactMessageList(messages))
}

// Search handles GET /api/admin/messages/search?q= and
// GET /api/admin/messages/search/:keyword.
func (h *MessagesHandler) Search(c *fiber.Ctx) error {
	keyword := c.Params("keyword")
	if keyword == "" {
		keyword = c.Query("q")
	}
	messages, err := h.messages.Search(c.UserContext(), keyword)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewContactMessageList(messages))
}

// ListCreatedAfter handles GET /api/admin/messages/after/:date.
func (h *MessagesHandler) ListCreatedAfter(c *fiber.Ctx) error {
	after, err := pathDate(c, "date")
	if err != nil {
		return err
	}
	messages, err := h.messages.ListCreatedAfter(c.UserContext(), after)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewContactMessageList(messages))
}

// Get handles GET /api/admin/messages/:id.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	message, err := h.messages.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewContactMessageResponse(message))
}

// MarkRead handles PATCH /api/admin/messages/:id/read.
func (h *MessagesHandler) MarkRead(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.messages.MarkRead(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /api/admin/messages/:id.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.messages.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
