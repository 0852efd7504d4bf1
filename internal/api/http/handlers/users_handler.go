package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-backend/internal/api/dto"
	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/service"
)

// UsersHandler exposes account administration.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserList(users))
}

// ListByRole handles GET /api/admin/users/role/:role.
func (h *UsersHandler) ListByRole(c *fiber.Ctx) error {
	users, err := h.users.ListByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserList(users))
}

// GetByEmail handles GET /api/admin/users/email/:email.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	user, err := h.users.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// GetByUsername handles GET /api/admin/users/username/:username.
func (h *UsersHandler) GetByUsername(c *fiber.Ctx) error {
	user, err := h.users.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserResponse(user))
}

// ListCreatedAfter handles GET /api/admin/users/created-after/:date.
func (h *UsersHandler) ListCreatedAfter(c *fiber.Ctx) error {
	after, err := pathDate(c, "date")
	if err != nil {
		return err
	}
	users, err := h.users.ListCreatedAfter(c.UserContext(), after)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewUserList(users))
}

// Roles handles GET /api/admin/roles.
func (h *UsersHandler) Roles(c *fiber.Ctx) error {
	return data(c, http.StatusOK, dto.NewRoleList(h.users.Roles()))
}

// Role handles GET /api/admin/roles/:name.
func (h *UsersHandler) Role(c *fiber.Ctx) error {
	role, err := h.users.Role(c.Params("name"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.RoleResponse{Name: role})
}

// Create handles POST /api/admin/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), service.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewUserResponse(user))
}

// Delete handles DELETE /api/admin/users/:id. Admins cannot delete themselves.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.UserID == id {
		return fiber.NewError(http.StatusConflict, "cannot delete the signed-in account")
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
