package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-backend/internal/api/dto"
	"github.com/spec-kit/portfolio-backend/internal/service"
)

// SkillsHandler serves skill endpoints.
type SkillsHandler struct {
	skills *service.SkillService
}

func NewSkillsHandler(skills *service.SkillService) *SkillsHandler {
	return &SkillsHandler{skills: skills}
}

// List handles GET /api/skills.
func (h *SkillsHandler) List(c *fiber.Ctx) error {
	skills, err := h.skills.List(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewSkillList(skills))
}

// GetByName handles GET /api/skills/:name.
func (h *SkillsHandler) GetByName(c *fiber.Ctx) error {
	skill, err := h.skills.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewSkillResponse(skill))
}

// ListCreatedAfter handles GET /api/skills/created-after/:date.
func (h *SkillsHandler) ListCreatedAfter(c *fiber.Ctx) error {
	after, err := pathDate(c, "date")
	if err != nil {
		return err
	}
	skills, err := h.skills.ListCreatedAfter(c.UserContext(), after)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewSkillList(skills))
}

// ListByProject handles GET /api/skills/project/:projectId.
func (h *SkillsHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	skills, err := h.skills.ListByProject(c.UserContext(), projectID)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewSkillList(skills))
}

// Create handles POST /api/admin/skills.
func (h *SkillsHandler) Create(c *fiber.Ctx) error {
	var req dto.SkillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	skill, err := h.skills.Create(c.UserContext(), service.SkillInput{Name: req.Name, Level: req.Level, Icon: req.Icon})
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewSkillResponse(skill))
}

// Update handles PUT /api/admin/skills/:id.
func (h *SkillsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SkillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	skill, err := h.skills.Update(c.UserContext(), id, service.SkillInput{Name: req.Name, Level: req.Level, Icon: req.Icon})
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewSkillResponse(skill))
}

// Delete handles DELETE /api/admin/skills/:id.
func (h *SkillsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.skills.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
