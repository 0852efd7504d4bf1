package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-backend/internal/api/dto"
	"github.com/spec-kit/portfolio-backend/internal/service"
)

// ProjectsHandler serves public and admin project endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
}

func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List handles GET /api/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewProjectList(projects))
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewProjectResponse(project))
}

// ListByStatus handles GET /api/admin/projects/status/:status.
func (h *ProjectsHandler) ListByStatus(c *fiber.Ctx) error {
	projects, err := h.projects.ListByStatus(c.UserContext(), c.Params("status"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewProjectList(projects))
}

// Search handles GET /api/admin/projects/search?title=.
func (h *ProjectsHandler) Search(c *fiber.Ctx) error {
	projects, err := h.projects.Search(c.UserContext(), c.Query("title"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewProjectList(projects))
}

// ListBySkill handles GET /api/admin/projects/skill/:skillName.
func (h *ProjectsHandler) ListBySkill(c *fiber.Ctx) error {
	projects, err := h.projects.ListBySkill(c.UserContext(), c.Params("skillName"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewProjectList(projects))
}

// ListCreatedAfter handles GET /api/admin/projects/created-after/:date.
func (h *ProjectsHandler) ListCreatedAfter(c *fiber.Ctx) error {
	after, err := pathDate(c, "date")
	if err != nil {
		return err
	}
	projects, err := h.projects.ListCreatedAfter(c.UserContext(), after)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewProjectList(projects))
}

// Create handles POST /api/admin/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	project, err := h.projects.Create(c.UserContext(), projectInput(req))
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewProjectResponse(project))
}

// Update handles PUT /api/admin/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	project, err := h.projects.Update(c.UserContext(), id, projectInput(req))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewProjectResponse(project))
}

// Delete handles DELETE /api/admin/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func projectInput(req dto.ProjectRequest) service.ProjectInput {
	return service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Summary:     req.Summary,
		Status:      req.Status,
		CoverImage:  req.CoverImage,
		RepoURL:     req.RepoURL,
		LiveURL:     req.LiveURL,
		Tags:        req.Tags,
		Stack:       req.Stack,
		SkillIDs:    req.SkillIDs,
	}
}
