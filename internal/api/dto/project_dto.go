package dto

import (
	"time"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// ProjectRequest payload for project create and update.
type ProjectRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status" validate:"required"`
	CoverImage  string   `json:"coverImage" validate:"omitempty,url"`
	RepoURL     string   `json:"repoUrl" validate:"omitempty,url"`
	LiveURL     string   `json:"liveUrl" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
	Stack       []string `json:"stack"`
	SkillIDs    []string `json:"skillIds" validate:"omitempty,dive,uuid"`
}

// ProjectResponse represents a project.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	Status      string    `json:"status"`
	CoverImage  string    `json:"coverImage"`
	RepoURL     string    `json:"repoUrl"`
	LiveURL     string    `json:"liveUrl"`
	Tags        []string  `json:"tags"`
	Stack       []string  `json:"stack"`
	SkillIDs    []string  `json:"skillIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Summary:     project.Summary,
		Status:      project.Status,
		CoverImage:  project.CoverImage,
		RepoURL:     project.RepoURL,
		LiveURL:     project.LiveURL,
		Tags:        orEmpty(project.Tags),
		Stack:       orEmpty(project.Stack),
		SkillIDs:    orEmpty(project.SkillIDs),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// NewProjectList maps a slice of projects.
func NewProjectList(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
