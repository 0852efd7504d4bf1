package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/repository"
	apperrors "github.com/spec-kit/portfolio-backend/pkg/util/errorutil"
)

// ProjectService manages portfolio projects.
type ProjectService struct {
	projects repository.ProjectRepository
}

// ProjectInput describes a project create or update payload.
type ProjectInput struct {
	Title       string
	Description string
	Summary     string
	Status      string
	CoverImage  string
	RepoURL     string
	LiveURL     string
	Tags        []string
	Stack       []string
	SkillIDs    []string
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project", "id", id)
	}
	return project, nil
}

func (s *ProjectService) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return s.projects.ListByStatus(ctx, strings.TrimSpace(status))
}

// Search matches a case-insensitive substring of the title.
func (s *ProjectService) Search(ctx context.Context, title string) ([]domain.Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("title query required", nil)
	}
	return s.projects.SearchByTitle(ctx, title)
}

func (s *ProjectService) ListBySkill(ctx context.Context, skillName string) ([]domain.Project, error) {
	return s.projects.ListBySkillName(ctx, strings.TrimSpace(skillName))
}

func (s *ProjectService) ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.Project, error) {
	return s.projects.ListCreatedAfter(ctx, after)
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	project := &domain.Project{}
	applyProjectInput(project, input)
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update replaces every field of an existing project, skill links included.
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*domain.Project, error) {
	project := &domain.Project{ID: id}
	applyProjectInput(project, input)
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, notFound(err, "project", "id", id)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return notFound(s.projects.Delete(ctx, id), "project", "id", id)
}

func applyProjectInput(project *domain.Project, input ProjectInput) {
	project.Title = strings.TrimSpace(input.Title)
	project.Description = strings.TrimSpace(input.Description)
	project.Summary = strings.TrimSpace(input.Summary)
	project.Status = strings.TrimSpace(input.Status)
	project.CoverImage = strings.TrimSpace(input.CoverImage)
	project.RepoURL = strings.TrimSpace(input.RepoURL)
	project.LiveURL = strings.TrimSpace(input.LiveURL)
	project.Tags = compact(input.Tags)
	project.Stack = compact(input.Stack)
	project.SkillIDs = compact(input.SkillIDs)
}

// compact trims entries and drops blanks and duplicates, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
