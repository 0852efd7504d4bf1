package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/repository"
)

// SkillService manages skills and their project links.
type SkillService struct {
	skills   repository.SkillRepository
	projects repository.ProjectRepository
}

// SkillInput describes a skill create or update payload.
type SkillInput struct {
	Name  string
	Level string
	Icon  string
}

// NewSkillService constructs the service.
func NewSkillService(skills repository.SkillRepository, projects repository.ProjectRepository) *SkillService {
	return &SkillService{skills: skills, projects: projects}
}

func (s *SkillService) List(ctx context.Context) ([]domain.Skill, error) {
	return s.skills.List(ctx)
}

func (s *SkillService) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	skill, err := s.skills.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, notFound(err, "skill", "name", name)
	}
	return skill, nil
}

// ListByProject returns the skills linked to a project, failing when the
// project itself does not exist.
func (s *SkillService) ListByProject(ctx context.Context, projectID string) ([]domain.Skill, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, notFound(err, "project", "id", projectID)
	}
	return s.skills.ListByProject(ctx, projectID)
}

func (s *SkillService) ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.Skill, error) {
	return s.skills.ListCreatedAfter(ctx, after)
}

func (s *SkillService) Create(ctx context.Context, input SkillInput) (*domain.Skill, error) {
	skill := &domain.Skill{
		Name:  strings.TrimSpace(input.Name),
		Level: strings.TrimSpace(input.Level),
		Icon:  strings.TrimSpace(input.Icon),
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) Update(ctx context.Context, id string, input SkillInput) (*domain.Skill, error) {
	skill := &domain.Skill{
		ID:    id,
		Name:  strings.TrimSpace(input.Name),
		Level: strings.TrimSpace(input.Level),
		Icon:  strings.TrimSpace(input.Icon),
	}
	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, notFound(err, "skill", "id", id)
	}
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, id string) error {
	return notFound(s.skills.Delete(ctx, id), "skill", "id", id)
}
