package dto

import (
	"time"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// SkillRequest payload for skill create and update.
type SkillRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Level string `json:"level" validate:"max=50"`
	Icon  string `json:"icon"`
}

// SkillResponse represents a skill.
type SkillResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Level     string    `json:"level"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSkillResponse(skill *domain.Skill) SkillResponse {
	return SkillResponse{
		ID:        skill.ID,
		Name:      skill.Name,
		Level:     skill.Level,
		Icon:      skill.Icon,
		CreatedAt: skill.CreatedAt,
		UpdatedAt: skill.UpdatedAt,
	}
}

func NewSkillList(skills []domain.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for i := range skills {
		out = append(out, NewSkillResponse(&skills[i]))
	}
	return out
}
