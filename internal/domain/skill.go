package domain

import "time"

// Skill is a technology or competence shown on the portfolio.
type Skill struct {
	ID        string
	Name      string
	Level     string
	Icon      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
