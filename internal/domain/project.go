package domain

import "time"

// Project is a portfolio entry.
type Project struct {
	ID          string
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
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
