package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// SkillRepository encapsulates skill persistence.
type SkillRepository interface {
	Create(ctx context.Context, skill *domain.Skill) error
	Update(ctx context.Context, skill *domain.Skill) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Skill, error)
	GetByName(ctx context.Context, name string) (*domain.Skill, error)
	List(ctx context.Context) ([]domain.Skill, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Skill, error)
	ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.Skill, error)
}

type skillRepository struct {
	pool *pgxpool.Pool
}

// NewSkillRepository instantiates repository.
func NewSkillRepository(pool *pgxpool.Pool) SkillRepository {
	return &skillRepository{pool: pool}
}

const skillColumns = `s.id, s.name, s.level, s.icon, s.created_at, s.updated_at`

func (r *skillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	const query = `
        INSERT INTO skills (name, level, icon)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, skill.Name, skill.Level, skill.Icon).
		Scan(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt)
}

func (r *skillRepository) Update(ctx context.Context, skill *domain.Skill) error {
	const query = `
        UPDATE skills SET name=$1, level=$2, icon=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query, skill.Name, skill.Level, skill.Icon, skill.ID).
		Scan(&skill.CreatedAt, &skill.UpdatedAt)
}

func (r *skillRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *skillRepository) GetByID(ctx context.Context, id string) (*domain.Skill, error) {
	return scanSkill(r.pool.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills s WHERE s.id=$1`, id))
}

func (r *skillRepository) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	return scanSkill(r.pool.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills s WHERE LOWER(s.name)=LOWER($1)`, name))
}

func (r *skillRepository) List(ctx context.Context) ([]domain.Skill, error) {
	return r.fetchMany(ctx, `SELECT `+skillColumns+` FROM skills s ORDER BY s.name`)
}

func (r *skillRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Skill, error) {
	const query = `SELECT ` + skillColumns + `
        FROM skills s JOIN project_skills ps ON ps.skill_id = s.id
        WHERE ps.project_id=$1
        ORDER BY s.name`
	return r.fetchMany(ctx, query, projectID)
}

func (r *skillRepository) ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.Skill, error) {
	return r.fetchMany(ctx, `SELECT `+skillColumns+` FROM skills s WHERE s.created_at > $1 ORDER BY s.created_at`, after)
}

func (r *skillRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Skill, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *skill)
	}
	return skills, rows.Err()
}

func scanSkill(row pgx.Row) (*domain.Skill, error) {
	var skill domain.Skill
	if err := row.Scan(
		&skill.ID,
		&skill.Name,
		&skill.Level,
		&skill.Icon,
		&skill.CreatedAt,
		&skill.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &skill, nil
}
