package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// ProjectRepository encapsulates project persistence, skill links included.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Project, error)
	SearchByTitle(ctx context.Context, term string) ([]domain.Project, error)
	ListBySkillName(ctx context.Context, skillName string) ([]domain.Project, error)
	ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectSelect = `
        SELECT p.id, p.title, p.description, p.summary, p.status, p.cover_image, p.repo_url, p.live_url,
               p.tags, p.stack,
               ARRAY(SELECT ps.skill_id::text FROM project_skills ps WHERE ps.project_id = p.id ORDER BY ps.skill_id),
               p.created_at, p.updated_at
        FROM projects p`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (title, description, summary, status, cover_image, repo_url, live_url, tags, stack)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			project.Title,
			project.Description,
			project.Summary,
			project.Status,
			project.CoverImage,
			project.RepoURL,
			project.LiveURL,
			nonNil(project.Tags),
			nonNil(project.Stack),
		).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return err
		}
		return replaceSkillLinks(ctx, tx, project.ID, project.SkillIDs)
	})
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET title=$1, description=$2, summary=$3, status=$4, cover_image=$5,
            repo_url=$6, live_url=$7, tags=$8, stack=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING created_at, updated_at`

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query,
			project.Title,
			project.Description,
			project.Summary,
			project.Status,
			project.CoverImage,
			project.RepoURL,
			project.LiveURL,
			nonNil(project.Tags),
			nonNil(project.Stack),
			project.ID,
		).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
			return err
		}
		return replaceSkillLinks(ctx, tx, project.ID, project.SkillIDs)
	})
}

func replaceSkillLinks(ctx context.Context, tx pgx.Tx, projectID string, skillIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM project_skills WHERE project_id=$1`, projectID); err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	const query = `
        INSERT INTO project_skills (project_id, skill_id)
        SELECT $1::uuid, UNNEST($2::uuid[])
        ON CONFLICT DO NOTHING`
	_, err := tx.Exec(ctx, query, projectID, skillIDs)
	return err
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, projectSelect+` WHERE p.id=$1`, id))
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.fetchMany(ctx, projectSelect+` ORDER BY p.created_at DESC`)
}

func (r *projectRepository) ListByStatus(ctx context.Context, status string) ([]domain.Project, error) {
	return r.fetchMany(ctx, projectSelect+` WHERE LOWER(p.status)=LOWER($1) ORDER BY p.created_at DESC`, status)
}

func (r *projectRepository) SearchByTitle(ctx context.Context, term string) ([]domain.Project, error) {
	return r.fetchMany(ctx, projectSelect+` WHERE LOWER(p.title) LIKE $1 ESCAPE '\' ORDER BY p.created_at DESC`, containsPattern(term))
}

func (r *projectRepository) ListBySkillName(ctx context.Context, skillName string) ([]domain.Project, error) {
	const filter = `
        WHERE EXISTS (
            SELECT 1 FROM project_skills ps JOIN skills s ON s.id = ps.skill_id
            WHERE ps.project_id = p.id AND LOWER(s.name) = LOWER($1)
        )
        ORDER BY p.created_at DESC`
	return r.fetchMany(ctx, projectSelect+filter, skillName)
}

func (r *projectRepository) ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.Project, error) {
	return r.fetchMany(ctx, projectSelect+` WHERE p.created_at > $1 ORDER BY p.created_at DESC`, after)
}

func (r *projectRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var project domain.Project
	if err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Summary,
		&project.Status,
		&project.CoverImage,
		&project.RepoURL,
		&project.LiveURL,
		&project.Tags,
		&project.Stack,
		&project.SkillIDs,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
