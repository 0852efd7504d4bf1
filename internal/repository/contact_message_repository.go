package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// ContactMessageRepository persists messages sent through the contact form.
type ContactMessageRepository interface {
	Create(ctx context.Context, message *domain.ContactMessage) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	ListUnread(ctx context.Context) ([]domain.ContactMessage, error)
	ListByEmail(ctx context.Context, email string) ([]domain.ContactMessage, error)
	Search(ctx context.Context, keyword string) ([]domain.ContactMessage, error)
	ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
}

type contactMessageRepository struct {
	pool *pgxpool.Pool
}

// NewContactMessageRepository instantiates repository.
func NewContactMessageRepository(pool *pgxpool.Pool) ContactMessageRepository {
	return &contactMessageRepository{pool: pool}
}

const contactMessageSelect = `
        SELECT id, name, email, phone, subject, message, is_read, user_id::text, created_at
        FROM contact_messages`

func (r *contactMessageRepository) Create(ctx context.Context, message *domain.ContactMessage) error {
	const query = `
        INSERT INTO contact_messages (name, email, phone, subject, message, user_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, is_read, created_at`
	return r.pool.QueryRow(ctx, query,
		message.Name,
		message.Email,
		message.Phone,
		message.Subject,
		message.Message,
		message.UserID,
	).Scan(&message.ID, &message.Read, &message.CreatedAt)
}

func (r *contactMessageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactMessageRepository) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE contact_messages SET is_read=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	return scanContactMessage(r.pool.QueryRow(ctx, contactMessageSelect+` WHERE id=$1`, id))
}

func (r *contactMessageRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return r.fetchMany(ctx, contactMessageSelect+` ORDER BY created_at DESC`)
}

func (r *contactMessageRepository) ListUnread(ctx context.Context) ([]domain.ContactMessage, error) {
	return r.fetchMany(ctx, contactMessageSelect+` WHERE NOT is_read ORDER BY created_at DESC`)
}

func (r *contactMessageRepository) ListByEmail(ctx context.Context, email string) ([]domain.ContactMessage, error) {
	return r.fetchMany(ctx, contactMessageSelect+` WHERE LOWER(email)=LOWER($1) ORDER BY created_at DESC`, email)
}

func (r *contactMessageRepository) Search(ctx context.Context, keyword string) ([]domain.ContactMessage, error) {
	const filter = `
        WHERE LOWER(name) LIKE $1 ESCAPE '\'
           OR LOWER(email) LIKE $1 ESCAPE '\'
           OR LOWER(subject) LIKE $1 ESCAPE '\'
           OR LOWER(message) LIKE $1 ESCAPE '\'
        ORDER BY created_at DESC`
	return r.fetchMany(ctx, contactMessageSelect+filter, containsPattern(keyword))
}

func (r *contactMessageRepository) ListCreatedAfter(ctx context.Context, after time.Time) ([]domain.ContactMessage, error) {
	return r.fetchMany(ctx, contactMessageSelect+` WHERE created_at > $1 ORDER BY created_at DESC`, after)
}

func (r *contactMessageRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		message, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}
	return messages, rows.Err()
}

func scanContactMessage(row pgx.Row) (*domain.ContactMessage, error) {
	var message domain.ContactMessage
	if err := row.Scan(
		&message.ID,
		&message.Name,
		&message.Email,
		&message.Phone,
		&message.Subject,
		&message.Message,
		&message.Read,
		&message.UserID,
		&message.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &message, nil
}
