package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"personalsite/internal/models"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	ListAll(ctx context.Context) ([]*models.ContactMessage, error)
	ListUnhandled(ctx context.Context) ([]*models.ContactMessage, error)
	MarkHandled(ctx context.Context, id uuid.UUID) error
}

type contactMessageRepository struct {
	DB *sql.DB
}

func NewContactMessageRepository(db *sql.DB) ContactMessageRepository {
	return &contactMessageRepository{DB: db}
}

const contactColumns = `id, name, email, message, created_at, handled`

func (r *contactMessageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	const q = `
		INSERT INTO contact_message (id, name, email, message, created_at, handled)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.DB.ExecContext(ctx, q,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt, msg.Handled,
	); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	q := `SELECT ` + contactColumns + ` FROM contact_message WHERE id = $1`
	var m models.ContactMessage
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt, &m.Handled,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return &m, nil
}

func (r *contactMessageRepository) ListAll(ctx context.Context) ([]*models.ContactMessage, error) {
	return r.list(ctx, `SELECT `+contactColumns+` FROM contact_message ORDER BY created_at DESC`)
}

func (r *contactMessageRepository) ListUnhandled(ctx context.Context) ([]*models.ContactMessage, error) {
	return r.list(ctx, `SELECT `+contactColumns+` FROM contact_message WHERE handled = FALSE ORDER BY created_at DESC`)
}

func (r *contactMessageRepository) list(ctx context.Context, q string) ([]*models.ContactMessage, error) {
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var out []*models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt, &m.Handled); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}
	return out, nil
}

func (r *contactMessageRepository) MarkHandled(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.ExecContext(ctx, `UPDATE contact_message SET handled = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark contact message handled: %w", err)
	}
	return nil
}
