package archive

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/momo-deepdive/backend/internal/models"
)

// ErrNotFound is returned when no comment matches.
var ErrNotFound = errors.New("comment not found")

// Repository handles archive comment persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an archive repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create stores a comment on an archived event.
func (r *Repository) Create(ctx context.Context, cm *models.Comment) error {
	if cm.ID == uuid.Nil {
		cm.ID = uuid.New()
	}
	const q = `INSERT INTO comments (id, event_id, uid, user_name, user_photo, body, resource_title, resource_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	return r.pool.QueryRow(ctx, q, cm.ID, cm.EventID, cm.UID, cm.UserName, cm.UserPhoto,
		cm.Body, cm.ResourceTitle, cm.ResourceURL).Scan(&cm.CreatedAt)
}

// ListByEvent returns an event's comments oldest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID string) ([]*models.Comment, error) {
	const q = `SELECT id, event_id, uid, user_name, user_photo, body, resource_title, resource_url, created_at
		FROM comments WHERE event_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*models.Comment, 0)
	for rows.Next() {
		var cm models.Comment
		if err := rows.Scan(&cm.ID, &cm.EventID, &cm.UID, &cm.UserName, &cm.UserPhoto,
			&cm.Body, &cm.ResourceTitle, &cm.ResourceURL, &cm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &cm)
	}
	return out, rows.Err()
}

// Delete removes a comment, admin moderation only.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
