package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/momo-deepdive/backend/internal/models"
)

// ErrNotFound is returned when no feedback item matches.
var ErrNotFound = errors.New("feedback item not found")

// Repository handles feedback persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a feedback repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const feedbackColumns = `id, uid, user_name, user_email, category, content, status, admin_reply, reply_at, created_at`

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var f models.Feedback
	err := row.Scan(&f.ID, &f.UID, &f.UserName, &f.UserEmail, &f.Category, &f.Content,
		&f.Status, &f.AdminReply, &f.ReplyAt, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create stores a new feedback item. Every guest submission is its own
// item; the chat look comes from ordering, not threading.
func (r *Repository) Create(ctx context.Context, f *models.Feedback) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.Status = models.FeedbackNew
	const q = `INSERT INTO feedback (id, uid, user_name, user_email, category, content, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.pool.QueryRow(ctx, q, f.ID, f.UID, f.UserName, f.UserEmail, f.Category, f.Content, string(f.Status)).
		Scan(&f.CreatedAt)
}

// ListByUID returns one guest's items oldest first, chat order.
func (r *Repository) ListByUID(ctx context.Context, uid string) ([]*models.Feedback, error) {
	q := `SELECT ` + feedbackColumns + ` FROM feedback WHERE uid = $1 ORDER BY created_at ASC`
	return r.list(ctx, q, uid)
}

// ListAll returns every item newest first for the admin inbox.
func (r *Repository) ListAll(ctx context.Context) ([]*models.Feedback, error) {
	q := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *Repository) list(ctx context.Context, q string, args ...interface{}) ([]*models.Feedback, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*models.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetAndMarkRead returns one item, flipping a fresh item to read as a
// side effect of the admin opening it.
func (r *Repository) GetAndMarkRead(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	const q = `UPDATE feedback SET status = CASE WHEN status = 'new' THEN 'read' ELSE status END
		WHERE id = $1
		RETURNING ` + feedbackColumns
	f, err := scanFeedback(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// SetReply writes the admin's reply. There is at most one reply per
// item; replying again overwrites the previous text and timestamp.
func (r *Repository) SetReply(ctx context.Context, id uuid.UUID, reply string) (*models.Feedback, error) {
	const q = `UPDATE feedback SET admin_reply = $2, reply_at = NOW(), status = 'answered'
		WHERE id = $1
		RETURNING ` + feedbackColumns
	f, err := scanFeedback(r.pool.QueryRow(ctx, q, id, reply))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// Delete removes an item.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAnswered returns how many of the guest's items carry a reply.
func (r *Repository) CountAnswered(ctx context.Context, uid string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback WHERE uid = $1 AND admin_reply IS NOT NULL`, uid).Scan(&n)
	return n, err
}
