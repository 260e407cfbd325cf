package rsvps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/momo-deepdive/backend/internal/models"
)

// ErrAlreadyCheckedIn is returned when a conditional check-in finds the
// registration already marked.
var ErrAlreadyCheckedIn = errors.New("registration already checked in")

// ErrNotFound is returned when no registration matches.
var ErrNotFound = errors.New("registration not found")

// Repository handles registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an RSVP repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const rsvpColumns = `id, event_id, uid, user_name, user_email, user_photo, type, status, attendees, admin_notes, is_manual, checked_in, created_at`

func scanRSVP(row pgx.Row) (*models.RSVP, error) {
	var r models.RSVP
	var attendees []byte
	err := row.Scan(&r.ID, &r.EventID, &r.UID, &r.UserName, &r.UserEmail, &r.UserPhoto,
		&r.Type, &r.Status, &attendees, &r.AdminNotes, &r.IsManual, &r.CheckedIn, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attendees, &r.Attendees); err != nil {
		return nil, fmt.Errorf("decode attendees: %w", err)
	}
	return &r, nil
}

// Upsert writes a registration keyed by its composite id. A repeat save
// by the same user replaces type and party but keeps admin fields.
func (r *Repository) Upsert(ctx context.Context, rsvp *models.RSVP) error {
	attendees, err := json.Marshal(rsvp.Attendees)
	if err != nil {
		return fmt.Errorf("encode attendees: %w", err)
	}
	const q = `INSERT INTO rsvps (id, event_id, uid, user_name, user_email, user_photo, type, status, attendees, is_manual)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			user_name  = EXCLUDED.user_name,
			user_email = EXCLUDED.user_email,
			user_photo = EXCLUDED.user_photo,
			type       = EXCLUDED.type,
			status     = EXCLUDED.status,
			attendees  = EXCLUDED.attendees
		RETURNING admin_notes, checked_in, created_at`
	return r.pool.QueryRow(ctx, q,
		rsvp.ID, rsvp.EventID, rsvp.UID, rsvp.UserName, rsvp.UserEmail, rsvp.UserPhoto,
		string(rsvp.Type), rsvp.Status, attendees, rsvp.IsManual,
	).Scan(&rsvp.AdminNotes, &rsvp.CheckedIn, &rsvp.CreatedAt)
}

// GetByEventAndUID returns a user's registration for an event, or nil
// when they have none.
func (r *Repository) GetByEventAndUID(ctx context.Context, eventID, uid string) (*models.RSVP, error) {
	q := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE id = $1`
	rsvp, err := scanRSVP(r.pool.QueryRow(ctx, q, models.RSVPDocID(eventID, uid)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rsvp, nil
}

// GetByID returns a registration by its row id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.RSVP, error) {
	q := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE id = $1`
	rsvp, err := scanRSVP(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rsvp, nil
}

// Delete removes a registration by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rsvps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByEvent returns all registrations for an event, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID string) ([]*models.RSVP, error) {
	q := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE event_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*models.RSVP, 0)
	for rows.Next() {
		rsvp, err := scanRSVP(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rsvp)
	}
	return out, rows.Err()
}

// CheckInByUID marks a registration checked in, conditionally: the row
// must exist and not already be checked in. The database row is the
// authority, so two scanners racing on the same ticket get exactly one
// success.
func (r *Repository) CheckInByUID(ctx context.Context, eventID, uid string) (*models.RSVP, error) {
	const q = `UPDATE rsvps SET checked_in = TRUE
		WHERE event_id = $1 AND uid = $2 AND NOT checked_in
		RETURNING ` + rsvpColumns
	rsvp, err := scanRSVP(r.pool.QueryRow(ctx, q, eventID, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		existing, gerr := r.GetByEventAndUID(ctx, eventID, uid)
		if gerr != nil {
			return nil, gerr
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		return existing, ErrAlreadyCheckedIn
	}
	return rsvp, err
}

// ToggleCheckIn flips the checked_in flag from the roster console.
func (r *Repository) ToggleCheckIn(ctx context.Context, id string) (bool, error) {
	var checkedIn bool
	err := r.pool.QueryRow(ctx, `UPDATE rsvps SET checked_in = NOT checked_in WHERE id = $1 RETURNING checked_in`, id).Scan(&checkedIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	return checkedIn, err
}

// UpdateNotes replaces the admin notes on a registration.
func (r *Repository) UpdateNotes(ctx context.Context, id, notes string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE rsvps SET admin_notes = $2 WHERE id = $1`, id, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Update rewrites the editable fields of a registration from the roster
// console.
func (r *Repository) Update(ctx context.Context, rsvp *models.RSVP) error {
	attendees, err := json.Marshal(rsvp.Attendees)
	if err != nil {
		return fmt.Errorf("encode attendees: %w", err)
	}
	const q = `UPDATE rsvps SET
			user_name = $2, user_email = $3, type = $4, attendees = $5, admin_notes = $6, checked_in = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, rsvp.ID, rsvp.UserName, rsvp.UserEmail, string(rsvp.Type), attendees, rsvp.AdminNotes, rsvp.CheckedIn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InPersonHeadcount sums party sizes across confirmed in-person
// registrations. Rows with an empty party still seat one person.
func (r *Repository) InPersonHeadcount(ctx context.Context, eventID string) (int, error) {
	const q = `SELECT COALESCE(SUM(GREATEST(jsonb_array_length(attendees), 1)), 0)
		FROM rsvps WHERE event_id = $1 AND type = 'in-person' AND status = $2`
	var n int
	err := r.pool.QueryRow(ctx, q, eventID, models.StatusConfirmed).Scan(&n)
	return n, err
}

// HasConfirmed reports whether the user holds at least one confirmed
// registration for any event.
func (r *Repository) HasConfirmed(ctx context.Context, uid string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM rsvps WHERE uid = $1 AND status = $2)`
	var ok bool
	err := r.pool.QueryRow(ctx, q, uid, models.StatusConfirmed).Scan(&ok)
	return ok, err
}
