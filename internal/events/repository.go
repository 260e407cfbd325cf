package events

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles the operator capacity override per event.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CapacityOverride returns the stored capacity for an event, or (0,
// false) when no override exists.
func (r *Repository) CapacityOverride(ctx context.Context, eventID string) (int, bool, error) {
	var capacity int
	err := r.pool.QueryRow(ctx, `SELECT capacity FROM events WHERE id = $1`, eventID).Scan(&capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return capacity, true, nil
}

// SetCapacity stores a capacity override for an event.
func (r *Repository) SetCapacity(ctx context.Context, eventID string, capacity int) error {
	const q = `INSERT INTO events (id, capacity) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET capacity = EXCLUDED.capacity`
	_, err := r.pool.Exec(ctx, q, eventID, capacity)
	return err
}
