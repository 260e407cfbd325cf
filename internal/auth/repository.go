package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/momo-deepdive/backend/internal/models"
)

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByUID returns a user by identity id, or nil when absent.
func (r *Repository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	const q = `SELECT uid, email, display_name, photo_url, role, COALESCE(password_hash,''), last_seen, created_at
		FROM users WHERE uid = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, uid).Scan(&u.UID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.Role, &u.Password, &u.LastSeen, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT uid, email, display_name, photo_url, role, COALESCE(password_hash,''), last_seen, created_at
		FROM users WHERE LOWER(email) = LOWER($1)`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.UID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.Role, &u.Password, &u.LastSeen, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert inserts the user or refreshes profile fields and last_seen on
// repeat sign-in. The stored role is only ever raised to admin, never
// demoted by a plain sign-in.
func (r *Repository) Upsert(ctx context.Context, u *models.User) error {
	const q = `INSERT INTO users (uid, email, display_name, photo_url, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = CASE WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name ELSE users.display_name END,
			photo_url = CASE WHEN EXCLUDED.photo_url <> '' THEN EXCLUDED.photo_url ELSE users.photo_url END,
			role = CASE WHEN EXCLUDED.role = 'admin' THEN 'admin' ELSE users.role END,
			last_seen = NOW()
		RETURNING role, last_seen, created_at`
	return r.pool.QueryRow(ctx, q, u.UID, u.Email, u.DisplayName, u.PhotoURL, string(u.Role)).
		Scan(&u.Role, &u.LastSeen, &u.CreatedAt)
}

// TouchLastSeen refreshes the profile's last_seen marker.
func (r *Repository) TouchLastSeen(ctx context.Context, uid string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_seen = NOW() WHERE uid = $1`, uid)
	return err
}
