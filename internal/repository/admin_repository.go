package repository

import (
	"context"
	"database/sql"

	"github.com/yallaevents/ems-backend/internal/model"
)

// AdminRepo reads and seeds the single stored admin credential.  The table
// never holds a plaintext password, and there is no hardcoded fallback
// credential anywhere: startup seeds the row from mandatory configuration.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByEmail returns the admin row for an email, or sql.ErrNoRows.  The
// caller treats a missing row and a bad password identically so login
// failures never reveal which half was wrong.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var a model.AdminUser
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM admin_users WHERE email = ?`, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Ensure upserts the configured credential at startup so login always
// compares against the stored row.  An existing row for the email gets its
// hash refreshed; otherwise a new row is inserted.
func (r *AdminRepo) Ensure(ctx context.Context, email, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET password_hash = ? WHERE email = ?`, passwordHash, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO admin_users (email, password_hash) VALUES (?, ?)`, email, passwordHash)
	return err
}
