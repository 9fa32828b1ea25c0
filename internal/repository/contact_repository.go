package repository

import (
	"context"
	"database/sql"

	"github.com/yallaevents/ems-backend/internal/model"
)

// ContactRepo stores contact-form submissions.  Pure intake, no
// invariants.
type ContactRepo struct {
	db *sql.DB
}

// NewContactRepo returns a new ContactRepo bound to the given database.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts a message and populates its generated ID and timestamp.
func (r *ContactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	m.SentAt = model.Now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (name, email, message, sent_at) VALUES (?, ?, ?, ?)`,
		m.Name, m.Email, m.Message, m.SentAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}
