package repository

import (
	"context"
	"database/sql"

	"github.com/yallaevents/ems-backend/internal/model"
)

// PendingEventRepo owns the event-request workflow.  A request is created
// in status pending, transitions exactly once to approved or rejected, and
// can be deleted outright at any point (spam cleanup, distinct from
// rejection).
type PendingEventRepo struct {
	db *sql.DB
}

// NewPendingEventRepo returns a new PendingEventRepo bound to the given
// database.
func NewPendingEventRepo(db *sql.DB) *PendingEventRepo { return &PendingEventRepo{db: db} }

// Create inserts a public submission in status pending.  The generated ID,
// status and creation timestamp are populated on the provided model.
func (r *PendingEventRepo) Create(ctx context.Context, p *model.PendingEvent) error {
	p.Status = model.StatusPending
	p.CreatedAt = model.Now()
	if p.CreatedBy == "" {
		p.CreatedBy = model.DefaultCreatedBy
	}
	if p.UserEmail == "" {
		p.UserEmail = model.DefaultUserEmail
	}
	const q = `INSERT INTO pending_events
		(name, date, time, location, category, description, image_filename,
		 max_attendees, ticket_price, created_by, user_email, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Name, p.Date, p.Time, p.Location, p.Category, p.Description,
		p.ImageFilename, p.MaxAttendees, p.TicketPrice, p.CreatedBy,
		p.UserEmail, p.Status, p.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

const pendingColumns = `id, name, date, time, location, category, description,
	image_filename, max_attendees, ticket_price, created_by, user_email,
	status, created_at`

func scanPending(scan func(dest ...any) error) (*model.PendingEvent, error) {
	var (
		p      model.PendingEvent
		pTime  sql.NullString
		image  sql.NullString
	)
	if err := scan(
		&p.ID, &p.Name, &p.Date, &pTime, &p.Location, &p.Category,
		&p.Description, &image, &p.MaxAttendees, &p.TicketPrice,
		&p.CreatedBy, &p.UserEmail, &p.Status, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if pTime.Valid {
		t := pTime.String
		p.Time = &t
	}
	if image.Valid {
		img := image.String
		p.ImageFilename = &img
	}
	return &p, nil
}

// ListPending returns all requests still in status pending, newest first.
func (r *PendingEventRepo) ListPending(ctx context.Context) ([]model.PendingEvent, error) {
	const q = `SELECT ` + pendingColumns + ` FROM pending_events
		WHERE status = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, model.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PendingEvent, 0)
	for rows.Next() {
		p, err := scanPending(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetByID returns one request regardless of status, or ErrRequestNotFound.
func (r *PendingEventRepo) GetByID(ctx context.Context, id uint64) (*model.PendingEvent, error) {
	const q = `SELECT ` + pendingColumns + ` FROM pending_events WHERE id = ?`
	p, err := scanPending(r.db.QueryRowContext(ctx, q, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Approve materializes a pending request into the catalog.  The event
// insert and the status transition commit or roll back together, so a
// mid-sequence failure can never leave an approved request without its
// event or vice versa.  The status update is guarded on the pending state,
// so a concurrent approve loses the race cleanly with ErrRequestClosed
// instead of creating a second event.
//
// Returns the new event's id, ErrRequestNotFound when the id is absent, or
// ErrRequestClosed when the request already reached a terminal status.
func (r *PendingEventRepo) Approve(ctx context.Context, id uint64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const sel = `SELECT ` + pendingColumns + ` FROM pending_events WHERE id = ?`
	p, err := scanPending(tx.QueryRowContext(ctx, sel, id).Scan)
	if err == sql.ErrNoRows {
		return 0, ErrRequestNotFound
	}
	if err != nil {
		return 0, err
	}
	if p.Status != model.StatusPending {
		return 0, ErrRequestClosed
	}

	eventID, err := createFromPendingTx(ctx, tx, p)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE pending_events SET status = ? WHERE id = ? AND status = ?`,
		model.StatusApproved, id, model.StatusPending)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrRequestClosed
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return eventID, nil
}

// Reject marks a pending request rejected without creating any event.
// Returns ErrRequestNotFound when the id is absent and ErrRequestClosed
// when the request already reached a terminal status.
func (r *PendingEventRepo) Reject(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pending_events SET status = ? WHERE id = ? AND status = ?`,
		model.StatusRejected, id, model.StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing row from a terminal one.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrRequestClosed
	}
	return nil
}

// Delete removes a request row outright, whatever its status.  Returns
// ErrRequestNotFound when the id is absent.
func (r *PendingEventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRequestNotFound
	}
	return nil
}
