package repository

import (
	"context"
	"database/sql"

	"github.com/yallaevents/ems-backend/internal/model"
)

// RegistrationRepo accepts public registrations and enforces the capacity
// invariant: the number of registrations for an event never exceeds its
// max_attendees at the moment a new one is accepted.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given
// database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// Create registers an attendee for an event.  The capacity check and the
// insert are one conditional INSERT ... SELECT statement, so two
// registrations racing for the last seat cannot both pass a stale count:
// SQLite serializes writers, and InnoDB's insert-select takes shared
// next-key locks on the event row and the registrations index range it
// reads, serializing competing inserts for the same event.  A zero-row
// result is disambiguated afterwards, so an event deleted mid-flight
// reports not-found rather than full.
//
// Returns ErrEventNotFound when the event does not exist and ErrEventFull
// when the event is at capacity.
func (r *RegistrationRepo) Create(ctx context.Context, eventID uint64, name, email string) (*model.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	reg := &model.Registration{
		EventID:      eventID,
		Name:         name,
		Email:        email,
		RegisteredAt: model.Now(),
	}
	const q = `INSERT INTO registrations (event_id, name, email, registered_at)
		SELECT e.id, ?, ?, ?
		FROM events e
		WHERE e.id = ?
		  AND (SELECT COUNT(*) FROM registrations reg WHERE reg.event_id = e.id) < e.max_attendees`
	res, err := tx.ExecContext(ctx, q, reg.Name, reg.Email, reg.RegisteredAt, eventID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Zero rows means the predicate failed: the event is either at
		// capacity or gone.  Check which, inside the same transaction.
		var exists uint64
		err = tx.QueryRowContext(ctx, `SELECT id FROM events WHERE id = ?`, eventID).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, ErrEventNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrEventFull
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	reg.ID = uint64(id)

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return reg, nil
}

// ListByEvent returns all registrations for one event, oldest first.
// Returns ErrEventNotFound when the event does not exist so callers can
// distinguish "no registrations" from "no event".
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Registration, error) {
	var exists uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM events WHERE id = ?`, eventID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	const q = `SELECT id, event_id, name, email, registered_at
		FROM registrations WHERE event_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]model.Registration, 0)
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// CountByEvent returns the live registration count for one event.
func (r *RegistrationRepo) CountByEvent(ctx context.Context, eventID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID).Scan(&n)
	return model.CoerceCount(n), err
}
