package repository

import (
	"context"
	"database/sql"

	"github.com/yallaevents/ems-backend/internal/model"
)

// EventRepo provides CRUD operations for catalog events.  Registration
// counts are always computed from the registrations table at query time,
// never stored denormalized.  All timestamp columns hold UTC RFC3339
// strings.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle for callers that need to open a
// transaction spanning multiple repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `e.id, e.name, e.date, e.time, e.location, e.category,
	e.description, e.image_filename, e.max_attendees, e.ticket_price,
	e.status, e.created_at, e.updated_at`

// scanEvent reads one event row in eventColumns order plus a trailing
// registration count.
func scanEvent(scan func(dest ...any) error) (*model.Event, error) {
	var (
		ev        model.Event
		evTime    sql.NullString
		image     sql.NullString
		updatedAt sql.NullString
		count     sql.NullInt64
	)
	if err := scan(
		&ev.ID, &ev.Name, &ev.Date, &evTime, &ev.Location, &ev.Category,
		&ev.Description, &image, &ev.MaxAttendees, &ev.TicketPrice,
		&ev.Status, &ev.CreatedAt, &updatedAt, &count,
	); err != nil {
		return nil, err
	}
	if evTime.Valid {
		t := evTime.String
		ev.Time = &t
	}
	if image.Valid {
		img := image.String
		ev.ImageFilename = &img
	}
	if updatedAt.Valid {
		u := updatedAt.String
		ev.UpdatedAt = &u
	}
	if count.Valid {
		ev.RegistrationCount = model.CoerceCount(int(count.Int64))
	}
	return &ev, nil
}

// Create inserts a new event and populates the generated ID and creation
// timestamp on the provided model.  Status is forced to upcoming; events
// never enter the catalog in any other state.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	ev.Status = model.StatusUpcoming
	ev.CreatedAt = model.Now()
	const q = `INSERT INTO events
		(name, date, time, location, category, description, image_filename,
		 max_attendees, ticket_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		ev.Name, ev.Date, ev.Time, ev.Location, ev.Category, ev.Description,
		ev.ImageFilename, ev.MaxAttendees, ev.TicketPrice, ev.Status, ev.CreatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// List returns every event ascending by date, each annotated with its live
// registration count.  The catalog is small by design; there is no
// pagination.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + `, COUNT(reg.id)
		FROM events e
		LEFT JOIN registrations reg ON reg.event_id = e.id
		GROUP BY e.id, e.name, e.date, e.time, e.location, e.category,
			e.description, e.image_filename, e.max_attendees, e.ticket_price,
			e.status, e.created_at, e.updated_at
		ORDER BY e.date ASC, e.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// GetByID returns one event with its registration count, or
// ErrEventNotFound when the id does not exist.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + `,
		(SELECT COUNT(*) FROM registrations reg WHERE reg.event_id = e.id)
		FROM events e WHERE e.id = ?`
	ev, err := scanEvent(r.db.QueryRowContext(ctx, q, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Update rewrites all mutable fields of an event and stamps updated_at.
// The image filename is taken from the model as-is: callers decide whether
// it is the previous reference or a freshly stored one.  Returns
// ErrEventNotFound when the id does not exist.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
	now := model.Now()
	ev.UpdatedAt = &now
	const q = `UPDATE events SET name = ?, date = ?, time = ?, location = ?,
		category = ?, description = ?, image_filename = ?, max_attendees = ?,
		ticket_price = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		ev.Name, ev.Date, ev.Time, ev.Location, ev.Category, ev.Description,
		ev.ImageFilename, ev.MaxAttendees, ev.TicketPrice, ev.UpdatedAt, ev.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event and all of its registrations in one transaction
// so no orphaned registration rows can survive.  Returns ErrEventNotFound
// when the id does not exist.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// createFromPendingTx materializes a pending request into the events table
// within an existing transaction.  Used by PendingEventRepo.Approve; the
// caller commits or rolls back.
func createFromPendingTx(ctx context.Context, tx *sql.Tx, p *model.PendingEvent) (uint64, error) {
	const q = `INSERT INTO events
		(name, date, time, location, category, description, image_filename,
		 max_attendees, ticket_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		p.Name, p.Date, p.Time, p.Location, p.Category, p.Description,
		p.ImageFilename, p.MaxAttendees, p.TicketPrice, model.StatusUpcoming, model.Now(),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
