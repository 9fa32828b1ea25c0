package repository

import (
	"context"
	"database/sql"

	"github.com/yallaevents/ems-backend/internal/model"
)

// StatsRepo aggregates the admin dashboard counters.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo returns a new StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Totals computes the aggregate counts and total revenue.  Revenue sums
// ticket_price times the live registration count per event, so it always
// agrees with the catalog's computed counts.
func (r *StatsRepo) Totals(ctx context.Context) (*model.Stats, error) {
	var s model.Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM events`, &s.TotalEvents},
		{`SELECT COUNT(*) FROM registrations`, &s.TotalRegistrations},
		{`SELECT COUNT(*) FROM pending_events WHERE status = ?`, &s.PendingRequests},
		{`SELECT COUNT(*) FROM contact_messages`, &s.ContactMessages},
	}
	for _, c := range counts {
		var err error
		if c.dest == &s.PendingRequests {
			err = r.db.QueryRowContext(ctx, c.query, model.StatusPending).Scan(c.dest)
		} else {
			err = r.db.QueryRowContext(ctx, c.query).Scan(c.dest)
		}
		if err != nil {
			return nil, err
		}
	}

	var revenue sql.NullFloat64
	const revQ = `SELECT SUM(e.ticket_price *
		(SELECT COUNT(*) FROM registrations reg WHERE reg.event_id = e.id))
		FROM events e`
	if err := r.db.QueryRowContext(ctx, revQ).Scan(&revenue); err != nil {
		return nil, err
	}
	if revenue.Valid {
		s.TotalRevenue = revenue.Float64
	}
	return &s, nil
}
