package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yallaevents/ems-backend/internal/database"
	"github.com/yallaevents/ems-backend/internal/model"
)

// newTestDB opens a throwaway SQLite database with the full schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Bootstrap(context.Background(), db, "sqlite"))
	return db
}

// seedEvent inserts a minimal catalog event and returns it.
func seedEvent(t *testing.T, db *sql.DB, name string, maxAttendees int) *model.Event {
	t.Helper()
	ev := &model.Event{
		Name:         name,
		Date:         "2026-09-15",
		Location:     "Community Hall",
		Category:     "meetup",
		Description:  "seeded test event",
		MaxAttendees: maxAttendees,
		TicketPrice:  10,
	}
	require.NoError(t, NewEventRepo(db).Create(context.Background(), ev))
	return ev
}
