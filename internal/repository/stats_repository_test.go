package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yallaevents/ems-backend/internal/model"
)

func TestStatsTotalsEmpty(t *testing.T) {
	db := newTestDB(t)
	s, err := NewStatsRepo(db).Totals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.TotalEvents)
	assert.Zero(t, s.TotalRegistrations)
	assert.Zero(t, s.PendingRequests)
	assert.Zero(t, s.ContactMessages)
	assert.Zero(t, s.TotalRevenue)
}

func TestStatsTotals(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	free := seedEvent(t, db, "Free Event", 10)
	paid := seedEvent(t, db, "Paid Event", 10)
	_, err := db.ExecContext(ctx, `UPDATE events SET ticket_price = 0 WHERE id = ?`, free.ID)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `UPDATE events SET ticket_price = 20 WHERE id = ?`, paid.ID)
	require.NoError(t, err)

	regs := NewRegistrationRepo(db)
	_, err = regs.Create(ctx, free.ID, "Alice", "alice@example.com")
	require.NoError(t, err)
	_, err = regs.Create(ctx, paid.ID, "Bob", "bob@example.com")
	require.NoError(t, err)
	_, err = regs.Create(ctx, paid.ID, "Carol", "carol@example.com")
	require.NoError(t, err)

	pending := NewPendingEventRepo(db)
	submitRequest(t, pending, "Open Request")
	closed := submitRequest(t, pending, "Closed Request")
	require.NoError(t, pending.Reject(ctx, closed.ID))

	contacts := NewContactRepo(db)
	require.NoError(t, contacts.Create(ctx, &model.ContactMessage{
		Name: "Dana", Email: "dana@example.com", Message: "hi",
	}))

	s, err := NewStatsRepo(db).Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TotalEvents)
	assert.Equal(t, 3, s.TotalRegistrations)
	assert.Equal(t, 1, s.PendingRequests) // rejected requests don't count
	assert.Equal(t, 1, s.ContactMessages)
	assert.InDelta(t, 40.0, s.TotalRevenue, 0.001)
}

func TestContactCreate(t *testing.T) {
	db := newTestDB(t)
	m := &model.ContactMessage{Name: "Dana", Email: "dana@example.com", Message: "question"}
	require.NoError(t, NewContactRepo(db).Create(context.Background(), m))
	assert.NotZero(t, m.ID)
	assert.NotEmpty(t, m.SentAt)
}

func TestAdminEnsureAndLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAdminRepo(db)

	_, err := repo.GetByEmail(ctx, "admin@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, repo.Ensure(ctx, "admin@example.com", "hash-one"))
	a, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-one", a.PasswordHash)

	// Re-seeding refreshes the hash instead of duplicating the row.
	require.NoError(t, repo.Ensure(ctx, "admin@example.com", "hash-two"))
	a, err = repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-two", a.PasswordHash)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM admin_users`).Scan(&rows))
	assert.Equal(t, 1, rows)
}
