package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsTotals(t *testing.T) {
	env := newTestEnv(t)

	id := createEvent(t, env, "Counted", 10)
	reg := doJSON(t, env.regH.Register, http.MethodPost, "/api/registrations",
		map[string]any{"event_id": id, "name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, reg.Code)
	submitRequest(t, env, "Awaiting Review")

	contact := doJSON(t, env.contactH.Submit, http.MethodPost, "/api/contact",
		map[string]string{"name": "Dana", "email": "dana@example.com", "message": "hi"})
	require.Equal(t, http.StatusCreated, contact.Code)

	rec := doJSON(t, env.statsH.Totals, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["total_events"])
	assert.EqualValues(t, 1, body["total_registrations"])
	assert.EqualValues(t, 1, body["pending_requests"])
	assert.EqualValues(t, 1, body["contact_messages"])
	assert.EqualValues(t, 15, body["total_revenue"]) // one seat at 15
}
