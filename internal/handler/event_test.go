package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yallaevents/ems-backend/internal/model"
)

func TestPublicListEvents(t *testing.T) {
	env := newTestEnv(t)
	createEvent(t, env, "Conference", 100)
	createEvent(t, env, "Workshop", 20)

	rec := doJSON(t, env.eventH.List, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var events []model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, model.StatusUpcoming, events[0].Status)
	assert.Equal(t, 0, events[0].RegistrationCount)
}

func TestPublicListEmpty(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env.eventH.List, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// Empty catalog renders as [], not null.
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPublicGetEvent(t *testing.T) {
	env := newTestEnv(t)
	id := createEvent(t, env, "Detailed", 50)

	reg := doJSON(t, env.regH.Register, http.MethodPost, "/api/registrations",
		map[string]any{"event_id": id, "name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, reg.Code)

	rec := doJSON(t, env.eventH.GetByID, http.MethodGet, "/api/events/"+strconv.FormatUint(id, 10), nil,
		"id", strconv.FormatUint(id, 10))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Detailed", body["name"])
	assert.EqualValues(t, 1, body["registration_count"])
	regs, ok := body["registrations"].([]any)
	require.True(t, ok)
	require.Len(t, regs, 1)
	first := regs[0].(map[string]any)
	assert.Equal(t, "Alice", first["name"])
}

func TestPublicGetEventNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env.eventH.GetByID, http.MethodGet, "/api/events/9999", nil, "id", "9999")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decodeBody(t, rec)["error"])
}
