package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHappyPath(t *testing.T) {
	env := newTestEnv(t)
	id := createEvent(t, env, "Open Event", 10)

	rec := doJSON(t, env.regH.Register, http.MethodPost, "/api/registrations",
		map[string]any{"event_id": id, "name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "Registered", body["message"])
	reg, ok := body["registration"].(map[string]any)
	require.True(t, ok)
	assert.NotZero(t, reg["id"])
	assert.Equal(t, "Alice", reg["name"])

	// The confirmation lands on the broker.
	select {
	case msg := <-env.registered:
		assert.Equal(t, id, msg.EventID)
		assert.Equal(t, "Open Event", msg.EventName)
		assert.Equal(t, "alice@example.com", msg.AttendeeEmail)
	case <-time.After(2 * time.Second):
		t.Fatal("no registration confirmation published")
	}
}

func TestRegisterEventFull(t *testing.T) {
	env := newTestEnv(t)
	id := createEvent(t, env, "Tiny Event", 2)

	for _, who := range []string{"alice", "bob"} {
		rec := doJSON(t, env.regH.Register, http.MethodPost, "/api/registrations",
			map[string]any{"event_id": id, "name": who, "email": who + "@example.com"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, env.regH.Register, http.MethodPost, "/api/registrations",
		map[string]any{"event_id": id, "name": "carol", "email": "carol@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Event full", decodeBody(t, rec)["error"])
}

func TestRegisterUnknownEvent(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env.regH.Register, http.MethodPost, "/api/registrations",
		map[string]any{"event_id": 9999, "name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", decodeBody(t, rec)["error"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	id := createEvent(t, env, "Strict Event", 10)

	cases := []map[string]any{
		{"event_id": id, "name": "", "email": "a@example.com"},
		{"event_id": id, "name": "Alice", "email": "  "},
		{"name": "Alice", "email": "a@example.com"},
	}
	for _, body := range cases {
		rec := doJSON(t, env.regH.Register, http.MethodPost, "/api/registrations", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %v", body)
	}
}
