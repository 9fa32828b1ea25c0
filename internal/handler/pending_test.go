package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitRequest files an event request through the public handler and
// returns its id.
func submitRequest(t *testing.T, env *testEnv, name string) uint64 {
	t.Helper()
	fields := eventFields(name, 30)
	fields["user_email"] = "submitter@example.com"
	fields["created_by"] = "Submitter"
	rec := doForm(t, env.pendingH.Submit, http.MethodPost, "/api/events/request", fields, nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	id, ok := body["request_id"].(float64)
	require.True(t, ok, rec.Body.String())
	return uint64(id)
}

func TestSubmitRequestStaysOutOfCatalog(t *testing.T) {
	env := newTestEnv(t)
	submitRequest(t, env, "Community Meetup")

	// Nothing is published until an admin approves.
	rec := doJSON(t, env.eventH.List, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSubmitRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	fields := eventFields("Incomplete", 30)
	delete(fields, "description")
	rec := doForm(t, env.pendingH.Submit, http.MethodPost, "/api/events/request", fields, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", decodeBody(t, rec)["error"])
}

func TestListPending(t *testing.T) {
	env := newTestEnv(t)
	submitRequest(t, env, "First")
	submitRequest(t, env, "Second")

	rec := doJSON(t, env.pendingH.ListPending, http.MethodGet, "/api/admin/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First")
	assert.Contains(t, rec.Body.String(), "Second")
}

func TestApproveRequest(t *testing.T) {
	env := newTestEnv(t)
	reqID := submitRequest(t, env, "Community Meetup")
	sid := strconv.FormatUint(reqID, 10)

	rec := doJSON(t, env.pendingH.Approve, http.MethodPost, "/api/admin/pending/"+sid+"/approve", nil, "id", sid)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	eventID, ok := body["event_id"].(float64)
	require.True(t, ok)
	require.NotZero(t, eventID)

	// The event is now public, carrying the submitted details.
	list := doJSON(t, env.eventH.List, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Community Meetup")

	// And the approval notification goes out.
	select {
	case msg := <-env.approved:
		assert.Equal(t, reqID, msg.RequestID)
		assert.Equal(t, uint64(eventID), msg.EventID)
		assert.Equal(t, "submitter@example.com", msg.UserEmail)
	case <-time.After(2 * time.Second):
		t.Fatal("no approval notification published")
	}
}

func TestApproveRequestTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	reqID := submitRequest(t, env, "One Shot")
	sid := strconv.FormatUint(reqID, 10)

	rec := doJSON(t, env.pendingH.Approve, http.MethodPost, "/api/admin/pending/"+sid+"/approve", nil, "id", sid)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, env.pendingH.Approve, http.MethodPost, "/api/admin/pending/"+sid+"/approve", nil, "id", sid)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Request already processed", decodeBody(t, rec)["error"])

	// Still exactly one catalog event.
	list := doJSON(t, env.eventH.List, http.MethodGet, "/api/events", nil)
	var events []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &events))
	assert.Len(t, events, 1)
}

func TestApproveRequestNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env.pendingH.Approve, http.MethodPost, "/api/admin/pending/9999/approve", nil, "id", "9999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRejectRequest(t *testing.T) {
	env := newTestEnv(t)
	reqID := submitRequest(t, env, "Not This One")
	sid := strconv.FormatUint(reqID, 10)

	rec := doJSON(t, env.pendingH.Reject, http.MethodPost, "/api/admin/pending/"+sid+"/reject", nil, "id", sid)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	// Rejection is terminal.
	rec = doJSON(t, env.pendingH.Reject, http.MethodPost, "/api/admin/pending/"+sid+"/reject", nil, "id", sid)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// And it never reaches the catalog.
	list := doJSON(t, env.eventH.List, http.MethodGet, "/api/events", nil)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestDeleteRequest(t *testing.T) {
	env := newTestEnv(t)
	reqID := submitRequest(t, env, "Spam")
	sid := strconv.FormatUint(reqID, 10)

	rec := doJSON(t, env.pendingH.Delete, http.MethodDelete, "/api/admin/pending/"+sid, nil, "id", sid)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])

	rec = doJSON(t, env.pendingH.Delete, http.MethodDelete, "/api/admin/pending/"+sid, nil, "id", sid)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
