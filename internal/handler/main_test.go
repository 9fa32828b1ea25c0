package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/yallaevents/ems-backend/internal/database"
	"github.com/yallaevents/ems-backend/internal/queue"
	"github.com/yallaevents/ems-backend/internal/repository"
	"github.com/yallaevents/ems-backend/internal/storage"
)

// testEnv wires a throwaway SQLite database, a temp-dir blob store and the
// full handler set with broker publishing stubbed out.
type testEnv struct {
	db    *sql.DB
	blobs *storage.LocalStore

	events   *repository.EventRepo
	regs     *repository.RegistrationRepo
	pending  *repository.PendingEventRepo
	contacts *repository.ContactRepo
	admins   *repository.AdminRepo
	stats    *repository.StatsRepo

	eventH      *EventHandler
	adminEventH *AdminEventHandler
	regH        *RegistrationHandler
	pendingH    *PendingHandler
	contactH    *ContactHandler
	statsH      *StatsHandler

	// Published broker messages, buffered so handlers never block.
	registered chan queue.RegistrationConfirmedEvent
	approved   chan queue.EventApprovedEvent
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Bootstrap(context.Background(), db, "sqlite"))

	blobs, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		db:         db,
		blobs:      blobs,
		events:     repository.NewEventRepo(db),
		regs:       repository.NewRegistrationRepo(db),
		pending:    repository.NewPendingEventRepo(db),
		contacts:   repository.NewContactRepo(db),
		admins:     repository.NewAdminRepo(db),
		stats:      repository.NewStatsRepo(db),
		registered: make(chan queue.RegistrationConfirmedEvent, 16),
		approved:   make(chan queue.EventApprovedEvent, 16),
	}
	env.eventH = NewEventHandler(env.events, env.regs, blobs)
	env.adminEventH = NewAdminEventHandler(env.events, env.regs, blobs)
	env.regH = NewRegistrationHandler(env.events, env.regs)
	env.regH.Publish = func(_ context.Context, ev queue.RegistrationConfirmedEvent) error {
		env.registered <- ev
		return nil
	}
	env.pendingH = NewPendingHandler(env.pending, blobs)
	env.pendingH.Publish = func(_ context.Context, ev queue.EventApprovedEvent) error {
		env.approved <- ev
		return nil
	}
	env.contactH = NewContactHandler(env.contacts)
	env.statsH = NewStatsHandler(env.stats)
	return env
}

// doJSON invokes a handler with a JSON body and returns the recorder.
func doJSON(t *testing.T, h echo.HandlerFunc, method, target string, body any, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	setParams(c, params)
	require.NoError(t, h(c))
	return rec
}

// doForm invokes a handler with a multipart form.  An entry under the
// "image" key becomes a file part; everything else is a plain field.
func doForm(t *testing.T, h echo.HandlerFunc, method, target string, fields map[string]string, image []byte, imageName string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, imageName))
		ct := mime.TypeByExtension(filepath.Ext(imageName))
		if ct == "" {
			ct = "application/octet-stream"
		}
		hdr.Set("Content-Type", ct)
		fw, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	setParams(c, params)
	require.NoError(t, h(c))
	return rec
}

func setParams(c echo.Context, params []string) {
	if len(params) == 0 {
		return
	}
	names := make([]string, 0, len(params)/2)
	values := make([]string, 0, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// eventFields returns a valid creation form for an event.
func eventFields(name string, maxAttendees int) map[string]string {
	return map[string]string{
		"name":          name,
		"date":          "2026-10-01",
		"time":          "18:30",
		"location":      "Main Hall",
		"category":      "conference",
		"description":   "a test event",
		"max_attendees": strconv.Itoa(maxAttendees),
		"ticket_price":  "15",
	}
}

// createEvent creates a catalog event through the admin handler and returns
// its id.
func createEvent(t *testing.T, env *testEnv, name string, maxAttendees int) uint64 {
	t.Helper()
	rec := doForm(t, env.adminEventH.Create, http.MethodPost, "/api/events", eventFields(name, maxAttendees), nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	id, ok := body["id"].(float64)
	require.True(t, ok, "missing id in response: %s", rec.Body.String())
	return uint64(id)
}
