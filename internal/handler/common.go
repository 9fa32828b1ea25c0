package handler // handler defines the HTTP handlers for the API

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/model"
	"github.com/yallaevents/ems-backend/internal/storage"
)

// dbTimeout bounds every store call made from a handler so a stalled
// backend cannot hang a request indefinitely.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// eventForm carries the multipart fields shared by event creation, event
// update and event-request submission.
type eventForm struct {
	Name         string
	Date         string
	Time         *string
	Location     string
	Category     string
	Description  string
	MaxAttendees int
	TicketPrice  float64
}

// parseEventForm reads and validates the multipart form fields.  The
// required set is {name, date, location, category, description}; the date
// must parse as a calendar date and is stored normalized.  Returns a
// human-readable message when validation fails.
func parseEventForm(c echo.Context) (*eventForm, string) {
	f := &eventForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Date:        strings.TrimSpace(c.FormValue("date")),
		Location:    strings.TrimSpace(c.FormValue("location")),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Description: strings.TrimSpace(c.FormValue("description")),
	}
	if f.Name == "" || f.Date == "" || f.Location == "" || f.Category == "" || f.Description == "" {
		return nil, "Missing required fields"
	}
	if !model.ValidDate(f.Date) {
		return nil, "Invalid date"
	}
	f.Date = model.NormalizeDate(f.Date)

	if t := strings.TrimSpace(c.FormValue("time")); t != "" {
		f.Time = &t
	}

	f.MaxAttendees = model.DefaultMaxAttendees
	if v := strings.TrimSpace(c.FormValue("max_attendees")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, "Invalid max_attendees"
		}
		f.MaxAttendees = n
	}
	if v := strings.TrimSpace(c.FormValue("ticket_price")); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			return nil, "Invalid ticket_price"
		}
		f.TicketPrice = p
	}
	return f, ""
}

// formatEvent applies the output contract in place: date reduces to a
// calendar date, the image reference becomes a fetchable URL and the
// registration count is clamped non-negative.
func formatEvent(ev *model.Event, blobs storage.BlobStore) *model.Event {
	ev.Date = model.NormalizeDate(ev.Date)
	ev.RegistrationCount = model.CoerceCount(ev.RegistrationCount)
	if ev.ImageFilename != nil {
		u := blobs.URL(*ev.ImageFilename)
		ev.ImageURL = &u
	}
	return ev
}

// formatPending applies the same contract to a pending request.
func formatPending(p *model.PendingEvent, blobs storage.BlobStore) *model.PendingEvent {
	p.Date = model.NormalizeDate(p.Date)
	if p.ImageFilename != nil {
		u := blobs.URL(*p.ImageFilename)
		p.ImageURL = &u
	}
	return p
}
