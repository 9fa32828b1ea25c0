package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/model"
	"github.com/yallaevents/ems-backend/internal/repository"
	"github.com/yallaevents/ems-backend/internal/storage"
)

// EventHandler serves the public catalog: listing events with live
// registration counts and fetching one event with its registrations.
type EventHandler struct {
	Events        *repository.EventRepo
	Registrations *repository.RegistrationRepo
	Blobs         storage.BlobStore
}

// NewEventHandler constructs an EventHandler.  All dependencies must be
// non-nil.
func NewEventHandler(events *repository.EventRepo, regs *repository.RegistrationRepo, blobs storage.BlobStore) *EventHandler {
	if events == nil || regs == nil || blobs == nil {
		panic("nil dependency passed to NewEventHandler")
	}
	return &EventHandler{Events: events, Registrations: regs, Blobs: blobs}
}

// List handles GET /api/events.  Events come back ascending by date, each
// carrying its live registration count and resolved image URL.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		c.Logger().Errorf("list events: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]model.Event, 0, len(events))
	for i := range events {
		out = append(out, *formatEvent(&events[i], h.Blobs))
	}
	return c.JSON(http.StatusOK, out)
}

// eventDetail embeds the formatted event plus its registrations.
type eventDetail struct {
	*model.Event
	Registrations []model.Registration `json:"registrations"`
}

// GetByID handles GET /api/events/:id.  The response embeds the full
// registration list; only admin surfaces link here for that list, but the
// event detail itself is public.
func (h *EventHandler) GetByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("get event %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	regs, err := h.Registrations.ListByEvent(ctx, id)
	if err != nil {
		c.Logger().Errorf("list registrations for event %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	ev.RegistrationCount = len(regs)
	return c.JSON(http.StatusOK, eventDetail{
		Event:         formatEvent(ev, h.Blobs),
		Registrations: regs,
	})
}
