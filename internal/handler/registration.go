package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/queue"
	"github.com/yallaevents/ems-backend/internal/repository"
	queue_publisher "github.com/yallaevents/ems-backend/internal/service"
)

// RegistrationHandler accepts public registrations.  Capacity enforcement
// lives in the repository's atomic conditional insert; this layer only
// validates input and maps errors.
type RegistrationHandler struct {
	Events        *repository.EventRepo
	Registrations *repository.RegistrationRepo
	// Publish is swappable for tests; defaults to the RabbitMQ publisher.
	Publish func(ctx context.Context, ev queue.RegistrationConfirmedEvent) error
}

// NewRegistrationHandler constructs a RegistrationHandler wired to the
// broker publisher.
func NewRegistrationHandler(events *repository.EventRepo, regs *repository.RegistrationRepo) *RegistrationHandler {
	if events == nil || regs == nil {
		panic("nil dependency passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{
		Events:        events,
		Registrations: regs,
		Publish:       queue_publisher.PublishRegistrationConfirmed,
	}
}

type registerReq struct {
	EventID uint64 `json:"event_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Register handles POST /api/registrations.  Body: {event_id, name,
// email}.  A full event is a client error distinct from validation
// failure; the (N+1)th attempt against an N-capacity event never creates
// a row, even under concurrent submission.
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.EventID == 0 || req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id, name and email are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	reg, err := h.Registrations.Create(ctx, req.EventID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Event not found"})
		case errors.Is(err, repository.ErrEventFull):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Event full"})
		default:
			c.Logger().Errorf("register for event %d: %v", req.EventID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	// Notify downstream consumers without holding the request open.  The
	// registration row is committed; a lost notification is acceptable.
	if h.Publish != nil {
		eventName := ""
		if ev, err := h.Events.GetByID(ctx, req.EventID); err == nil {
			eventName = ev.Name
		}
		payload := queue.RegistrationConfirmedEvent{
			RegistrationID: reg.ID,
			EventID:        reg.EventID,
			EventName:      eventName,
			AttendeeName:   reg.Name,
			AttendeeEmail:  reg.Email,
			RegisteredAt:   reg.RegisteredAt,
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, payload)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Registered",
		"registration": reg,
	})
}
