package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/model"
	"github.com/yallaevents/ems-backend/internal/queue"
	"github.com/yallaevents/ems-backend/internal/repository"
	queue_publisher "github.com/yallaevents/ems-backend/internal/service"
	"github.com/yallaevents/ems-backend/internal/storage"
)

// PendingHandler covers the event-request workflow: public submission plus
// the admin moderation endpoints.
type PendingHandler struct {
	Pending *repository.PendingEventRepo
	Blobs   storage.BlobStore
	// Publish is swappable for tests; defaults to the RabbitMQ publisher.
	Publish func(ctx context.Context, ev queue.EventApprovedEvent) error
}

// NewPendingHandler constructs a PendingHandler wired to the broker
// publisher.
func NewPendingHandler(pending *repository.PendingEventRepo, blobs storage.BlobStore) *PendingHandler {
	if pending == nil || blobs == nil {
		panic("nil dependency passed to NewPendingHandler")
	}
	return &PendingHandler{
		Pending: pending,
		Blobs:   blobs,
		Publish: queue_publisher.PublishEventApproved,
	}
}

// Submit handles POST /api/events/request.  Accepts the same multipart
// form as admin event creation plus optional created_by and user_email;
// the row lands in status pending and never touches the catalog until an
// admin approves it.
func (h *PendingHandler) Submit(c echo.Context) error {
	form, msg := parseEventForm(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := &model.PendingEvent{
		Name:         form.Name,
		Date:         form.Date,
		Time:         form.Time,
		Location:     form.Location,
		Category:     form.Category,
		Description:  form.Description,
		MaxAttendees: form.MaxAttendees,
		TicketPrice:  form.TicketPrice,
		CreatedBy:    strings.TrimSpace(c.FormValue("created_by")),
		UserEmail:    strings.TrimSpace(c.FormValue("user_email")),
	}

	if fh, ok := imageFromForm(c); ok {
		name, err := saveImage(ctx, h.Blobs, fh)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidImage) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file type"})
			}
			c.Logger().Errorf("store request image: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
		}
		p.ImageFilename = &name
	}

	if err := h.Pending.Create(ctx, p); err != nil {
		discardBlob(ctx, c, h.Blobs, p.ImageFilename)
		c.Logger().Errorf("create event request: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"request_id": p.ID,
	})
}

// ListPending handles GET /api/admin/pending, newest submissions first.
func (h *PendingHandler) ListPending(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	reqs, err := h.Pending.ListPending(ctx)
	if err != nil {
		c.Logger().Errorf("list pending requests: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for i := range reqs {
		formatPending(&reqs[i], h.Blobs)
	}
	return c.JSON(http.StatusOK, reqs)
}

// Approve handles POST /api/admin/pending/:id/approve.  The catalog insert
// and the status transition commit together; approving an already-closed
// request is a conflict, not a second event.
func (h *PendingHandler) Approve(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	eventID, err := h.Pending.Approve(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		case errors.Is(err, repository.ErrRequestClosed):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Request already processed"})
		default:
			c.Logger().Errorf("approve request %d: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	if h.Publish != nil {
		payload := queue.EventApprovedEvent{
			RequestID:  id,
			EventID:    eventID,
			ApprovedAt: model.Now(),
		}
		if p, err := h.Pending.GetByID(ctx, id); err == nil {
			payload.EventName = p.Name
			payload.UserEmail = p.UserEmail
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, payload)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"event_id": eventID,
	})
}

// Reject handles POST /api/admin/pending/:id/reject.  The row is kept for
// the audit trail; only its status changes.
func (h *PendingHandler) Reject(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Pending.Reject(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRequestNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		case errors.Is(err, repository.ErrRequestClosed):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Request already processed"})
		default:
			c.Logger().Errorf("reject request %d: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /api/admin/pending/:id.  Removes the row whatever
// its status and cleans up the uploaded image, if any.
func (h *PendingHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Pending.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("load request %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Pending.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("delete request %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	discardBlob(ctx, c, h.Blobs, p.ImageFilename)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
