package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/model"
	"github.com/yallaevents/ems-backend/internal/repository"
	"github.com/yallaevents/ems-backend/internal/storage"
)

// AdminEventHandler implements the admin-only event mutations: create,
// update, delete, and listing an event's registrations.  All methods
// assume JWT authentication and role validation already ran in middleware.
type AdminEventHandler struct {
	Events        *repository.EventRepo
	Registrations *repository.RegistrationRepo
	Blobs         storage.BlobStore
}

// NewAdminEventHandler constructs an AdminEventHandler.  All dependencies
// must be non-nil.
func NewAdminEventHandler(events *repository.EventRepo, regs *repository.RegistrationRepo, blobs storage.BlobStore) *AdminEventHandler {
	if events == nil || regs == nil || blobs == nil {
		panic("nil dependency passed to NewAdminEventHandler")
	}
	return &AdminEventHandler{Events: events, Registrations: regs, Blobs: blobs}
}

// Create handles POST /api/events (multipart).  The optional image is
// stored first so the row never references a blob that failed to write.
func (h *AdminEventHandler) Create(c echo.Context) error {
	form, msg := parseEventForm(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	ev := &model.Event{
		Name:         form.Name,
		Date:         form.Date,
		Time:         form.Time,
		Location:     form.Location,
		Category:     form.Category,
		Description:  form.Description,
		MaxAttendees: form.MaxAttendees,
		TicketPrice:  form.TicketPrice,
	}
	if fh, ok := imageFromForm(c); ok {
		name, err := saveImage(ctx, h.Blobs, fh)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidImage) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file type"})
			}
			c.Logger().Errorf("store image: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
		}
		ev.ImageFilename = &name
	}

	if err := h.Events.Create(ctx, ev); err != nil {
		// The row never existed; clean up the freshly stored blob.
		discardBlob(ctx, c, h.Blobs, ev.ImageFilename)
		c.Logger().Errorf("create event: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, formatEvent(ev, h.Blobs))
}

// Update handles PUT /api/events/:id (multipart).  A new image replaces
// the stored reference and the previous blob is removed best-effort.
// Returns a confirmation message, not the entity; callers re-fetch when
// they need the updated row.
func (h *AdminEventHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	form, msg := parseEventForm(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("get event %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	imageName := current.ImageFilename
	var previous *string
	if fh, ok := imageFromForm(c); ok {
		name, err := saveImage(ctx, h.Blobs, fh)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidImage) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file type"})
			}
			c.Logger().Errorf("store image: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
		}
		previous = imageName
		imageName = &name
	}

	ev := &model.Event{
		ID:            id,
		Name:          form.Name,
		Date:          form.Date,
		Time:          form.Time,
		Location:      form.Location,
		Category:      form.Category,
		Description:   form.Description,
		ImageFilename: imageName,
		MaxAttendees:  form.MaxAttendees,
		TicketPrice:   form.TicketPrice,
	}
	if err := h.Events.Update(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("update event %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// Old image is unreferenced now; removal is best-effort.
	discardBlob(ctx, c, h.Blobs, previous)
	return c.JSON(http.StatusOK, echo.Map{"message": "Updated"})
}

// Delete handles DELETE /api/events/:id.  The event and its registrations
// go in one transaction; the blob removal afterwards is best-effort.
func (h *AdminEventHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	current, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("get event %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("delete event %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	discardBlob(ctx, c, h.Blobs, current.ImageFilename)
	return c.JSON(http.StatusOK, echo.Map{"message": "Deleted"})
}

// ListRegistrations handles GET /api/events/:id/registrations.
func (h *AdminEventHandler) ListRegistrations(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	regs, err := h.Registrations.ListByEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		c.Logger().Errorf("list registrations for event %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, regs)
}
