package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/model"
	"github.com/yallaevents/ems-backend/internal/repository"
)

// ContactHandler accepts contact-form submissions.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(contacts *repository.ContactRepo) *ContactHandler {
	if contacts == nil {
		panic("nil dependency passed to NewContactHandler")
	}
	return &ContactHandler{Contacts: contacts}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and message are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m := &model.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := h.Contacts.Create(ctx, m); err != nil {
		c.Logger().Errorf("store contact message: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"id":      m.ID,
	})
}
