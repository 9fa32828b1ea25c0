package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/repository"
	"github.com/yallaevents/ems-backend/internal/utils"
)

// AuthHandler issues and verifies admin session tokens.
type AuthHandler struct {
	Admins    *repository.AdminRepo
	JWTSecret string
	TokenTTL  int // hours
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(admins *repository.AdminRepo, secret string, ttlHours int) *AuthHandler {
	if admins == nil || secret == "" {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Admins: admins, JWTSecret: secret, TokenTTL: ttlHours}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login.  A missing account and a wrong
// password get the same response so the endpoint never confirms which
// emails exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Password = strings.TrimSpace(req.Password)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	admin, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		c.Logger().Errorf("admin lookup: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	tok, err := utils.NewAdminToken(h.JWTSecret, admin.Email, h.TokenTTL)
	if err != nil {
		c.Logger().Errorf("sign admin token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": tok.Token})
}

// Verify handles GET /api/admin/verify.  Reaching it means the token
// middleware already accepted the request, so the body just confirms the
// identity it established.
func (h *AuthHandler) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"valid": true,
		"email": c.Get("email"),
		"role":  c.Get("role"),
	})
}
