package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/repository"
)

// StatsHandler serves the admin dashboard counters.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(stats *repository.StatsRepo) *StatsHandler {
	if stats == nil {
		panic("nil dependency passed to NewStatsHandler")
	}
	return &StatsHandler{Stats: stats}
}

// Totals handles GET /api/stats.
func (h *StatsHandler) Totals(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Stats.Totals(ctx)
	if err != nil {
		c.Logger().Errorf("aggregate stats: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, s)
}
