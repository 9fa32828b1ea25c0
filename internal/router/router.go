package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/yallaevents/ems-backend/internal/handler"
	"github.com/yallaevents/ems-backend/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated endpoints: catalog browsing,
// registration, event-request submission, contact intake and admin login.
// The cache middleware applies only to the read-heavy catalog reads; the
// write endpoints must always reach the database.
func RegisterPublic(e *echo.Echo, cache echo.MiddlewareFunc,
	ev *handler.EventHandler, reg *handler.RegistrationHandler,
	p *handler.PendingHandler, ct *handler.ContactHandler,
	a *handler.AuthHandler) {

	e.GET("/api/events", ev.List, cache)
	e.GET("/api/events/:id", ev.GetByID, cache)

	e.POST("/api/registrations", reg.Register)
	e.POST("/api/events/request", p.Submit)
	e.POST("/api/contact", ct.Submit)
	e.POST("/api/admin/login", a.Login)
}

// RegisterAdmin registers the protected endpoints under /api.  Every route
// in the group runs the JWT middleware and requires the admin role.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	adm *handler.AdminEventHandler, p *handler.PendingHandler,
	a *handler.AuthHandler, st *handler.StatsHandler) {

	g := e.Group("/api")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("admin"))

	// Catalog management.
	g.POST("/events", adm.Create)
	g.PUT("/events/:id", adm.Update)
	g.DELETE("/events/:id", adm.Delete)
	g.GET("/events/:id/registrations", adm.ListRegistrations)

	// Event-request moderation.
	g.GET("/admin/pending", p.ListPending)
	g.POST("/admin/pending/:id/approve", p.Approve)
	g.POST("/admin/pending/:id/reject", p.Reject)
	g.DELETE("/admin/pending/:id", p.Delete)

	// Session check and dashboard.
	g.GET("/admin/verify", a.Verify)
	g.GET("/stats", st.Totals)
}
