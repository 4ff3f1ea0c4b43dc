package router

// This file registers admin-only routes for catalog management and
// reservation oversight. They are kept separate from the customer routes
// so each audience's surface stays readable on its own.

import (
	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/handler"
	"github.com/roomescape/reservation-service/internal/middleware"
	"github.com/roomescape/reservation-service/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin. All
// routes require a valid token and the ADMIN role; the flat role model
// means a customer token is rejected here even for read endpoints.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, tokens *auth.TokenService) {
	g := e.Group(
		"/v1/admin",
		middleware.TokenAuth(tokens),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Time slots ----
	g.POST("/times", h.CreateTime)
	g.DELETE("/times/:id", h.DeleteTime)

	// ---- Themes ----
	g.POST("/themes", h.CreateTheme)
	g.DELETE("/themes/:id", h.DeleteTheme)

	// ---- Reservations ----
	g.GET("/reservations", h.ListReservations)
	g.DELETE("/reservations/:id", h.DeleteReservation)
}
