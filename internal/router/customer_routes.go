package router

import (
	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/handler"
	"github.com/roomescape/reservation-service/internal/middleware"
	"github.com/roomescape/reservation-service/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under /v1. All
// routes require a valid token and the CUSTOMER role. Customers create
// reservations, view their own and withdraw their own; ownership of an
// individual reservation is enforced inside the service.
func RegisterCustomer(e *echo.Echo, h *handler.ReservationHandler, tokens *auth.TokenService) {
	g := e.Group(
		"/v1",
		middleware.TokenAuth(tokens),
		middleware.RequireRole(model.RoleCustomer),
	)
	g.POST("/reservations", h.Create)
	g.GET("/reservations/:id", h.Get)
	g.DELETE("/reservations/:id", h.Delete)
	g.GET("/my-reservations", h.ListMine)
}
