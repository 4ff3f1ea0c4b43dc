package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/handler"
	"github.com/roomescape/reservation-service/internal/middleware"
	"github.com/roomescape/reservation-service/internal/model"
)

// RegisterRoutes registers routes that require no authentication beyond
// what the individual handler enforces. Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers login and registration endpoints plus the
// authenticated identity check. Login carries the rate limiter; the
// identity check and logout accept any authenticated role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokens *auth.TokenService, loginLimit echo.MiddlewareFunc) {
	e.POST("/v1/auth/register", a.Register)
	e.POST("/v1/login", a.Login, loginLimit)

	g := e.Group(
		"/v1",
		middleware.TokenAuth(tokens),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
	)
	g.GET("/login/check", a.LoginCheck)
	g.POST("/logout", a.Logout)
}

// RegisterCatalog registers the public read-only catalog endpoints,
// wrapped in the Redis response cache when one is configured.
func RegisterCatalog(e *echo.Echo, cat *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/times", cat.ListTimes, cache)
	e.GET("/v1/themes", cat.ListThemes, cache)
}
