package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/apperr"
	"github.com/roomescape/reservation-service/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// caller holds one of the given roles. The role model is flat: ADMIN does
// not implicitly satisfy a CUSTOMER-only check or vice versa, so routes
// open to both must list both. It assumes TokenAuth ran earlier and
// stored the role in context; a missing or foreign role is rejected with
// an authorization failure.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(model.Role)
			if !ok || !allowed[role] {
				status, body := apperr.Render(apperr.New(apperr.Authorization, "접근 권한이 없습니다."))
				return c.JSON(status, body)
			}
			return next(c)
		}
	}
}
