package middleware // middleware contains reusable HTTP middleware functions

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/apperr"
	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/model"
)

// Context keys under which the access guard stores the caller identity.
const (
	CtxMemberID = "member_id"
	CtxRole     = "role"
)

// TokenAuth returns an Echo middleware that authenticates the caller
// from the `token` cookie (or, as a fallback, a Bearer Authorization
// header), delegating verification to the token service. On success the
// member ID and role claims are injected into the request context for
// handlers to read via c.Get. Any failure is an authentication error,
// distinct from the authorization failures raised by RequireRole.
func TokenAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie("token"); err == nil && ck.Value != "" {
				raw = ck.Value
			} else if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				status, body := apperr.Render(apperr.New(apperr.Authentication, "로그인이 필요합니다."))
				return c.JSON(status, body)
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				status, body := apperr.Render(apperr.New(apperr.Authentication, "유효하지 않은 토큰입니다."))
				return c.JSON(status, body)
			}
			c.Set(CtxMemberID, claims.MemberID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// errNoIdentity is raised when a protected handler runs without an
// identity in context. It should not happen when routes are registered
// behind TokenAuth.
var errNoIdentity = apperr.New(apperr.Authentication, "로그인이 필요합니다.")

// Identity reassembles the caller claims a previous TokenAuth stored in
// the context.
func Identity(c echo.Context) (auth.Claims, error) {
	id, ok := c.Get(CtxMemberID).(uint64)
	if !ok || id == 0 {
		return auth.Claims{}, errNoIdentity
	}
	role, ok := c.Get(CtxRole).(model.Role)
	if !ok {
		return auth.Claims{}, errNoIdentity
	}
	return auth.Claims{MemberID: id, Role: role}, nil
}
