package handler // handler defines the HTTP handlers of the service

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/apperr"
	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/middleware"
)

// identity returns the caller claims the access guard stored in context.
func identity(c echo.Context) (auth.Claims, error) {
	return middleware.Identity(c)
}

// fail renders err as the {title, detail} failure shape. Classified
// errors map onto their HTTP status; anything else is an opaque 500 and
// gets logged with the request route for diagnosis.
func fail(c echo.Context, err error) error {
	if apperr.KindOf(err) == apperr.Internal {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	status, body := apperr.Render(err)
	return c.JSON(status, body)
}
