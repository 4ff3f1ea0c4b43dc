package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/repository"
)

// CatalogHandler serves the public, read-only booking catalog: the time
// slots and themes a reservation can reference.
type CatalogHandler struct {
	Times  *repository.ReservationTimeRepo
	Themes *repository.ThemeRepo
}

func NewCatalogHandler(times *repository.ReservationTimeRepo, themes *repository.ThemeRepo) *CatalogHandler {
	if times == nil || themes == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Times: times, Themes: themes}
}

type timeResp struct {
	ID      uint64 `json:"id"`
	StartAt string `json:"startAt"`
}

type themeResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// ListTimes handles GET /v1/times.
func (h *CatalogHandler) ListTimes(c echo.Context) error {
	times, err := h.Times.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	out := make([]timeResp, 0, len(times))
	for _, t := range times {
		out = append(out, timeResp{ID: t.ID, StartAt: t.StartAt})
	}
	return c.JSON(http.StatusOK, out)
}

// ListThemes handles GET /v1/themes.
func (h *CatalogHandler) ListThemes(c echo.Context) error {
	themes, err := h.Themes.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	out := make([]themeResp, 0, len(themes))
	for _, t := range themes {
		out = append(out, themeResp{ID: t.ID, Name: t.Name, Description: t.Description, Thumbnail: t.Thumbnail})
	}
	return c.JSON(http.StatusOK, out)
}
