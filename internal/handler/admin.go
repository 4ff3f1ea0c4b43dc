package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/apperr"
	"github.com/roomescape/reservation-service/internal/model"
	"github.com/roomescape/reservation-service/internal/repository"
	"github.com/roomescape/reservation-service/internal/service"
)

// AdminHandler exposes catalog management and the admin reservation
// surface. Routes are ADMIN-gated; beyond row uniqueness and the
// reservations-exist delete guard these are plain data management.
type AdminHandler struct {
	Times        *repository.ReservationTimeRepo
	Themes       *repository.ThemeRepo
	Reservations *service.ReservationService
}

func NewAdminHandler(times *repository.ReservationTimeRepo, themes *repository.ThemeRepo, reservations *service.ReservationService) *AdminHandler {
	if times == nil || themes == nil || reservations == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Times: times, Themes: themes, Reservations: reservations}
}

type createTimeReq struct {
	StartAt string `json:"startAt"`
}

type createThemeReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// CreateTime handles POST /v1/admin/times.
func (h *AdminHandler) CreateTime(c echo.Context) error {
	var req createTimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := time.Parse(model.TimeLayout, req.StartAt); err != nil {
		return fail(c, apperr.New(apperr.Validation, "시간 형식이 올바르지 않습니다."))
	}
	t := model.ReservationTime{StartAt: req.StartAt}
	if err := h.Times.Create(c.Request().Context(), &t); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, timeResp{ID: t.ID, StartAt: t.StartAt})
}

// DeleteTime handles DELETE /v1/admin/times/:id. A slot referenced by
// reservations cannot be removed.
func (h *AdminHandler) DeleteTime(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Times.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrTimeNotFound):
			return fail(c, apperr.New(apperr.NotFound, "존재하지 않는 예약 시간입니다."))
		case errors.Is(err, repository.ErrConflict):
			return fail(c, apperr.New(apperr.ForbiddenOperation, "예약이 있는 시간은 삭제할 수 없습니다."))
		}
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTheme handles POST /v1/admin/themes.
func (h *AdminHandler) CreateTheme(c echo.Context) error {
	var req createThemeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		return fail(c, apperr.New(apperr.Validation, "테마 이름을 입력해야 합니다."))
	}
	t := model.Theme{Name: req.Name, Description: req.Description, Thumbnail: req.Thumbnail}
	if err := h.Themes.Create(c.Request().Context(), &t); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, themeResp{ID: t.ID, Name: t.Name, Description: t.Description, Thumbnail: t.Thumbnail})
}

// DeleteTheme handles DELETE /v1/admin/themes/:id. A theme referenced by
// reservations cannot be removed.
func (h *AdminHandler) DeleteTheme(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Themes.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrThemeNotFound):
			return fail(c, apperr.New(apperr.NotFound, "존재하지 않는 테마입니다."))
		case errors.Is(err, repository.ErrConflict):
			return fail(c, apperr.New(apperr.ForbiddenOperation, "예약이 있는 테마는 삭제할 수 없습니다."))
		}
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReservations handles GET /v1/admin/reservations.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	out, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteReservation handles DELETE /v1/admin/reservations/:id. The
// caller is an admin, so the service grants withdrawal of any member's
// reservation.
func (h *AdminHandler) DeleteReservation(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Reservations.Withdraw(c.Request().Context(), id, caller); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
