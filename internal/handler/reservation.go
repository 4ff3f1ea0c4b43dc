package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomescape/reservation-service/internal/queue"
	"github.com/roomescape/reservation-service/internal/service"
)

// ReservationHandler exposes the customer booking surface. Admission
// decisions live in the service; the handler binds requests, extracts
// the caller identity and renders results.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	if reservations == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations}
}

type createReservationReq struct {
	Date    string `json:"date"`
	TimeID  uint64 `json:"timeId"`
	ThemeID uint64 `json:"themeId"`
}

// Create handles POST /v1/reservations. The reservation is booked for
// the authenticated caller; the body carries only date, time and theme.
// On success it returns 201 with a Location reference to the new row.
func (h *ReservationHandler) Create(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return fail(c, err)
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	det, err := h.Reservations.Admit(c.Request().Context(), service.AdmitRequest{
		Date:    req.Date,
		TimeID:  req.TimeID,
		ThemeID: req.ThemeID,
	}, caller)
	if err != nil {
		return fail(c, err)
	}

	// Best-effort audit event; the booking is already persisted and a
	// broker outage must not fail the request.
	go func(d time.Time) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
			ReservationID: det.ID,
			MemberID:      caller.MemberID,
			MemberName:    det.Name,
			Date:          det.Date,
			StartAt:       det.Time.StartAt,
			ThemeID:       det.Theme.ID,
			ThemeName:     det.Theme.Name,
			ConfirmedAt:   d.UTC().Format(time.RFC3339),
		})
	}(time.Now())

	c.Response().Header().Set("Location", fmt.Sprintf("/v1/reservations/%d", det.ID))
	return c.JSON(http.StatusCreated, det)
}

// Get handles GET /v1/reservations/:id. Customers can read only their
// own reservations.
func (h *ReservationHandler) Get(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return fail(c, err)
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	det, err := h.Reservations.Get(c.Request().Context(), id, caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, det)
}

// ListMine handles GET /v1/my-reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.Reservations.ListMine(c.Request().Context(), caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/reservations/:id. The service enforces that
// customers withdraw only their own reservations.
func (h *ReservationHandler) Delete(c echo.Context) error {
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
