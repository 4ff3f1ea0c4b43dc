package service

import (
	"context"
	"errors"
	"time"

	"github.com/roomescape/reservation-service/internal/apperr"
	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/model"
	"github.com/roomescape/reservation-service/internal/repository"
)

// Rejection details carried on the wire. The two forbidden-operation
// strings are part of the legacy client contract and must not change.
const (
	pastSlotDetail     = "지나간 시간에 대한 예약은 할 수 없습니다."
	duplicateDetail    = "예약이 이미 존재합니다."
	blankInputDetail   = "예약 정보를 모두 입력해야 합니다."
	badDateDetail      = "날짜 형식이 올바르지 않습니다."
	noSuchTimeDetail   = "존재하지 않는 예약 시간입니다."
	noSuchThemeDetail  = "존재하지 않는 테마입니다."
	noSuchResvDetail   = "존재하지 않는 예약입니다."
	notOwnResvDetail   = "다른 회원의 예약은 취소할 수 없습니다."
)

// TimeCatalog resolves time slot references during admission.
type TimeCatalog interface {
	GetByID(ctx context.Context, id uint64) (model.ReservationTime, error)
}

// ThemeCatalog resolves theme references during admission.
type ThemeCatalog interface {
	GetByID(ctx context.Context, id uint64) (model.Theme, error)
}

// ReservationStore is the slice of the reservation repository the
// admission engine needs. Create must be atomic with respect to the
// (date, timeID, themeID) uniqueness: concurrent creates of the same
// triple return repository.ErrReservationExists for all but one caller.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	ExistsBySlot(ctx context.Context, date string, timeID, themeID uint64) (bool, error)
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	GetDetail(ctx context.Context, id uint64) (*repository.ReservationDetail, error)
	ListAll(ctx context.Context) ([]repository.ReservationDetail, error)
	ListByMember(ctx context.Context, memberID uint64) ([]repository.ReservationDetail, error)
	Delete(ctx context.Context, id uint64) error
}

// AdmitRequest is the draft shape of a reservation: it has no ID field at
// all. Only the store produces the persisted model.Reservation.
type AdmitRequest struct {
	Date    string
	TimeID  uint64
	ThemeID uint64
}

// ReservationService is the admission engine. It validates booking
// requests in a fixed order (fail fast, first violated rule wins) and
// persists admitted reservations through the store.
type ReservationService struct {
	times        TimeCatalog
	themes       ThemeCatalog
	reservations ReservationStore
	now          func() time.Time
}

func NewReservationService(times TimeCatalog, themes ThemeCatalog, reservations ReservationStore) *ReservationService {
	return &ReservationService{
		times:        times,
		themes:       themes,
		reservations: reservations,
		now:          time.Now,
	}
}

// WithClock replaces the service clock. Boundary behavior around "now"
// is exercised in tests through this hook.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// Admit validates the request for the caller and, if every rule passes,
// persists and returns the reservation. Validation order: field presence,
// referential validity of the slot and theme, temporal validity, slot
// uniqueness. A slot exactly at "now" is not yet past and is admitted.
func (s *ReservationService) Admit(ctx context.Context, req AdmitRequest, caller auth.Claims) (*repository.ReservationDetail, error) {
	if req.Date == "" || req.TimeID == 0 || req.ThemeID == 0 {
		return nil, apperr.New(apperr.Validation, blankInputDetail)
	}
	date, err := time.ParseInLocation(model.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, apperr.New(apperr.Validation, badDateDetail)
	}

	slot, err := s.times.GetByID(ctx, req.TimeID)
	if err != nil {
		if errors.Is(err, repository.ErrTimeNotFound) {
			return nil, apperr.New(apperr.NotFound, noSuchTimeDetail)
		}
		return nil, err
	}
	theme, err := s.themes.GetByID(ctx, req.ThemeID)
	if err != nil {
		if errors.Is(err, repository.ErrThemeNotFound) {
			return nil, apperr.New(apperr.NotFound, noSuchThemeDetail)
		}
		return nil, err
	}

	startAt, err := time.ParseInLocation(model.TimeLayout, slot.StartAt, time.Local)
	if err != nil {
		return nil, err
	}
	slotAt := time.Date(date.Year(), date.Month(), date.Day(),
		startAt.Hour(), startAt.Minute(), 0, 0, time.Local)
	if slotAt.Before(s.now()) {
		return nil, apperr.New(apperr.ForbiddenOperation, pastSlotDetail)
	}

	// Advisory pre-check: rejects the common duplicate without paying for
	// an insert attempt. The unique index behind Create is what actually
	// serializes concurrent admissions of the same triple.
	exists, err := s.reservations.ExistsBySlot(ctx, req.Date, req.TimeID, theme.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.ForbiddenOperation, duplicateDetail)
	}

	res := &model.Reservation{
		MemberID: caller.MemberID,
		Date:     req.Date,
		TimeID:   slot.ID,
		ThemeID:  theme.ID,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		// A concurrent admission won the race between the pre-check and
		// the insert; surface the same rejection as the pre-check.
		if errors.Is(err, repository.ErrReservationExists) {
			return nil, apperr.New(apperr.ForbiddenOperation, duplicateDetail)
		}
		return nil, err
	}
	return s.reservations.GetDetail(ctx, res.ID)
}

// Withdraw removes a reservation. A customer may withdraw only their own
// reservation; an admin may withdraw any.
func (s *ReservationService) Withdraw(ctx context.Context, id uint64, caller auth.Claims) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return apperr.New(apperr.NotFound, noSuchResvDetail)
		}
		return err
	}
	if caller.Role != model.RoleAdmin && res.MemberID != caller.MemberID {
		return apperr.New(apperr.Authorization, notOwnResvDetail)
	}
	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return apperr.New(apperr.NotFound, noSuchResvDetail)
		}
		return err
	}
	return nil
}

// Get returns one reservation's joined view. Customers can only read
// their own reservations; admins can read any.
func (s *ReservationService) Get(ctx context.Context, id uint64, caller auth.Claims) (*repository.ReservationDetail, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, apperr.New(apperr.NotFound, noSuchResvDetail)
		}
		return nil, err
	}
	if caller.Role != model.RoleAdmin && res.MemberID != caller.MemberID {
		return nil, apperr.New(apperr.Authorization, "다른 회원의 예약은 조회할 수 없습니다.")
	}
	return s.reservations.GetDetail(ctx, id)
}

// ListAll returns every reservation for the admin surface.
func (s *ReservationService) ListAll(ctx context.Context) ([]repository.ReservationDetail, error) {
	return s.reservations.ListAll(ctx)
}

// ListMine returns the caller's reservations.
func (s *ReservationService) ListMine(ctx context.Context, caller auth.Claims) ([]repository.ReservationDetail, error) {
	return s.reservations.ListByMember(ctx, caller.MemberID)
}
