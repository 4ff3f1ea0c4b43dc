package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomescape/reservation-service/internal/apperr"
	"github.com/roomescape/reservation-service/internal/auth"
	"github.com/roomescape/reservation-service/internal/model"
	"github.com/roomescape/reservation-service/internal/repository"
)

// fakeStore is an in-memory catalog and reservation store. Create is
// atomic under a mutex, mirroring the unique-index guarantee of the real
// store: concurrent creates of one slot triple admit exactly one row.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]model.Reservation
	times  map[uint64]model.ReservationTime
	themes map[uint64]model.Theme
	names  map[uint64]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:   map[uint64]model.Reservation{},
		times:  map[uint64]model.ReservationTime{1: {ID: 1, StartAt: "10:00"}, 2: {ID: 2, StartAt: "15:30"}},
		themes: map[uint64]model.Theme{1: {ID: 1, Name: "탈출", Description: "방 탈출", Thumbnail: "t.png"}},
		names:  map[uint64]string{7: "고객", 8: "다른 고객", 9: "관리자"},
	}
}

func (f *fakeStore) GetByID(ctx context.Context, id uint64) (model.ReservationTime, error) {
	if t, ok := f.times[id]; ok {
		return t, nil
	}
	return model.ReservationTime{}, repository.ErrTimeNotFound
}

// themeCatalog adapts fakeStore to the ThemeCatalog interface, since the
// two catalogs share a method name.
type themeCatalog struct{ *fakeStore }

func (f themeCatalog) GetByID(ctx context.Context, id uint64) (model.Theme, error) {
	if t, ok := f.themes[id]; ok {
		return t, nil
	}
	return model.Theme{}, repository.ErrThemeNotFound
}

func (f *fakeStore) slotTaken(date string, timeID, themeID uint64) bool {
	for _, r := range f.byID {
		if r.Date == date && r.TimeID == timeID && r.ThemeID == themeID {
			return true
		}
	}
	return false
}

func (f *fakeStore) Create(ctx context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotTaken(res.Date, res.TimeID, res.ThemeID) {
		return repository.ErrReservationExists
	}
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	f.byID[res.ID] = *res
	return nil
}

func (f *fakeStore) ExistsBySlot(ctx context.Context, date string, timeID, themeID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slotTaken(date, timeID, themeID), nil
}

func (f *fakeStore) reservation(id uint64) (model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeStore) detail(r model.Reservation) repository.ReservationDetail {
	var d repository.ReservationDetail
	d.ID = r.ID
	d.Name = f.names[r.MemberID]
	d.Date = r.Date
	t := f.times[r.TimeID]
	d.Time.ID = t.ID
	d.Time.StartAt = t.StartAt
	th := f.themes[r.ThemeID]
	d.Theme.ID = th.ID
	d.Theme.Name = th.Name
	d.Theme.Description = th.Description
	d.Theme.Thumbnail = th.Thumbnail
	return d
}

func (f *fakeStore) GetDetail(ctx context.Context, id uint64) (*repository.ReservationDetail, error) {
	r, err := f.reservation(id)
	if err != nil {
		return nil, err
	}
	d := f.detail(r)
	return &d, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]repository.ReservationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.ReservationDetail, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, f.detail(r))
	}
	return out, nil
}

func (f *fakeStore) ListByMember(ctx context.Context, memberID uint64) ([]repository.ReservationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.ReservationDetail, 0)
	for _, r := range f.byID {
		if r.MemberID == memberID {
			out = append(out, f.detail(r))
		}
	}
	return out, nil
}

func (f *fakeStore) Delete(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(f.byID, id)
	return nil
}

// resvStore wires the fake's reservation methods onto the
// ReservationStore interface (GetByID is the reservation variant here).
type resvStore struct{ *fakeStore }

func (f resvStore) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	return f.reservation(id)
}

var (
	customer      = auth.Claims{MemberID: 7, Role: model.RoleCustomer}
	otherCustomer = auth.Claims{MemberID: 8, Role: model.RoleCustomer}
	admin         = auth.Claims{MemberID: 9, Role: model.RoleAdmin}
)

func newTestService(now time.Time) (*ReservationService, *fakeStore) {
	f := newFakeStore()
	svc := NewReservationService(f, themeCatalog{f}, resvStore{f}).
		WithClock(func() time.Time { return now })
	return svc, f
}

func fixedNow() time.Time {
	// 2026-06-15 12:00 local; slot 1 is 10:00, slot 2 is 15:30.
	return time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)
}

func TestAdmitSuccess(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	det, err := svc.Admit(context.Background(), AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 1}, customer)
	require.NoError(t, err)
	assert.NotZero(t, det.ID)
	assert.Equal(t, "고객", det.Name)
	assert.Equal(t, "2099-01-11", det.Date)
	assert.Equal(t, uint64(1), det.Time.ID)
	assert.Equal(t, "10:00", det.Time.StartAt)
	assert.Equal(t, uint64(1), det.Theme.ID)
}

func TestAdmitBlankInput(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	cases := []AdmitRequest{
		{Date: "", TimeID: 1, ThemeID: 1},
		{Date: "2099-01-11", TimeID: 0, ThemeID: 1},
		{Date: "2099-01-11", TimeID: 1, ThemeID: 0},
	}
	for _, req := range cases {
		_, err := svc.Admit(context.Background(), req, customer)
		require.Error(t, err, "request %+v", req)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	}
}

func TestAdmitBadDateFormat(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	_, err := svc.Admit(context.Background(), AdmitRequest{Date: "11-01-2099", TimeID: 1, ThemeID: 1}, customer)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestAdmitUnknownReferences(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	_, err := svc.Admit(context.Background(), AdmitRequest{Date: "2099-01-11", TimeID: 99, ThemeID: 1}, customer)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = svc.Admit(context.Background(), AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 99}, customer)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestAdmitPastSlot(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	// Yesterday is strictly past.
	_, err := svc.Admit(context.Background(), AdmitRequest{Date: "2026-06-14", TimeID: 1, ThemeID: 1}, customer)
	require.Error(t, err)
	assert.Equal(t, apperr.ForbiddenOperation, apperr.KindOf(err))
	assert.Equal(t, "지나간 시간에 대한 예약은 할 수 없습니다.", apperr.As(err).Detail)

	// Today at 10:00 is already behind a 12:00 clock.
	_, err = svc.Admit(context.Background(), AdmitRequest{Date: "2026-06-15", TimeID: 1, ThemeID: 1}, customer)
	require.Error(t, err)
	assert.Equal(t, apperr.ForbiddenOperation, apperr.KindOf(err))
}

func TestAdmitBoundary(t *testing.T) {
	// Clock pinned exactly to the slot's date-time: not yet past, the
	// inclusive boundary favors the customer.
	now := time.Date(2026, 6, 15, 15, 30, 0, 0, time.Local)
	svc, _ := newTestService(now)

	det, err := svc.Admit(context.Background(), AdmitRequest{Date: "2026-06-15", TimeID: 2, ThemeID: 1}, customer)
	require.NoError(t, err)
	assert.NotZero(t, det.ID)

	// One second later the same slot is strictly past.
	svc2, _ := newTestService(now.Add(time.Second))
	_, err = svc2.Admit(context.Background(), AdmitRequest{Date: "2026-06-15", TimeID: 2, ThemeID: 1}, customer)
	require.Error(t, err)
	assert.Equal(t, apperr.ForbiddenOperation, apperr.KindOf(err))

	// Today at a later slot is allowed.
	svc3, _ := newTestService(time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local))
	_, err = svc3.Admit(context.Background(), AdmitRequest{Date: "2026-06-15", TimeID: 2, ThemeID: 1}, customer)
	assert.NoError(t, err)
}

func TestAdmitDuplicate(t *testing.T) {
	svc, _ := newTestService(fixedNow())
	req := AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 1}

	_, err := svc.Admit(context.Background(), req, customer)
	require.NoError(t, err)

	_, err = svc.Admit(context.Background(), req, otherCustomer)
	require.Error(t, err)
	assert.Equal(t, apperr.ForbiddenOperation, apperr.KindOf(err))
	assert.Equal(t, "예약이 이미 존재합니다.", apperr.As(err).Detail)
}

func TestAdmitConcurrentDuplicates(t *testing.T) {
	svc, store := newTestService(fixedNow())
	req := AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 1}

	const n = 32
	var wg sync.WaitGroup
	errc := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Admit(context.Background(), req, customer)
			errc <- err
		}()
	}
	wg.Wait()
	close(errc)

	var admitted, rejected int
	for err := range errc {
		if err == nil {
			admitted++
			continue
		}
		rejected++
		assert.Equal(t, apperr.ForbiddenOperation, apperr.KindOf(err))
		assert.Equal(t, "예약이 이미 존재합니다.", apperr.As(err).Detail)
	}
	assert.Equal(t, 1, admitted, "exactly one admission must win the race")
	assert.Equal(t, n-1, rejected)
	assert.Len(t, store.byID, 1)
}

func TestWithdraw(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	det, err := svc.Admit(context.Background(), AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 1}, customer)
	require.NoError(t, err)

	// Another customer cannot withdraw it.
	err = svc.Withdraw(context.Background(), det.ID, otherCustomer)
	require.Error(t, err)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	// The owner can.
	require.NoError(t, svc.Withdraw(context.Background(), det.ID, customer))

	// Withdrawing again reports not found: the reservation is back to
	// the absent state and no longer visible.
	err = svc.Withdraw(context.Background(), det.ID, customer)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestWithdrawAdminOverride(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	det, err := svc.Admit(context.Background(), AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 1}, customer)
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(context.Background(), det.ID, admin))
}

func TestWithdrawThenReadmit(t *testing.T) {
	svc, _ := newTestService(fixedNow())
	req := AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 1}

	first, err := svc.Admit(context.Background(), req, customer)
	require.NoError(t, err)
	require.NoError(t, svc.Withdraw(context.Background(), first.ID, customer))

	// The slot is free again; readmission assigns a fresh id.
	second, err := svc.Admit(context.Background(), req, customer)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetOwnership(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	det, err := svc.Admit(context.Background(), AdmitRequest{Date: "2099-01-11", TimeID: 1, ThemeID: 1}, customer)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), det.ID, otherCustomer)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	got, err := svc.Get(context.Background(), det.ID, customer)
	require.NoError(t, err)
	assert.Equal(t, det.ID, got.ID)

	_, err = svc.Get(context.Background(), det.ID, admin)
	assert.NoError(t, err)
}

func TestListMine(t *testing.T) {
	svc, _ := newTestService(fixedNow())

	for i := 0; i < 3; i++ {
		_, err := svc.Admit(context.Background(), AdmitRequest{
			Date: fmt.Sprintf("2099-01-%02d", 11+i), TimeID: 1, ThemeID: 1,
		}, customer)
		require.NoError(t, err)
	}
	_, err := svc.Admit(context.Background(), AdmitRequest{Date: "2099-02-01", TimeID: 1, ThemeID: 1}, otherCustomer)
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), customer)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
