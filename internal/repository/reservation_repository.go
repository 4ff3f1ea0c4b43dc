package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/roomescape/reservation-service/internal/model"
)

// ReservationRepo provides create/read/delete access to reservations.
// The reservations table carries UNIQUE KEY uq_slot (date, time_id,
// theme_id); inserts colliding with it return ErrReservationExists, which
// makes the insert itself the atomic admission guard.
type ReservationRepo struct {
	db *sql.DB
}

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationDetail is a reservation joined with its member, slot and
// theme for display. The member name is resolved here rather than stored
// on the reservation row.
type ReservationDetail struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
	Time struct {
		ID      uint64 `json:"id"`
		StartAt string `json:"startAt"`
	} `json:"time"`
	Theme struct {
		ID          uint64 `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Thumbnail   string `json:"thumbnail"`
	} `json:"theme"`
}

// Create inserts the reservation and populates its generated ID. A
// duplicate (date, time_id, theme_id) triple returns ErrReservationExists;
// concurrent inserts of the same triple therefore admit exactly one row.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO reservations (member_id, date, time_id, theme_id) VALUES (?,?,?,?)",
		res.MemberID, res.Date, res.TimeID, res.ThemeID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrReservationExists
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// ExistsBySlot reports whether a reservation already occupies the
// (date, timeID, themeID) triple. Advisory only: the unique index is the
// authoritative guard at insert time.
func (r *ReservationRepo) ExistsBySlot(ctx context.Context, date string, timeID, themeID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM reservations WHERE date=? AND time_id=? AND theme_id=? LIMIT 1",
		date, timeID, themeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByID returns the raw reservation row or ErrReservationNotFound. Used
// for ownership checks before withdrawal.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	var res model.Reservation
	err := r.db.QueryRowContext(ctx,
		"SELECT id, member_id, DATE_FORMAT(date,'%Y-%m-%d'), time_id, theme_id, created_at FROM reservations WHERE id=? LIMIT 1",
		id).Scan(&res.ID, &res.MemberID, &res.Date, &res.TimeID, &res.ThemeID, &res.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// GetDetail returns the joined view of one reservation or
// ErrReservationNotFound.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (*ReservationDetail, error) {
	const q = `SELECT r.id, m.name, DATE_FORMAT(r.date,'%Y-%m-%d'),
	                  t.id, t.start_at,
	                  th.id, th.name, th.description, th.thumbnail
	           FROM reservations r
	           JOIN members m ON m.id = r.member_id
	           JOIN reservation_times t ON t.id = r.time_id
	           JOIN themes th ON th.id = r.theme_id
	           WHERE r.id = ?`
	var d ReservationDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Date,
		&d.Time.ID, &d.Time.StartAt,
		&d.Theme.ID, &d.Theme.Name, &d.Theme.Description, &d.Theme.Thumbnail,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAll returns every reservation joined with member, slot and theme,
// ordered by date then slot time. Used by the admin surface.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	const q = `SELECT r.id, m.name, DATE_FORMAT(r.date,'%Y-%m-%d'),
	                  t.id, t.start_at,
	                  th.id, th.name, th.description, th.thumbnail
	           FROM reservations r
	           JOIN members m ON m.id = r.member_id
	           JOIN reservation_times t ON t.id = r.time_id
	           JOIN themes th ON th.id = r.theme_id
	           ORDER BY r.date, t.start_at`
	return r.list(ctx, q)
}

// ListByMember returns the member's reservations, newest date first.
func (r *ReservationRepo) ListByMember(ctx context.Context, memberID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, m.name, DATE_FORMAT(r.date,'%Y-%m-%d'),
	                  t.id, t.start_at,
	                  th.id, th.name, th.description, th.thumbnail
	           FROM reservations r
	           JOIN members m ON m.id = r.member_id
	           JOIN reservation_times t ON t.id = r.time_id
	           JOIN themes th ON th.id = r.theme_id
	           WHERE r.member_id = ?
	           ORDER BY r.date DESC, t.start_at`
	return r.list(ctx, q, memberID)
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...interface{}) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Date,
			&d.Time.ID, &d.Time.StartAt,
			&d.Theme.ID, &d.Theme.Name, &d.Theme.Description, &d.Theme.Thumbnail,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes a reservation by id, returning ErrReservationNotFound
// when no row matched.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
