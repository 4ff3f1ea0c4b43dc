package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/roomescape/reservation-service/internal/model"
)

// ReservationTimeRepo manages persistence for bookable time slots. Slots
// referenced by reservations cannot be deleted; the foreign key on
// reservations.time_id enforces this and Delete maps the violation to
// ErrConflict.
type ReservationTimeRepo struct {
	db *sql.DB
}

func NewReservationTimeRepo(db *sql.DB) *ReservationTimeRepo { return &ReservationTimeRepo{db: db} }

// Create inserts a new slot and populates its generated ID.
func (r *ReservationTimeRepo) Create(ctx context.Context, t *model.ReservationTime) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reservation_times (start_at) VALUES (?)", t.StartAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID returns the slot with the given id or ErrTimeNotFound.
func (r *ReservationTimeRepo) GetByID(ctx context.Context, id uint64) (model.ReservationTime, error) {
	var t model.ReservationTime
	err := r.db.QueryRowContext(ctx,
		"SELECT id, start_at FROM reservation_times WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.StartAt)
	if err == sql.ErrNoRows {
		return model.ReservationTime{}, ErrTimeNotFound
	}
	if err != nil {
		return model.ReservationTime{}, err
	}
	return t, nil
}

// List returns all slots ordered by time of day.
func (r *ReservationTimeRepo) List(ctx context.Context) ([]model.ReservationTime, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, start_at FROM reservation_times ORDER BY start_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ReservationTime, 0)
	for rows.Next() {
		var t model.ReservationTime
		if err := rows.Scan(&t.ID, &t.StartAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes a slot. It returns ErrTimeNotFound when no row matched
// and ErrConflict when the slot is still referenced by reservations
// (MySQL raises error 1451 for foreign key violations on delete).
func (r *ReservationTimeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reservation_times WHERE id=?", id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTimeNotFound
	}
	return nil
}
