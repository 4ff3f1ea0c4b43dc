package model

// TimeLayout is the time-of-day form used across the API and the
// `reservation_times.start_at` column.
const TimeLayout = "15:04"

// ReservationTime is a bookable time-of-day slot, independent of any
// calendar date. Slots are immutable once referenced by reservations;
// the repository refuses to delete a slot that still has bookings.
//
// Fields:
//  ID      – primary key identifier of the slot.
//  StartAt – time of day in "15:04" form.
type ReservationTime struct {
	ID      uint64 // reservation_times.id
	StartAt string // reservation_times.start_at
}
