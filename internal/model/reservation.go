package model

import "time"

// DateLayout is the calendar date form used across the API and the
// `reservations.date` column.
const DateLayout = "2006-01-02"

// Reservation records a member's booking of a theme for a calendar date
// and a time slot. A reservation always carries a store-assigned ID: the
// pre-persistence "draft" shape exists only as a service-level request,
// never as a Reservation value, so callers can rely on ID being set.
//
// The member is referenced by ID rather than by display name; the name is
// resolved by joining the members table at read time.
//
// Fields:
//  ID        – primary key identifier, assigned by the database.
//  MemberID  – member who owns the reservation.
//  Date      – booking date in "2006-01-02" form, no time component.
//  TimeID    – reserved time slot.
//  ThemeID   – reserved theme.
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	MemberID  uint64    // reservations.member_id
	Date      string    // reservations.date
	TimeID    uint64    // reservations.time_id
	ThemeID   uint64    // reservations.theme_id
	CreatedAt time.Time // reservations.created_at
}
