// Package repository defines error values reused across multiple
// repositories. These sentinels let higher layers distinguish failure
// scenarios without parsing driver errors: ErrReservationExists maps the
// duplicate-key violation of the (date, time_id, theme_id) unique index,
// while ErrConflict signals that a delete cannot proceed because of
// dependent rows (e.g. removing a time slot that still has reservations).
package repository

import "errors"

// ErrEmailExists is returned when a member insert collides with the
// unique email index.
var ErrEmailExists = errors.New("email already exists")

// ErrReservationExists is returned when a reservation insert collides
// with the composite (date, time_id, theme_id) unique index. The index is
// the atomic guard that closes the check-then-insert race between
// concurrent admissions.
var ErrReservationExists = errors.New("reservation already exists")

// ErrTimeNotFound indicates a reservation time slot was not located.
var ErrTimeNotFound = errors.New("reservation time not found")

// ErrThemeNotFound indicates a theme was not located.
var ErrThemeNotFound = errors.New("theme not found")

// ErrReservationNotFound indicates a reservation was not located.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrConflict is returned when a delete cannot be performed because of
// dependent records, such as removing a slot or theme with reservations.
var ErrConflict = errors.New("conflict")
