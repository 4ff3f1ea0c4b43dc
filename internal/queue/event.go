// Package queue defines message payloads exchanged over the message
// broker, the publisher invoked after admission, and the background
// consumer that writes the reservation audit log.
package queue

// ReservationConfirmedEvent is published when a reservation is admitted
// and persisted. It carries enough context for downstream consumers to
// log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	MemberID      uint64 `json:"member_id"`
	MemberName    string `json:"member_name"`
	Date          string `json:"date"`
	StartAt       string `json:"start_at"`
	ThemeID       uint64 `json:"theme_id"`
	ThemeName     string `json:"theme_name"`
	ConfirmedAt   string `json:"confirmed_at"`
}
