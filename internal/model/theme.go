package model

// Theme is a bookable room-escape experience definition. Like time slots,
// themes are immutable once referenced by reservations.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the theme.
//  Description – short description shown on the booking page.
//  Thumbnail   – URL of the theme thumbnail image.
type Theme struct {
	ID          uint64 // themes.id
	Name        string // themes.name
	Description string // themes.description
	Thumbnail   string // themes.thumbnail
}
