package model

import "time"

// Slot is one bookable interval. Values are concrete instants; JSON encoding
// is RFC 3339, which is what the booking endpoints accept back.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DaySlots groups the surviving slots of one calendar date, evaluated in the
// profile's timezone. Slots are in chronological order. Days with no
// surviving slots are never emitted.
type DaySlots struct {
	Date  string `json:"date"`  // YYYY-MM-DD in the profile timezone
	Label string `json:"label"` // human label for grouping, e.g. "Mon, Jan 5"
	Slots []Slot `json:"slots"`
}
