package model

import "time"

// Weekday codes used as keys in availability documents, Sunday first to match
// the order weekdays come back from time.Time.Weekday().
var WeekdayCodes = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const (
	ExceptionBlock   = "block"
	ExceptionReplace = "replace"
)

// TimeRange is one bookable window within a day, local wall-clock HH:MM.
type TimeRange struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// AvailabilityDocument is the raw availability document as stored on disk or
// submitted by a client. Any field may be missing or malformed; the document
// is never used directly - it goes through availability.Normalize first.
type AvailabilityDocument struct {
	ProfileID  string                 `json:"profile_id,omitempty" bson:"profile_id,omitempty"`
	Timezone   string                 `json:"timezone,omitempty" bson:"timezone,omitempty"`
	Weekly     map[string][]TimeRange `json:"weekly,omitempty" bson:"weekly,omitempty"`
	Rules      *RulesDocument         `json:"rules,omitempty" bson:"rules,omitempty"`
	Exceptions []ExceptionDocument    `json:"exceptions,omitempty" bson:"exceptions,omitempty"`
	UpdatedAt  time.Time              `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// RulesDocument carries the raw scheduling policy. WindowDays is a pointer
// because an explicit zero (no horizon, no slots) must be distinguishable
// from an absent value (substitute the default horizon).
type RulesDocument struct {
	IncrementMinutes        int    `json:"increment_minutes,omitempty" bson:"increment_minutes,omitempty"`
	MinNoticeHours          int    `json:"min_notice_hours,omitempty" bson:"min_notice_hours,omitempty"`
	WindowDays              *int   `json:"window_days,omitempty" bson:"window_days,omitempty"`
	BufferBeforeMinutes     int    `json:"buffer_before_minutes,omitempty" bson:"buffer_before_minutes,omitempty"`
	BufferAfterMinutes      int    `json:"buffer_after_minutes,omitempty" bson:"buffer_after_minutes,omitempty"`
	DailyCap                int    `json:"daily_cap,omitempty" bson:"daily_cap,omitempty"`
	AllowedDurationsMinutes []int  `json:"allowed_durations_minutes,omitempty" bson:"allowed_durations_minutes,omitempty"`
}

// ExceptionDocument overrides the weekly template for a single date.
// Type "block" removes the date entirely; "replace" substitutes its ranges.
type ExceptionDocument struct {
	Date   string      `json:"date" bson:"date"` // YYYY-MM-DD
	Type   string      `json:"type" bson:"type"`
	Ranges []TimeRange `json:"ranges,omitempty" bson:"ranges,omitempty"`
}

// AvailabilityTemplate is the canonical, fully-populated form produced by the
// normalizer. Every invariant documented on the fields below is guaranteed:
// weekday keys are canonical codes, ranges are sorted and non-overlapping
// with start < end, and all rule values are usable as-is.
type AvailabilityTemplate struct {
	Timezone   string                 `json:"timezone"`
	Weekly     map[string][]TimeRange `json:"weekly"`
	Rules      Rules                  `json:"rules"`
	Exceptions map[string]Exception   `json:"exceptions,omitempty"` // keyed by YYYY-MM-DD
}

// Rules is the normalized scheduling policy. DailyCap <= 0 means unlimited.
type Rules struct {
	IncrementMinutes        int   `json:"increment_minutes"`
	MinNoticeHours          int   `json:"min_notice_hours"`
	WindowDays              int   `json:"window_days"`
	BufferBeforeMinutes     int   `json:"buffer_before_minutes"`
	BufferAfterMinutes      int   `json:"buffer_after_minutes"`
	DailyCap                int   `json:"daily_cap"`
	AllowedDurationsMinutes []int `json:"allowed_durations_minutes"`
}

type Exception struct {
	Type   string      `json:"type"`
	Ranges []TimeRange `json:"ranges,omitempty"`
}
