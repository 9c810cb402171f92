package slotgen

import (
	"reflect"
	"testing"
	"time"

	"openinterview/pkg/model"
)

// 2026-09-01 is a Tuesday.
var tuesday = time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC)

func testTemplate(ranges []model.TimeRange) model.AvailabilityTemplate {
	return model.AvailabilityTemplate{
		Timezone: "UTC",
		Weekly:   map[string][]model.TimeRange{"Tue": ranges},
		Rules: model.Rules{
			IncrementMinutes:        30,
			MinNoticeHours:          0,
			WindowDays:              2,
			AllowedDurationsMinutes: []int{15, 30, 60},
		},
		Exceptions: map[string]model.Exception{},
	}
}

func utc(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

func starts(days []model.DaySlots) []time.Time {
	var out []time.Time
	for _, d := range days {
		for _, s := range d.Slots {
			out = append(out, s.Start)
		}
	}
	return out
}

func TestGenerateSimpleSchedule(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:30"}})

	days := Generate(tpl, nil, tuesday, Options{})

	if len(days) != 1 {
		t.Fatalf("expected one day with slots, got %d", len(days))
	}
	if days[0].Date != "2026-09-01" {
		t.Errorf("unexpected date key %q", days[0].Date)
	}
	if days[0].Label != "Tue, Sep 1" {
		t.Errorf("unexpected label %q", days[0].Label)
	}
	want := []time.Time{utc(9, 0), utc(9, 30), utc(10, 0)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("got starts %v, want %v", got, want)
	}
	if end := days[0].Slots[0].End; !end.Equal(utc(9, 30)) {
		t.Errorf("slot end = %v, want %v", end, utc(9, 30))
	}
}

func TestGenerateMinNotice(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "11:00"}})
	tpl.Rules.MinNoticeHours = 4

	days := Generate(tpl, nil, tuesday, Options{})

	want := []time.Time{utc(10, 0), utc(10, 30)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("got starts %v, want %v", got, want)
	}
}

func TestGenerateBookingWithBuffers(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "12:00"}})
	tpl.Rules.BufferBeforeMinutes = 15
	tpl.Rules.BufferAfterMinutes = 15
	bookings := []model.Booking{
		{Status: model.BookingScheduled, StartTime: utc(9, 30), EndTime: utc(10, 0)},
	}

	days := Generate(tpl, bookings, tuesday, Options{})

	// Blocked interval is [09:15, 10:15), so everything before 10:30 goes.
	want := []time.Time{utc(10, 30), utc(11, 0), utc(11, 30)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("got starts %v, want %v", got, want)
	}
}

func TestGenerateCanceledBookingNeverBlocks(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:00"}})
	bookings := []model.Booking{
		{Status: model.BookingCanceled, StartTime: utc(9, 0), EndTime: utc(10, 0)},
	}

	days := Generate(tpl, bookings, tuesday, Options{})

	want := []time.Time{utc(9, 0), utc(9, 30)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("got starts %v, want %v", got, want)
	}
}

func TestGenerateBackToBackBoundary(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:30"}})
	bookings := []model.Booking{
		{Status: model.BookingScheduled, StartTime: utc(9, 0), EndTime: utc(9, 30)},
	}

	days := Generate(tpl, bookings, tuesday, Options{})

	// A slot starting exactly at the booking end survives.
	want := []time.Time{utc(9, 30), utc(10, 0)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("got starts %v, want %v", got, want)
	}
}

func TestGenerateDailyCap(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "12:00"}})
	tpl.Rules.DailyCap = 2

	days := Generate(tpl, nil, tuesday, Options{})

	want := []time.Time{utc(9, 0), utc(9, 30)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("cap must keep the earliest slots, got %v", starts(days))
	}
}

func TestGenerateZeroWindow(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "17:00"}})
	tpl.Rules.WindowDays = 0

	days := Generate(tpl, nil, tuesday, Options{})

	if len(days) != 0 {
		t.Errorf("expected empty result for zero window, got %v", days)
	}
}

func TestGenerateRangeShorterThanStep(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "09:20"}})

	days := Generate(tpl, nil, tuesday, Options{})

	if len(days) != 0 {
		t.Errorf("expected no slots from a sub-increment range, got %v", days)
	}
}

func TestGenerateBlockException(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:00"}})
	tpl.Exceptions["2026-09-01"] = model.Exception{Type: model.ExceptionBlock}

	days := Generate(tpl, nil, tuesday, Options{})

	if len(days) != 0 {
		t.Errorf("blocked day must be omitted, got %v", days)
	}
}

func TestGenerateReplaceException(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:00"}})
	tpl.Exceptions["2026-09-01"] = model.Exception{
		Type:   model.ExceptionReplace,
		Ranges: []model.TimeRange{{Start: "14:00", End: "15:00"}},
	}

	days := Generate(tpl, nil, tuesday, Options{})

	want := []time.Time{utc(14, 0), utc(14, 30)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("got starts %v, want %v", got, want)
	}
}

func TestGenerateDateFilter(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:00"}})
	tpl.Weekly["Wed"] = []model.TimeRange{{Start: "09:00", End: "10:00"}}

	days := Generate(tpl, nil, tuesday, Options{Date: "2026-09-02"})

	if len(days) != 1 || days[0].Date != "2026-09-02" {
		t.Fatalf("expected only 2026-09-02, got %v", days)
	}
}

func TestGenerateRequestedDuration(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:30"}})

	days := Generate(tpl, nil, tuesday, Options{DurationMinutes: 60})

	want := []time.Time{utc(9, 0), utc(9, 30)}
	if got := starts(days); !reflect.DeepEqual(got, want) {
		t.Errorf("got starts %v, want %v", got, want)
	}
	if end := days[0].Slots[0].End; !end.Equal(utc(10, 0)) {
		t.Errorf("slot end = %v, want %v", end, utc(10, 0))
	}
}

func TestGenerateProfileTimezone(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "09:30"}})
	tpl.Timezone = "America/New_York"

	days := Generate(tpl, nil, tuesday, Options{})

	if len(days) != 1 || len(days[0].Slots) != 1 {
		t.Fatalf("expected a single slot, got %v", days)
	}
	// 09:00 EDT is 13:00 UTC during September.
	if got := days[0].Slots[0].Start.UTC(); !got.Equal(utc(13, 0)) {
		t.Errorf("slot start = %v, want %v", got, utc(13, 0))
	}
}

func TestGenerateUnknownTimezoneFallsBack(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "09:30"}})
	tpl.Timezone = "Not/AZone"

	days := Generate(tpl, nil, tuesday, Options{})

	if len(days) != 1 {
		t.Fatalf("expected UTC fallback to produce slots, got %v", days)
	}
	if got := days[0].Slots[0].Start; !got.Equal(utc(9, 0)) {
		t.Errorf("slot start = %v, want %v", got, utc(9, 0))
	}
}

func TestGenerateMultiDayOrdering(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "10:00"}})
	tpl.Weekly["Thu"] = []model.TimeRange{{Start: "09:00", End: "10:00"}}
	tpl.Rules.WindowDays = 5

	days := Generate(tpl, nil, tuesday, Options{})

	// Wednesday has no schedule and must be absent, not empty.
	if len(days) != 2 {
		t.Fatalf("expected two days, got %v", days)
	}
	if days[0].Date != "2026-09-01" || days[1].Date != "2026-09-03" {
		t.Errorf("days out of order: %q, %q", days[0].Date, days[1].Date)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "09:00", End: "12:00"}})
	tpl.Rules.DailyCap = 3
	bookings := []model.Booking{
		{Status: model.BookingScheduled, StartTime: utc(10, 0), EndTime: utc(10, 30)},
	}

	first := Generate(tpl, bookings, tuesday, Options{})
	second := Generate(tpl, bookings, tuesday, Options{})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs must produce identical output")
	}
}

func TestGenerateNoSlotOverlapsBooking(t *testing.T) {
	tpl := testTemplate([]model.TimeRange{{Start: "08:00", End: "18:00"}})
	bookings := []model.Booking{
		{Status: model.BookingScheduled, StartTime: utc(9, 15), EndTime: utc(10, 45)},
		{Status: model.BookingScheduled, StartTime: utc(14, 0), EndTime: utc(14, 30)},
	}

	days := Generate(tpl, bookings, tuesday, Options{})

	for _, d := range days {
		for _, s := range d.Slots {
			for _, b := range bookings {
				if s.Start.Before(b.EndTime) && b.StartTime.Before(s.End) {
					t.Errorf("slot %v-%v overlaps booking %v-%v", s.Start, s.End, b.StartTime, b.EndTime)
				}
			}
		}
	}
}
