// Package slotgen computes bookable interview slots from a normalized
// availability template and the bookings already on the calendar. It is pure
// computation over its inputs; callers supply the clock.
package slotgen

import (
	"strconv"
	"time"

	"openinterview/pkg/logger"
	"openinterview/pkg/model"
	"openinterview/pkg/timezone"
)

// Options tune a single generation run.
type Options struct {
	// DurationMinutes is the requested slot length. Zero means one increment.
	DurationMinutes int
	// Date restricts output to a single YYYY-MM-DD day inside the window.
	Date string
	// Location overrides the template timezone when already resolved.
	Location *time.Location
	Logger   *logger.Logger
}

// blocked is a booking interval expanded by the template buffers.
type blocked struct {
	start time.Time
	end   time.Time
}

// Generate walks the booking window day by day and returns the surviving
// slots grouped per calendar date, chronologically ordered. Days with no
// slots are omitted. Canceled bookings never block.
func Generate(tpl model.AvailabilityTemplate, bookings []model.Booking, now time.Time, opts Options) []model.DaySlots {
	days := []model.DaySlots{}

	if tpl.Rules.WindowDays <= 0 {
		return days
	}

	loc := opts.Location
	if loc == nil {
		loc = timezone.Resolve(tpl.Timezone, timezone.DefaultZone, opts.Logger)
	}

	duration := time.Duration(opts.DurationMinutes) * time.Minute
	if opts.DurationMinutes <= 0 {
		duration = time.Duration(tpl.Rules.IncrementMinutes) * time.Minute
	}
	step := time.Duration(tpl.Rules.IncrementMinutes) * time.Minute
	cutoff := now.Add(time.Duration(tpl.Rules.MinNoticeHours) * time.Hour)

	taken := make([]blocked, 0, len(bookings))
	before := time.Duration(tpl.Rules.BufferBeforeMinutes) * time.Minute
	after := time.Duration(tpl.Rules.BufferAfterMinutes) * time.Minute
	for _, b := range bookings {
		if b.Status != model.BookingScheduled {
			continue
		}
		taken = append(taken, blocked{start: b.StartTime.Add(-before), end: b.EndTime.Add(after)})
	}

	today := now.In(loc)
	for offset := 0; offset < tpl.Rules.WindowDays; offset++ {
		// time.Date re-normalizes per day, so DST shifts inside the window
		// never leak a stale offset into later dates.
		date := time.Date(today.Year(), today.Month(), today.Day()+offset, 0, 0, 0, 0, loc)
		dateKey := date.Format("2006-01-02")
		if opts.Date != "" && opts.Date != dateKey {
			continue
		}

		ranges := tpl.Weekly[model.WeekdayCodes[date.Weekday()]]
		if ex, ok := tpl.Exceptions[dateKey]; ok {
			if ex.Type == model.ExceptionBlock {
				continue
			}
			ranges = ex.Ranges
		}
		if len(ranges) == 0 {
			continue
		}

		slots := generateDay(date, ranges, step, duration, cutoff, taken, tpl.Rules.DailyCap)
		if len(slots) > 0 {
			days = append(days, model.DaySlots{
				Date:  dateKey,
				Label: date.Format("Mon, Jan 2"),
				Slots: slots,
			})
		}
	}

	return days
}

func generateDay(date time.Time, ranges []model.TimeRange, step, duration time.Duration, cutoff time.Time, taken []blocked, limit int) []model.Slot {
	var slots []model.Slot

	for _, r := range ranges {
		start := atTimeOfDay(date, r.Start)
		end := atTimeOfDay(date, r.End)

		for cursor := start; !cursor.Add(duration).After(end); cursor = cursor.Add(step) {
			if limit > 0 && len(slots) >= limit {
				return slots
			}
			if cursor.Before(cutoff) {
				continue
			}
			slotEnd := cursor.Add(duration)
			if conflicts(cursor, slotEnd, taken) {
				continue
			}
			slots = append(slots, model.Slot{Start: cursor, End: slotEnd})
		}
	}

	return slots
}

// conflicts reports whether [start, end) intersects any blocked interval.
// Intervals are half-open, so a slot starting exactly when a buffered booking
// ends is free.
func conflicts(start, end time.Time, taken []blocked) bool {
	for _, t := range taken {
		if start.Before(t.end) && t.start.Before(end) {
			return true
		}
	}
	return false
}

// atTimeOfDay places a normalized HH:MM wall-clock time on the given date in
// its location. The input has passed normalization, so parsing cannot fail.
func atTimeOfDay(date time.Time, hhmm string) time.Time {
	h, _ := strconv.Atoi(hhmm[:2])
	m, _ := strconv.Atoi(hhmm[3:])
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}
