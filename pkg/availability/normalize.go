// Package availability turns raw availability documents of unknown shape into
// canonical templates the slot generator can trust. Normalize is total: it
// never fails, whatever the stored document looks like. Malformed fields are
// silently replaced with safe defaults so a bad document can never break a
// public booking page.
package availability

import (
	"regexp"
	"sort"
	"strings"

	"openinterview/pkg/model"
)

// Defaults are the values substituted for missing or invalid fields.
type Defaults struct {
	Timezone                string
	IncrementMinutes        int
	MinNoticeHours          int
	WindowDays              int
	BufferBeforeMinutes     int
	BufferAfterMinutes      int
	AllowedDurationsMinutes []int
}

// StandardDefaults mirror what new availability documents are created with.
var StandardDefaults = Defaults{
	Timezone:                "UTC",
	IncrementMinutes:        30,
	MinNoticeHours:          0,
	WindowDays:              14,
	BufferBeforeMinutes:     0,
	BufferAfterMinutes:      0,
	AllowedDurationsMinutes: []int{15, 30, 60},
}

var (
	reTimeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	reDateOnly  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// weekdayAliases maps lowercased day names and codes to canonical codes.
var weekdayAliases = map[string]string{
	"sun": "Sun", "sunday": "Sun",
	"mon": "Mon", "monday": "Mon",
	"tue": "Tue", "tuesday": "Tue",
	"wed": "Wed", "wednesday": "Wed",
	"thu": "Thu", "thursday": "Thu",
	"fri": "Fri", "friday": "Fri",
	"sat": "Sat", "saturday": "Sat",
}

// Normalize builds a canonical template from a raw document using the
// standard defaults.
func Normalize(doc *model.AvailabilityDocument) model.AvailabilityTemplate {
	return NormalizeWithDefaults(doc, StandardDefaults)
}

// NormalizeWithDefaults is Normalize with caller-supplied defaults, typically
// sourced from service configuration.
func NormalizeWithDefaults(doc *model.AvailabilityDocument, dflt Defaults) model.AvailabilityTemplate {
	out := model.AvailabilityTemplate{
		Timezone:   dflt.Timezone,
		Weekly:     map[string][]model.TimeRange{},
		Exceptions: map[string]model.Exception{},
		Rules: model.Rules{
			IncrementMinutes:        dflt.IncrementMinutes,
			MinNoticeHours:          dflt.MinNoticeHours,
			WindowDays:              dflt.WindowDays,
			BufferBeforeMinutes:     dflt.BufferBeforeMinutes,
			BufferAfterMinutes:      dflt.BufferAfterMinutes,
			DailyCap:                0,
			AllowedDurationsMinutes: append([]int(nil), dflt.AllowedDurationsMinutes...),
		},
	}

	if doc == nil {
		return out
	}

	if strings.TrimSpace(doc.Timezone) != "" {
		out.Timezone = strings.TrimSpace(doc.Timezone)
	}

	for key, ranges := range doc.Weekly {
		day, ok := canonicalWeekday(key)
		if !ok {
			continue
		}
		kept := normalizeRanges(ranges)
		if len(kept) > 0 {
			out.Weekly[day] = kept
		}
	}

	if r := doc.Rules; r != nil {
		if r.IncrementMinutes > 0 {
			out.Rules.IncrementMinutes = r.IncrementMinutes
		}
		if r.MinNoticeHours > 0 {
			out.Rules.MinNoticeHours = r.MinNoticeHours
		}
		// Explicit zero is honored; negatives fall back to the default.
		if r.WindowDays != nil && *r.WindowDays >= 0 {
			out.Rules.WindowDays = *r.WindowDays
		}
		if r.BufferBeforeMinutes > 0 {
			out.Rules.BufferBeforeMinutes = r.BufferBeforeMinutes
		}
		if r.BufferAfterMinutes > 0 {
			out.Rules.BufferAfterMinutes = r.BufferAfterMinutes
		}
		if r.DailyCap > 0 {
			out.Rules.DailyCap = r.DailyCap
		}
		if durations := normalizeDurations(r.AllowedDurationsMinutes); len(durations) > 0 {
			out.Rules.AllowedDurationsMinutes = durations
		}
	}

	for _, ex := range doc.Exceptions {
		if !reDateOnly.MatchString(ex.Date) {
			continue
		}
		if ex.Type != model.ExceptionBlock && ex.Type != model.ExceptionReplace {
			continue
		}
		// First entry for a date wins, keeping the result order-stable.
		if _, exists := out.Exceptions[ex.Date]; exists {
			continue
		}
		normalized := model.Exception{Type: ex.Type}
		if ex.Type == model.ExceptionReplace {
			normalized.Ranges = normalizeRanges(ex.Ranges)
		}
		out.Exceptions[ex.Date] = normalized
	}

	return out
}

func canonicalWeekday(key string) (string, bool) {
	day, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(key))]
	return day, ok
}

// normalizeRanges drops syntactically invalid and empty ranges, sorts the
// rest by start, and rejects any range overlapping an earlier-starting kept
// range. The first range always survives a collision.
func normalizeRanges(ranges []model.TimeRange) []model.TimeRange {
	valid := make([]model.TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if !reTimeOfDay.MatchString(r.Start) || !reTimeOfDay.MatchString(r.End) {
			continue
		}
		if r.Start >= r.End {
			continue
		}
		valid = append(valid, model.TimeRange{Start: r.Start, End: r.End})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End < valid[j].End
	})

	kept := valid[:0]
	lastEnd := ""
	for _, r := range valid {
		if lastEnd != "" && r.Start < lastEnd {
			continue
		}
		kept = append(kept, r)
		lastEnd = r.End
	}

	if len(kept) == 0 {
		return nil
	}
	return kept
}

func normalizeDurations(durations []int) []int {
	seen := make(map[int]struct{}, len(durations))
	out := make([]int, 0, len(durations))
	for _, d := range durations {
		if d <= 0 {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
