package timezone

import (
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		zone     string
		fallback string
		want     string
	}{
		{
			name:     "valid zone",
			zone:     "America/New_York",
			fallback: "UTC",
			want:     "America/New_York",
		},
		{
			name:     "unknown zone falls back",
			zone:     "Mars/Olympus_Mons",
			fallback: "Europe/Berlin",
			want:     "Europe/Berlin",
		},
		{
			name:     "empty zone uses fallback",
			zone:     "",
			fallback: "Asia/Jerusalem",
			want:     "Asia/Jerusalem",
		},
		{
			name:     "everything broken yields UTC",
			zone:     "Nowhere/Nowhere",
			fallback: "Also/Broken",
			want:     "UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Resolve(tt.zone, tt.fallback, nil)
			if loc == nil {
				t.Fatal("Resolve returned nil location")
			}
			if loc.String() != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.zone, tt.fallback, loc.String(), tt.want)
			}
		})
	}
}

func TestResolveUsableForConversion(t *testing.T) {
	loc := Resolve("America/New_York", "UTC", nil)
	instant := time.Date(2026, 7, 6, 9, 0, 0, 0, loc)
	if instant.UTC().Hour() != 13 {
		t.Errorf("expected 09:00 EDT to be 13:00 UTC, got %d", instant.UTC().Hour())
	}
}
