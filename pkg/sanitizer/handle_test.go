package sanitizer

import (
	"reflect"
	"testing"
)

func TestSanitizeHandle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "spaces become hyphens",
			input: "Ada Lovelace",
			want:  "ada-lovelace",
		},
		{
			name:  "collapses repeated separators",
			input: "ada -- lovelace",
			want:  "ada-lovelace",
		},
		{
			name:  "strips leading and trailing separators",
			input: "--ada.lovelace--",
			want:  "ada-lovelace",
		},
		{
			name:  "keeps digits",
			input: "Dev42",
			want:  "dev42",
		},
		{
			name:  "idempotent",
			input: "ada-lovelace",
			want:  "ada-lovelace",
		},
		{
			name:  "only separators",
			input: "---",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeHandle(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeHandle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "deduplicates after normalization",
			input: []string{"Go", "go ", " GO"},
			want:  []string{"go"},
		},
		{
			name:  "drops empty values",
			input: []string{"  ", "rust", ""},
			want:  []string{"rust"},
		},
		{
			name:  "preserves first-seen order",
			input: []string{"sql", "go", "sql", "grpc"},
			want:  []string{"sql", "go", "grpc"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeSlice(tt.input, NormalizeSkill)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeSlice(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
