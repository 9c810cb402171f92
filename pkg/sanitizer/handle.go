package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reNonHandleChars = regexp.MustCompile(`[^0-9a-z]+`)
	reMultiHyphen    = regexp.MustCompile(`-+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func collapseHyphens(s string) string {
	s = reMultiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SanitizeHandle turns free text into a URL-safe public handle.
// "Ada Lovelace" becomes "ada-lovelace".
func SanitizeHandle(input string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reNonHandleChars.ReplaceAllString(s, "-") },
		collapseHyphens,
	}
	return p.Apply(input)
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
