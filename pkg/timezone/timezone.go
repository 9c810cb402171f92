// Package timezone resolves IANA zone names with a logged fallback instead of
// an error. Availability documents carry user-supplied zone names, and a bad
// one must never stop a page from rendering.
package timezone

import (
	"time"

	"openinterview/pkg/logger"
)

const DefaultZone = "UTC"

// Resolve loads the named IANA zone. On failure it falls back to the supplied
// default zone, and finally to UTC. It never returns nil.
func Resolve(name string, fallback string, log *logger.Logger) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		if log != nil {
			log.Warn("Unrecognized timezone, falling back to default",
				"timezone", name,
				"fallback", fallback,
			)
		}
	}

	if fallback != "" && fallback != name {
		if loc, err := time.LoadLocation(fallback); err == nil {
			return loc
		}
		if log != nil {
			log.Warn("Fallback timezone failed to load, using UTC", "fallback", fallback)
		}
	}

	return time.UTC
}
