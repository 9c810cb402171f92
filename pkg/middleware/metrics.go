package middleware

import (
	"net/http"
	"strconv"
	"time"

	"openinterview/pkg/metrics"
)

// RequestMetrics records per-request latency into the shared histogram.
func RequestMetrics(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     200,
				written:        false,
			}

			next.ServeHTTP(wrapped, r)

			metrics.ObserveHTTPRequest(
				service,
				r.Method,
				strconv.Itoa(wrapped.statusCode),
				time.Since(start).Seconds(),
			)
		})
	}
}
