// Package metrics exposes the Prometheus instruments shared by the services.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "openinterview",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by service, method and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "status"},
	)

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "openinterview",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by profile.",
		},
		[]string{"profile_id"},
	)

	bookingCanceled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "openinterview",
			Name:      "booking_canceled_total",
			Help:      "Count of bookings canceled by guests.",
		},
	)

	slotsGenerated = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "openinterview",
			Name:      "slots_generated",
			Help:      "Number of slots returned per generation run.",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250, 500},
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequestDuration, bookingCreated, bookingCanceled, slotsGenerated)
	})
}

func ObserveHTTPRequest(service, method, status string, seconds float64) {
	httpRequestDuration.WithLabelValues(service, method, status).Observe(seconds)
}

func IncBookingCreated(profileID string) {
	bookingCreated.WithLabelValues(profileID).Inc()
}

func IncBookingCanceled() {
	bookingCanceled.Inc()
}

func ObserveSlotsGenerated(count int) {
	slotsGenerated.Observe(float64(count))
}
