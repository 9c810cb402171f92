package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "openinterview"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr        = ""
	DefaultRedisConnTimeout = 5 * time.Second

	DefaultPort = "8080"

	DefaultAvailabilityServiceURL = "http://localhost:8082"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLogLevel = "info"

	DefaultTimezone         = "UTC"
	DefaultIncrementMinutes = 30
	DefaultMinNoticeHours   = 0
	DefaultWindowDays       = 14
	DefaultBufferMinutes    = 0

	DefaultPaginationLimit = 100
)

// DefaultAllowedDurations are the slot lengths a guest may request.
var DefaultAllowedDurations = []int{15, 30, 60}
