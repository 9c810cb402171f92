package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr        = "REDIS_ADDR"
	EnvRedisConnTimeout = "REDIS_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvAvailabilityServiceURL = "AVAILABILITY_SERVICE_URL"

	EnvSealerKey = "SEALER_KEY"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultTimezone        = "DEFAULT_TIMEZONE"
	EnvDefaultIncrementMin    = "DEFAULT_INCREMENT_MINUTES"
	EnvDefaultMinNoticeHours  = "DEFAULT_MIN_NOTICE_HOURS"
	EnvDefaultWindowDays      = "DEFAULT_WINDOW_DAYS"
	EnvDefaultBufferBeforeMin = "DEFAULT_BUFFER_BEFORE_MINUTES"
	EnvDefaultBufferAfterMin  = "DEFAULT_BUFFER_AFTER_MINUTES"
)
