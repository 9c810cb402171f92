package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"openinterview/pkg/availability"
	"openinterview/pkg/client"
	"openinterview/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RedisAddr        string
	RedisConnTimeout time.Duration

	Port string

	AvailabilityServiceURL string

	SealerKey string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultTimezone         string
	DefaultIncrementMinutes int
	DefaultMinNoticeHours   int
	DefaultWindowDays       int
	DefaultBufferBeforeMin  int
	DefaultBufferAfterMin   int
	AllowedDurationsMinutes []int

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// Absent .env files are fine; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RedisAddr:        getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisConnTimeout: getEnvDuration(EnvRedisConnTimeout, DefaultRedisConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		AvailabilityServiceURL: getEnvStr(EnvAvailabilityServiceURL, DefaultAvailabilityServiceURL),

		SealerKey: getEnvStr(EnvSealerKey, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultTimezone:         getEnvStr(EnvDefaultTimezone, DefaultTimezone),
		DefaultIncrementMinutes: getEnvNum(EnvDefaultIncrementMin, DefaultIncrementMinutes),
		DefaultMinNoticeHours:   getEnvNum(EnvDefaultMinNoticeHours, DefaultMinNoticeHours),
		DefaultWindowDays:       getEnvNum(EnvDefaultWindowDays, DefaultWindowDays),
		DefaultBufferBeforeMin:  getEnvNum(EnvDefaultBufferBeforeMin, DefaultBufferMinutes),
		DefaultBufferAfterMin:   getEnvNum(EnvDefaultBufferAfterMin, DefaultBufferMinutes),
		AllowedDurationsMinutes: DefaultAllowedDurations,

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects when a Redis address is configured. Redis is optional;
// without it services fall back to in-process rate limiting.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		cfg.Log.Info("Redis not configured, skipping connection")
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisConnTimeout)
}

// AvailabilityDefaults exposes the configured normalization defaults.
func (cfg *Config) AvailabilityDefaults() availability.Defaults {
	return availability.Defaults{
		Timezone:                cfg.DefaultTimezone,
		IncrementMinutes:        cfg.DefaultIncrementMinutes,
		MinNoticeHours:          cfg.DefaultMinNoticeHours,
		WindowDays:              cfg.DefaultWindowDays,
		BufferBeforeMinutes:     cfg.DefaultBufferBeforeMin,
		BufferAfterMinutes:      cfg.DefaultBufferAfterMin,
		AllowedDurationsMinutes: cfg.AllowedDurationsMinutes,
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.DefaultIncrementMinutes <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultIncrementMinutes must be positive, got: %d", cfg.DefaultIncrementMinutes))
	}
	if cfg.DefaultMinNoticeHours < 0 {
		errors = append(errors, fmt.Sprintf("DefaultMinNoticeHours cannot be negative, got: %d", cfg.DefaultMinNoticeHours))
	}
	if cfg.DefaultWindowDays <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultWindowDays must be positive, got: %d", cfg.DefaultWindowDays))
	}
	if cfg.DefaultBufferBeforeMin < 0 || cfg.DefaultBufferAfterMin < 0 {
		errors = append(errors, fmt.Sprintf("buffer defaults cannot be negative, got: %d/%d", cfg.DefaultBufferBeforeMin, cfg.DefaultBufferAfterMin))
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		errors = append(errors, fmt.Sprintf("DefaultTimezone is not a valid IANA zone, got: %s", cfg.DefaultTimezone))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"redis_addr", cfg.RedisAddr,
		"port", cfg.Port,
		"availability_service_url", cfg.AvailabilityServiceURL,
		"sealer_key_set", cfg.SealerKey != "",
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_timezone", cfg.DefaultTimezone,
		"default_increment_minutes", cfg.DefaultIncrementMinutes,
		"default_min_notice_hours", cfg.DefaultMinNoticeHours,
		"default_window_days", cfg.DefaultWindowDays,
		"default_buffer_before_min", cfg.DefaultBufferBeforeMin,
		"default_buffer_after_min", cfg.DefaultBufferAfterMin,
		"allowed_durations_minutes", cfg.AllowedDurationsMinutes,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
