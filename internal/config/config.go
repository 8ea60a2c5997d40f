package config // package config loads application configuration from environment variables

import "strings"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Only APP_ENV and APP_PORT are required; every
// backing service (MySQL, Redis, RabbitMQ) is optional and the server
// degrades gracefully without it.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	BookingIDs      string // booking id strategy: "sequence" or "uuid"
	BookingIDPrefix string // prefix for generated booking ids
	AdminReload     bool   // expose POST /v1/admin/reload
	Loader          LoaderConfig
	Queue           QueueConfig
	Cache           CacheConfig
	RateLimit       RateLimitConfig
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		BookingIDs:      strings.ToLower(envStr("BOOKING_ID_STRATEGY", "sequence")),
		BookingIDPrefix: envStr("BOOKING_ID_PREFIX", "BK"),
		AdminReload:     envBool("ADMIN_RELOAD_ENABLED", false),
		Loader:          LoadLoaderConfig(),
		Queue:           LoadQueueConfig(),
		Cache:           LoadCacheConfig(),
		RateLimit:       LoadRateLimitConfig(),
	}
}
