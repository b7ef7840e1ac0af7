package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"jokeboard"`
	Password string `env:"PASSWORD"                envDefault:"jokeboard"`
	Name     string `env:"NAME"                    envDefault:"jokeboard"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
// An empty URI disables Redis entirely.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URI) != ""
}

// CacheConfig contains cache configuration (Redis-based).
type CacheConfig struct {
	// UserTTL is how long a user record looked up by id stays cached.
	UserTTL time.Duration `env:"CACHE_USER_TTL" envDefault:"1m"`
	// KeyPrefix namespaces cache keys in a shared Redis.
	KeyPrefix string `env:"CACHE_KEY_PREFIX" envDefault:"jokeboard:"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.UserTTL < 0 {
		c.UserTTL = 0
	}
}
