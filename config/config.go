package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Session and password hashing configuration
//   - database.go: Database and cache configuration
//   - http.go: HTTP server configuration
//   - observability.go: StatsD metrics
type AppConfig struct {
	// Environment names the deployment environment ("development", "production", ...).
	// Falls back to NODE_ENV when APP_ENV is unset.
	Environment string `env:"APP_ENV"`

	// IsDev controls development mode behavior (template reloading from disk).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Metrics
	StatsD StatsDConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Auth.Sanitize()
	c.Cache.Sanitize()
	c.StatsD.Sanitize()

	c.detectEnvironment()
}

// Validate reports configuration errors that must stop the process before it serves traffic.
func (c *AppConfig) Validate() error {
	return c.Auth.Validate()
}

// IsProduction reports whether the service runs in a production-like environment.
// Production turns on the Secure attribute of the session cookie.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production") || strings.EqualFold(c.Environment, "prod")
}

// detectEnvironment checks APP_ENV, NODE_ENV and DEV.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectEnvironment() {
	nodeEnv := strings.ToLower(strings.TrimSpace(os.Getenv("NODE_ENV")))
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if c.Environment == "" {
		c.Environment = nodeEnv
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if !c.IsDev {
		c.IsDev = c.Environment == "development" || c.Environment == "dev"
	}
}
