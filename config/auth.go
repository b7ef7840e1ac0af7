package config

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingSessionSecret is returned when no session signing secret is configured.
// The service must refuse to start in that case.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET must be set")

const (
	// DefaultSessionCookieName is the cookie carrying the signed session payload.
	DefaultSessionCookieName = "Jokes_session"
	// DefaultSessionMaxAge is how long a session cookie stays valid (30 days).
	DefaultSessionMaxAge = 30 * 24 * time.Hour

	minBcryptCost     = 4
	maxBcryptCost     = 31
	defaultBcryptCost = 10
)

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// SessionSecrets lists the session signing secrets, current secret first.
	// Rotate by prepending a new secret and keeping the old ones for a grace period.
	SessionSecrets []string `env:"SESSION_SECRET" envSeparator:","`

	// SessionEncrypt also encrypts the session payload so clients cannot read it.
	SessionEncrypt bool `env:"SESSION_ENCRYPT" envDefault:"true"`

	// SessionCookieName is the name of the session cookie.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"Jokes_session"`

	// SessionMaxAge is the lifetime of a session cookie.
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`

	// BcryptCost is the bcrypt work factor used for new password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize trims secrets, drops empty entries and clamps numeric values.
func (a *AuthConfig) Sanitize() {
	secrets := make([]string, 0, len(a.SessionSecrets))
	for _, s := range a.SessionSecrets {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			secrets = append(secrets, trimmed)
		}
	}
	a.SessionSecrets = secrets

	a.SessionCookieName = strings.TrimSpace(a.SessionCookieName)
	if a.SessionCookieName == "" {
		a.SessionCookieName = DefaultSessionCookieName
	}
	if a.SessionMaxAge <= 0 {
		a.SessionMaxAge = DefaultSessionMaxAge
	}
	if a.BcryptCost < minBcryptCost || a.BcryptCost > maxBcryptCost {
		a.BcryptCost = defaultBcryptCost
	}
}

// Validate ensures at least one session secret is configured.
func (a *AuthConfig) Validate() error {
	if len(a.SessionSecrets) == 0 {
		return ErrMissingSessionSecret
	}
	return nil
}
