package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/jokeboard/config"
	"github.com/target/jokeboard/internal/adapters/cookiecodec"
	"github.com/target/jokeboard/internal/adapters/passwords"
	"github.com/target/jokeboard/internal/observability/statsd"
	"github.com/target/jokeboard/internal/ports"
	"github.com/target/jokeboard/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth         config.AuthConfig
	Secure       bool   // Secure cookie attribute; on in production
	CookieDomain string // Optional cookie domain
	Users        ports.UserStore
	Metrics      statsd.Sink // optional
	Logger       *slog.Logger
}

// BuildSessionManager creates the cookie codec and session manager from config.
func BuildSessionManager(cfg AuthConfig) (*service.SessionManager, error) {
	if err := cfg.Auth.Validate(); err != nil {
		return nil, err
	}

	codec, err := cookiecodec.New(cookiecodec.Options{
		Name:    cfg.Auth.SessionCookieName,
		Secrets: cfg.Auth.SessionSecrets,
		Encrypt: cfg.Auth.SessionEncrypt,
		MaxAge:  cfg.Auth.SessionMaxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}

	return service.NewSessionManager(service.SessionManagerOptions{
		Codec:      codec,
		CookieName: cfg.Auth.SessionCookieName,
		MaxAge:     cfg.Auth.SessionMaxAge,
		Secure:     cfg.Secure,
		Domain:     cfg.CookieDomain,
	})
}

// BuildAuthService wires the bcrypt hasher and session manager into an AuthService.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	if cfg.Users == nil {
		return nil, errors.New("user store is required")
	}
	sessions, err := BuildSessionManager(cfg)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Users:    cfg.Users,
		Hasher:   passwords.NewBcryptHasher(cfg.Auth.BcryptCost),
		Sessions: sessions,
		Logger:   cfg.Logger,
		Metrics:  cfg.Metrics,
	})
}
