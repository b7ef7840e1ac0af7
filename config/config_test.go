package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "current-secret, previous-secret ,")
	t.Setenv("SESSION_ENCRYPT", "false")
	t.Setenv("BCRYPT_COST", "12")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expected := AuthConfig{
		SessionSecrets:    []string{"current-secret", "previous-secret"},
		SessionEncrypt:    false,
		SessionCookieName: "Jokes_session",
		SessionMaxAge:     30 * 24 * time.Hour,
		BcryptCost:        12,
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestAppConfig_ValidateRequiresSessionSecret(t *testing.T) {
	tests := []struct {
		name    string
		secrets []string
	}{
		{name: "nil list", secrets: nil},
		{name: "only blanks", secrets: []string{" ", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Auth: AuthConfig{SessionSecrets: tt.secrets}}
			cfg.Sanitize()

			err := cfg.Validate()
			if !errors.Is(err, ErrMissingSessionSecret) {
				t.Fatalf("expected ErrMissingSessionSecret, got %v", err)
			}
		})
	}
}

func TestAuthConfig_SanitizeClampsBcryptCost(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		expected int
	}{
		{name: "too low", cost: 1, expected: 10},
		{name: "too high", cost: 40, expected: 10},
		{name: "in range", cost: 11, expected: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AuthConfig{BcryptCost: tt.cost}
			a.Sanitize()
			if a.BcryptCost != tt.expected {
				t.Errorf("expected cost %d, got %d", tt.expected, a.BcryptCost)
			}
		})
	}
}

func TestAppConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name     string
		appEnv   string
		nodeEnv  string
		wantProd bool
		wantDev  bool
	}{
		{name: "defaults to development", wantProd: false, wantDev: true},
		{name: "app env production", appEnv: "production", wantProd: true, wantDev: false},
		{name: "node env fallback", nodeEnv: "production", wantProd: true, wantDev: false},
		{name: "app env wins over node env", appEnv: "staging", nodeEnv: "production", wantProd: false, wantDev: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)
			cfg := AppConfig{Environment: tt.appEnv}
			cfg.Sanitize()

			if cfg.IsProduction() != tt.wantProd {
				t.Errorf("IsProduction(): expected %v, got %v", tt.wantProd, cfg.IsProduction())
			}
			if cfg.IsDev != tt.wantDev {
				t.Errorf("IsDev: expected %v, got %v", tt.wantDev, cfg.IsDev)
			}
		})
	}
}

func TestRedisConfig_Enabled(t *testing.T) {
	if (RedisConfig{}).Enabled() {
		t.Fatalf("expected empty URI to disable redis")
	}
	if !(RedisConfig{URI: "localhost:6379"}).Enabled() {
		t.Fatalf("expected URI to enable redis")
	}
}

func TestStatsDConfig_Defaults(t *testing.T) {
	t.Setenv("STATSD_PREFIX", " .jokeboard.web. ")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	want := StatsDConfig{Enabled: false, Address: "127.0.0.1:8125", Prefix: "jokeboard.web"}
	if cfg.StatsD != want {
		t.Fatalf("unexpected statsd config: %#v", cfg.StatsD)
	}
}
