package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/jokeboard/config"
	"github.com/target/jokeboard/internal/data"
	httpx "github.com/target/jokeboard/internal/http"
	"github.com/target/jokeboard/internal/observability/statsd"
	"github.com/target/jokeboard/internal/ports"
	"github.com/target/jokeboard/internal/service"
)

// ServiceDeps contains the shared infrastructure services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // optional
	Metrics     statsd.Sink           // optional
	Logger      *slog.Logger
}

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Auth   *service.AuthService
	Jokes  *service.JokeService
	Users   ports.UserStore
	Health  []httpx.HealthCheck
	Metrics statsd.Sink
}

// NewServices builds repositories and services from deps.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.DB == nil {
		return nil, data.ErrNilDB
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	sink := deps.Metrics
	if sink == nil {
		sink = statsd.Discard
	}

	var cache ports.Cache
	if deps.RedisClient != nil {
		cache = data.NewRedisCacheRepo(deps.RedisClient)
	}
	users, err := buildUserStore(data.NewUserRepo(deps.DB), cache, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	auth, err := BuildAuthService(AuthConfig{
		Auth:         cfg.Auth,
		Secure:       cfg.IsProduction(),
		CookieDomain: cfg.HTTP.CookieDomain,
		Users:        users,
		Metrics:      sink,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}

	jokes, err := service.NewJokeService(service.JokeServiceOptions{
		Jokes:  data.NewJokeRepo(deps.DB),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build joke service: %w", err)
	}

	return &ServiceContainer{
		Auth:    auth,
		Jokes:   jokes,
		Users:   users,
		Health:  healthChecks(deps.DB, cache),
		Metrics: sink,
	}, nil
}

// buildUserStore puts the Redis-backed cache in front of the user repository
// when a cache is available and a positive TTL is configured.
func buildUserStore(
	repo ports.UserStore,
	cache ports.Cache,
	cacheCfg config.CacheConfig,
	logger *slog.Logger,
) (ports.UserStore, error) {
	if cache == nil || cacheCfg.UserTTL <= 0 {
		return repo, nil
	}
	cached, err := data.NewCachedUserStore(data.CachedUserStoreOptions{
		Store:     repo,
		Cache:     cache,
		TTL:       cacheCfg.UserTTL,
		KeyPrefix: cacheCfg.KeyPrefix,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build cached user store: %w", err)
	}
	logger.Info("user cache enabled", "ttl", cacheCfg.UserTTL)
	return cached, nil
}

func healthChecks(db *sql.DB, cache ports.Cache) []httpx.HealthCheck {
	checks := []httpx.HealthCheck{{Name: "postgres", Check: db.PingContext}}
	if cache != nil {
		checks = append(checks, httpx.HealthCheck{Name: "redis", Check: cache.Health})
	}
	return checks
}

// userCacheInvalidator is implemented by user stores that cache records.
type userCacheInvalidator interface {
	Invalidate(ctx context.Context, id string) error
}

// InvalidateUser drops any cached copy of a user. Stores without a cache are a no-op.
func InvalidateUser(ctx context.Context, users ports.UserStore, id string) error {
	inv, ok := users.(userCacheInvalidator)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return inv.Invalidate(ctx, id)
}
