package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/jokeboard/config"
	"github.com/target/jokeboard/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logStartupInfo(ctx, logger, &cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsClient, err := bootstrap.NewMetricsClient(&cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metricsClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
		}
	}()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	redisClient, err := bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{RedisConfig: cfg.Redis, Logger: logger})
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	deps := &bootstrap.ServiceDeps{Config: &cfg, DB: db, Metrics: metricsClient, Logger: logger}
	// Assign only when set; a nil *redis.Client would make a non-nil interface.
	if redisClient != nil {
		deps.RedisClient = redisClient
	}
	services, err := bootstrap.NewServices(deps)
	if err != nil {
		return err
	}

	return bootstrap.Serve(ctx, &bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting jokeboard",
		"environment", cfg.Environment,
		"dev", cfg.IsDev,
		"http_addr", cfg.HTTP.Addr,
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"redis_enabled", cfg.Redis.Enabled(),
		"session_secrets", len(cfg.Auth.SessionSecrets))
}
