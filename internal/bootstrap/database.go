package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/target/jokeboard/config"
	"github.com/target/jokeboard/internal/data"
)

const connectTimeout = 5 * time.Second

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// PostgresDSN builds a pgx connection string from cfg.
// url.URL escapes special characters in credentials.
func PostgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectDB establishes a connection to the PostgreSQL database.
func ConnectDB(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", PostgresDSN(cfg.DBConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
		)
	}
	return db, nil
}

// ConnectRedis connects to Redis when it is configured. It returns (nil, nil)
// when REDIS_URI is empty so callers can run without a cache.
func ConnectRedis(ctx context.Context, cfg DatabaseConfig) (*redis.Client, error) {
	if !cfg.RedisConfig.Enabled() {
		if cfg.Logger != nil {
			cfg.Logger.InfoContext(ctx, "redis disabled", "reason", "REDIS_URI not set")
		}
		return nil, nil
	}

	client, err := data.NewRedisClient(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if cfg.Logger != nil {
		// Log the address only; the URI may carry credentials.
		cfg.Logger.InfoContext(ctx, "redis connected", "addr", client.Options().Addr, "db", client.Options().DB)
	}
	return client, nil
}

// RunMigrations applies pending schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	logger.InfoContext(ctx, "running database migrations")
	if err := data.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
