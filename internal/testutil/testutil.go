// Package testutil provides database and Redis helpers for integration tests.
// Tests skip when the backing service is unreachable unless TEST_REQUIRE_DB,
// TEST_REQUIRE_REDIS or TEST_REQUIRE_INFRA is set.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	// Import pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/target/jokeboard/internal/migrate"
)

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
	Cleanup(func())
}

// TestDBConfig holds configuration for the test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DefaultTestDBConfig reads TEST_DB_* variables. The port defaults to 55432,
// the local docker-compose test profile; CI sets TEST_DB_PORT=5432.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "jokeboard"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "jokeboard"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "jokeboard_test"),
		SSLMode:  getEnvOrDefault("TEST_DB_SSL_MODE", "disable"),
	}
}

// DSN renders cfg as a postgres URL.
func (cfg TestDBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// SkipIfNoTestDB skips the test if the test database cannot be reached.
func SkipIfNoTestDB(t TestingTB) {
	t.Helper()

	db, err := sql.Open("pgx", DefaultTestDBConfig().DSN())
	if err == nil {
		defer closeAndLog(t, "probe DB", db)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = db.PingContext(ctx)
	}
	if err != nil {
		if requireDB() {
			t.Fatal("Test database not available:", err)
		}
		t.Skip("Test database not available:", err)
	}
}

// SetupTestDB connects to the shared test database, applies migrations and
// empties the tables. The handle is closed when the test ends.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	db, err := sql.Open("pgx", DefaultTestDBConfig().DSN())
	if err != nil {
		t.Fatal("Failed to open database:", err)
	}
	t.Cleanup(func() { closeAndLog(t, "test DB", db) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := migrate.Run(ctx, db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}
	CleanupTestDB(t, db)
	return db
}

// CleanupTestDB deletes all rows, children first.
func CleanupTestDB(t TestingTB, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, stmt := range []string{"DELETE FROM jokes", "DELETE FROM users"} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("cleanup %q: %v", stmt, err)
		}
	}
}

// SetupAutoDB uses a per-test schema when TEST_DB_EPHEMERAL is truthy and the
// shared database otherwise.
func SetupAutoDB(t TestingTB) *sql.DB {
	t.Helper()
	if envBool("TEST_DB_EPHEMERAL") {
		return SetupEphemeralSchemaDB(t)
	}
	return SetupTestDB(t)
}

// SetupEphemeralSchemaDB creates a uniquely named schema, points search_path at
// it, migrates it and drops it when the test ends.
func SetupEphemeralSchemaDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	cfg := DefaultTestDBConfig()
	adminDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		t.Fatal("Failed to open admin DB:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	schema := generateSchemaName()
	if _, err := adminDB.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		closeAndLog(t, "admin DB", adminDB)
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}

	u, err := url.Parse(cfg.DSN())
	if err != nil {
		t.Fatal("Failed to parse DSN:", err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	db, err := sql.Open("pgx", u.String())
	if err != nil {
		closeAndLog(t, "admin DB", adminDB)
		t.Fatal("Failed to open schema-scoped DB:", err)
	}
	db.SetMaxOpenConns(5)

	t.Logf("Using ephemeral schema: %s", schema)
	t.Cleanup(func() {
		closeAndLog(t, "schema DB", db)
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		if _, err := adminDB.ExecContext(dropCtx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("warning: failed to drop schema %s: %v", schema, err)
		}
		closeAndLog(t, "admin DB", adminDB)
	})

	if err := migrate.Run(ctx, db); err != nil {
		t.Fatal("Failed to run migrations in ephemeral schema:", err)
	}
	return db
}

// SetupTestRedis returns a client on a test DB index that is flushed before
// use. The address comes from REDIS_ADDR, else localhost:56379.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("REDIS_ADDR", "localhost:56379")
	dbIndex := 1
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			dbIndex = i
		}
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: dbIndex})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		closeAndLog(t, "redis client", client)
		if requireRedis() {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis db %d: %v", dbIndex, err)
	}
	t.Cleanup(func() { closeAndLog(t, "redis client", client) })
	return client
}

func generateSchemaName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}

func closeAndLog(t TestingTB, name string, closer interface{ Close() error }) {
	if err := closer.Close(); err != nil {
		t.Logf("warning: failed to close %s: %v", name, err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envBool parses common truthy values from env vars.
func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func requireDB() bool    { return envBool("TEST_REQUIRE_DB") || envBool("TEST_REQUIRE_INFRA") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }
