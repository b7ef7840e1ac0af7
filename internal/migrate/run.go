// Package migrate applies the embedded SQL schema migrations.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/target/jokeboard/internal/data/pgxutil"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run applies every embedded migration not yet recorded in schema_migrations,
// in file name order. It is safe to call on every start.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	versions, err := Versions()
	if err != nil {
		return err
	}

	logger := slog.Default().With("component", "migrations")
	for _, version := range versions {
		applied, err := apply(ctx, db, version)
		if err != nil {
			return err
		}
		if applied {
			logger.InfoContext(ctx, "applied migration", "version", version)
		}
	}
	return nil
}

// Versions lists the embedded migration versions in apply order.
func Versions() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var versions []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			versions = append(versions, strings.TrimSuffix(e.Name(), ".sql"))
		}
	}
	slices.Sort(versions)
	return versions, nil
}

// apply runs one migration and records it in the same transaction.
func apply(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	if exists {
		return false, nil
	}

	body, err := migrationsFS.ReadFile("migrations/" + version + ".sql")
	if err != nil {
		return false, fmt.Errorf("read migration %s: %w", version, err)
	}

	err = pgxutil.WithSQLTx(ctx, db, pgxutil.SQLTxConfig{Fn: func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, string(body)); execErr != nil {
			return fmt.Errorf("exec migration %s: %w", version, execErr)
		}
		if _, insErr := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); insErr != nil {
			return fmt.Errorf("record migration %s: %w", version, insErr)
		}
		return nil
	}})
	return err == nil, err
}
