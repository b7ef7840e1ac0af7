package data

import (
	"context"
	"database/sql"

	"github.com/target/jokeboard/internal/migrate"
)

// RunMigrations brings the users/jokes schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
