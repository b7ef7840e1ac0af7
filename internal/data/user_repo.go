package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/target/jokeboard/internal/data/pgxutil"
	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
)

const userNotFoundMessage = "user not found"

// UserRepo stores accounts in the users table.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a UserRepo using the system clock.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a UserRepo with a custom clock (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// FindByUsername loads the credential row used to verify a login.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.Credential, error) {
	var out model.Credential
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT id, username, password_hash FROM users WHERE username = $1`, username)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Credential])
		return err
	})
	if err != nil {
		return nil, mapNotFound(err, userNotFoundMessage)
	}
	return &out, nil
}

// FindByID loads a user, selecting only the columns in projection.
func (r *UserRepo) FindByID(ctx context.Context, id string, projection model.UserProjection) (*model.User, error) {
	if !validID(id) {
		return nil, apperrors.NotFound(userNotFoundMessage)
	}

	// Columns come from the closed UserField set, never from request text.
	query := "SELECT " + strings.Join(projection.Columns(), ", ") + " FROM users WHERE id = $1"

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, id)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[model.User])
		return err
	})
	if err != nil {
		return nil, mapNotFound(err, userNotFoundMessage)
	}
	return &out, nil
}

// Create inserts a user. A taken username surfaces as a conflict on the username field.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	now := r.timeProvider.Now()
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (username, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			RETURNING id, username, created_at, updated_at
		`, username, passwordHash, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a user and, through the foreign key, their jokes.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
