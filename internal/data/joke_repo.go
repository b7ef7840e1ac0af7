package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/jokeboard/internal/data/pgxutil"
	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
)

const jokeNotFoundMessage = "joke not found"

const jokeColumns = `id, jokester_id, name, content, created_at, updated_at`

// JokeRepo stores jokes in the jokes table.
type JokeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJokeRepo creates a JokeRepo using the system clock.
func NewJokeRepo(db *sql.DB) *JokeRepo {
	return &JokeRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewJokeRepoWithTimeProvider creates a JokeRepo with a custom clock (useful for tests).
func NewJokeRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JokeRepo {
	return &JokeRepo{DB: db, timeProvider: tp}
}

// Latest lists the newest jokes first.
func (r *JokeRepo) Latest(ctx context.Context, limit int) ([]model.JokeListItem, error) {
	if limit <= 0 {
		limit = model.LatestJokesLimit
	}
	var out []model.JokeListItem
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, name FROM jokes
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		`, limit)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.JokeListItem])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// Count returns the number of jokes on the board.
func (r *JokeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM jokes`).Scan(&n); err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return n, nil
}

// At returns the joke at offset in creation order.
func (r *JokeRepo) At(ctx context.Context, offset int) (*model.Joke, error) {
	if offset < 0 {
		return nil, apperrors.NotFound(jokeNotFoundMessage)
	}
	return r.getOne(ctx, `SELECT `+jokeColumns+` FROM jokes ORDER BY created_at, id OFFSET $1 LIMIT 1`, offset)
}

// GetByID loads one joke.
func (r *JokeRepo) GetByID(ctx context.Context, id string) (*model.Joke, error) {
	if !validID(id) {
		return nil, apperrors.NotFound(jokeNotFoundMessage)
	}
	return r.getOne(ctx, `SELECT `+jokeColumns+` FROM jokes WHERE id = $1`, id)
}

func (r *JokeRepo) getOne(ctx context.Context, query string, arg any) (*model.Joke, error) {
	var out model.Joke
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Joke])
		return err
	})
	if err != nil {
		return nil, mapNotFound(err, jokeNotFoundMessage)
	}
	return &out, nil
}

// Create inserts a joke owned by jokesterID. The request must already be validated.
func (r *JokeRepo) Create(ctx context.Context, jokesterID string, req model.CreateJokeRequest) (*model.Joke, error) {
	if !validID(jokesterID) {
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeForeignKey,
			Message: "Cannot complete operation because the referenced user does not exist.",
			Field:   "jokester_id",
		}
	}
	now := r.timeProvider.Now()
	var out model.Joke
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO jokes (jokester_id, name, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING `+jokeColumns,
			jokesterID, req.Name, req.Content, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Joke])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a joke and reports whether a row was deleted.
func (r *JokeRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jokes WHERE id = $1`, id)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
