package ports

import (
	"context"

	"github.com/target/jokeboard/internal/domain/model"
)

// JokeStore persists jokes. Missing records are reported as apperrors not-found errors.
type JokeStore interface {
	Latest(ctx context.Context, limit int) ([]model.JokeListItem, error)
	Count(ctx context.Context) (int, error)
	// At returns the joke at offset in a stable ordering; used for random selection.
	At(ctx context.Context, offset int) (*model.Joke, error)
	GetByID(ctx context.Context, id string) (*model.Joke, error)
	Create(ctx context.Context, jokesterID string, req model.CreateJokeRequest) (*model.Joke, error)
	Delete(ctx context.Context, id string) (bool, error)
}
