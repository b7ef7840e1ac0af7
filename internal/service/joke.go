package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
	"github.com/target/jokeboard/internal/ports"
)

// JokeServiceOptions groups dependencies for JokeService.
type JokeServiceOptions struct {
	Jokes  ports.JokeStore // Required
	Logger *slog.Logger    // Optional: structured logger
	// IntN picks a random offset in [0, n). Defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

// JokeService provides the joke board operations. Mutations are gated on ownership.
type JokeService struct {
	jokes  ports.JokeStore
	logger *slog.Logger
	intN   func(n int) int
}

// NewJokeService constructs a new JokeService.
func NewJokeService(opts JokeServiceOptions) (*JokeService, error) {
	if opts.Jokes == nil {
		return nil, errors.New("JokeStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	intN := opts.IntN
	if intN == nil {
		intN = rand.IntN
	}
	return &JokeService{jokes: opts.Jokes, logger: logger.With("component", "jokes"), intN: intN}, nil
}

// Latest returns the newest jokes, most recent first.
func (s *JokeService) Latest(ctx context.Context, limit int) ([]model.JokeListItem, error) {
	if limit <= 0 {
		limit = model.LatestJokesLimit
	}
	items, err := s.jokes.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest jokes: %w", err)
	}
	return items, nil
}

// Random returns a uniformly chosen joke, or a not-found error when the board is empty.
func (s *JokeService) Random(ctx context.Context) (*model.Joke, error) {
	count, err := s.jokes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count jokes: %w", err)
	}
	if count == 0 {
		return nil, apperrors.NotFound("No random joke found")
	}
	joke, err := s.jokes.At(ctx, s.intN(count))
	if apperrors.IsNotFound(err) {
		// The board shrank between the count and the read.
		return nil, apperrors.NotFound("No random joke found")
	}
	if err != nil {
		return nil, fmt.Errorf("load random joke: %w", err)
	}
	return joke, nil
}

// Get returns a joke by id.
func (s *JokeService) Get(ctx context.Context, id string) (*model.Joke, error) {
	joke, err := s.jokes.GetByID(ctx, id)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NotFound("What a joke! Not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("get joke: %w", err)
	}
	return joke, nil
}

// Create validates req and stores a joke owned by jokesterID.
func (s *JokeService) Create(ctx context.Context, jokesterID string, req model.CreateJokeRequest) (*model.Joke, error) {
	if jokesterID == "" {
		return nil, apperrors.Forbidden("You must be logged in to create a joke.")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	joke, err := s.jokes.Create(ctx, jokesterID, req)
	if err != nil {
		return nil, fmt.Errorf("create joke: %w", err)
	}
	s.logger.InfoContext(ctx, "joke created", "joke_id", joke.ID, "jokester_id", jokesterID)
	return joke, nil
}

// Delete removes a joke on behalf of actingUserID. A missing joke is reported as
// not found before ownership is considered; a foreign joke as forbidden.
func (s *JokeService) Delete(ctx context.Context, id, actingUserID string) error {
	joke, err := s.jokes.GetByID(ctx, id)
	if apperrors.IsNotFound(err) {
		return apperrors.NotFound("Can't delete what does not exist")
	}
	if err != nil {
		return fmt.Errorf("get joke: %w", err)
	}

	if domainauth.Authorize(joke.OwnerID(), actingUserID) != domainauth.Allowed {
		s.logger.WarnContext(ctx, "joke delete rejected", "joke_id", id, "user_id", actingUserID)
		return apperrors.Forbidden("Pssh, nice try. That's not your joke")
	}

	ok, err := s.jokes.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete joke: %w", err)
	}
	if !ok {
		return apperrors.NotFound("Can't delete what does not exist")
	}
	s.logger.InfoContext(ctx, "joke deleted", "joke_id", id, "user_id", actingUserID)
	return nil
}
