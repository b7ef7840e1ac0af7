package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
	"github.com/target/jokeboard/internal/mocks"
	mocksauth "github.com/target/jokeboard/internal/mocks/auth"
	"github.com/target/jokeboard/internal/ports"
)

func newTestJokeService(t *testing.T, jokes ports.JokeStore, intN func(int) int) *JokeService {
	t.Helper()
	svc, err := NewJokeService(JokeServiceOptions{Jokes: jokes, IntN: intN})
	require.NoError(t, err)
	return svc
}

func TestNewJokeService_RequiresStore(t *testing.T) {
	_, err := NewJokeService(JokeServiceOptions{})
	require.Error(t, err)
}

func TestJokeService_Latest(t *testing.T) {
	store := mocksauth.NewMemoryJokeStore()
	for _, name := range []string{"one", "two", "three", "four", "five", "six"} {
		store.Seed("u1", name, "some long enough content")
	}
	svc := newTestJokeService(t, store, nil)

	items, err := svc.Latest(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, model.LatestJokesLimit)
	assert.Equal(t, "six", items[0].Name)
	assert.Equal(t, "two", items[4].Name)
}

func TestJokeService_Random(t *testing.T) {
	ctx := context.Background()
	store := mocksauth.NewMemoryJokeStore()
	svc := newTestJokeService(t, store, func(n int) int { return n - 1 })

	_, err := svc.Random(ctx)
	require.True(t, apperrors.IsNotFound(err))

	store.Seed("u1", "first", "the first joke")
	last := store.Seed("u1", "second", "the second joke")

	joke, err := svc.Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.ID, joke.ID)
}

func TestJokeService_Random_ShrunkBoard(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockJokeStore(ctrl)
	store.EXPECT().Count(gomock.Any()).Return(3, nil)
	store.EXPECT().At(gomock.Any(), 2).Return(nil, apperrors.NotFound("gone"))

	svc := newTestJokeService(t, store, func(n int) int { return n - 1 })
	_, err := svc.Random(context.Background())
	require.True(t, apperrors.IsNotFound(err))
}

func TestJokeService_Get(t *testing.T) {
	store := mocksauth.NewMemoryJokeStore()
	j := store.Seed("u1", "frisbee", "I was wondering why the frisbee was getting bigger.")
	svc := newTestJokeService(t, store, nil)

	got, err := svc.Get(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Equal(t, j.Name, got.Name)

	_, err = svc.Get(context.Background(), "missing")
	require.True(t, apperrors.IsNotFound(err))
}

func TestJokeService_Create(t *testing.T) {
	ctx := context.Background()
	store := mocksauth.NewMemoryJokeStore()
	svc := newTestJokeService(t, store, nil)

	joke, err := svc.Create(ctx, "u1", model.CreateJokeRequest{Name: " Skeleton ", Content: "Why don't skeletons ride roller coasters?"})
	require.NoError(t, err)
	assert.Equal(t, "u1", joke.JokesterID)
	assert.Equal(t, "Skeleton", joke.Name)

	_, err = svc.Create(ctx, "u1", model.CreateJokeRequest{Name: "x", Content: "short"})
	fe, ok := model.AsFieldErrors(err)
	require.True(t, ok)
	assert.Len(t, fe, 2)

	_, err = svc.Create(ctx, "", model.CreateJokeRequest{Name: "Skeleton", Content: "long enough content"})
	require.True(t, apperrors.IsForbidden(err))
}

func TestJokeService_Delete(t *testing.T) {
	ctx := context.Background()
	store := mocksauth.NewMemoryJokeStore()
	owned := store.Seed("u1", "mine", "a joke that belongs to u1")
	svc := newTestJokeService(t, store, nil)

	tests := []struct {
		name   string
		id     string
		acting string
		check  func(error) bool
	}{
		{name: "missing joke is not found even for anonymous", id: "missing", acting: "", check: apperrors.IsNotFound},
		{name: "missing joke is not found", id: "missing", acting: "u2", check: apperrors.IsNotFound},
		{name: "someone else's joke is forbidden", id: owned.ID, acting: "u2", check: apperrors.IsForbidden},
		{name: "anonymous delete is forbidden", id: owned.ID, acting: "", check: apperrors.IsForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Delete(ctx, tt.id, tt.acting)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}

	require.NoError(t, svc.Delete(ctx, owned.ID, "u1"))
	_, err := store.GetByID(ctx, owned.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestJokeService_Delete_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockJokeStore(ctrl)
	joke := &model.Joke{ID: "j1", JokesterID: "u1"}

	store.EXPECT().GetByID(gomock.Any(), "j1").Return(joke, nil).Times(2)
	gomock.InOrder(
		store.EXPECT().Delete(gomock.Any(), "j1").Return(false, errors.New("deadlock")),
		store.EXPECT().Delete(gomock.Any(), "j1").Return(false, nil),
	)

	svc := newTestJokeService(t, store, nil)

	err := svc.Delete(context.Background(), "j1", "u1")
	require.Error(t, err)
	assert.Empty(t, apperrors.GetCode(err))

	err = svc.Delete(context.Background(), "j1", "u1")
	assert.True(t, apperrors.IsNotFound(err))
}
