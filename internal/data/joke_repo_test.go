package data

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jokeboard/internal/domain/model"
	apperrors "github.com/target/jokeboard/internal/errors"
	"github.com/target/jokeboard/internal/testutil"
)

func seedJokester(t *testing.T, repo *UserRepo, username string) *model.User {
	t.Helper()
	u, err := repo.Create(context.Background(), username, "hash")
	require.NoError(t, err)
	return u
}

func TestJokeRepo_CreateGetDelete(t *testing.T) {
	db := testutil.SetupAutoDB(t)
	jokester := seedJokester(t, NewUserRepo(db), "kody")
	repo := NewJokeRepoWithTimeProvider(db, NewFixedTimeProvider(testEpoch))
	ctx := context.Background()

	j, err := repo.Create(ctx, jokester.ID, model.CreateJokeRequest{Name: "Frisbee", Content: "It was getting bigger, then it hit me."})
	require.NoError(t, err)
	assert.Equal(t, jokester.ID, j.OwnerID())
	assert.True(t, j.CreatedAt.Equal(testEpoch))

	got, err := repo.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Frisbee", got.Name)

	ok, err := repo.Delete(ctx, j.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetByID(ctx, j.ID)
	assert.True(t, apperrors.IsNotFound(err))

	ok, err = repo.Delete(ctx, j.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJokeRepo_CreateUnknownJokester(t *testing.T) {
	db := testutil.SetupAutoDB(t)
	repo := NewJokeRepo(db)
	ctx := context.Background()
	req := model.CreateJokeRequest{Name: "Orphan", Content: "Nobody owns this one."}

	_, err := repo.Create(ctx, uuid.NewString(), req)
	assert.True(t, apperrors.IsForeignKey(err), "got %v", err)

	_, err = repo.Create(ctx, "bogus", req)
	assert.True(t, apperrors.IsForeignKey(err), "got %v", err)
}

func TestJokeRepo_LatestCountAt(t *testing.T) {
	db := testutil.SetupAutoDB(t)
	jokester := seedJokester(t, NewUserRepo(db), "kody")
	clock := NewFixedTimeProvider(testEpoch)
	repo := NewJokeRepoWithTimeProvider(db, clock)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	latest, err := repo.Latest(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, latest)

	var ids []string
	for i := range 7 {
		j, err := repo.Create(ctx, jokester.ID, model.CreateJokeRequest{
			Name:    fmt.Sprintf("joke %d", i),
			Content: fmt.Sprintf("punchline number %d", i),
		})
		require.NoError(t, err)
		ids = append(ids, j.ID)
		clock.AddTime(time.Minute)
	}

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	latest, err = repo.Latest(ctx, 0)
	require.NoError(t, err)
	require.Len(t, latest, model.LatestJokesLimit)
	assert.Equal(t, "joke 6", latest[0].Name)
	assert.Equal(t, "joke 2", latest[4].Name)

	for i, id := range ids {
		j, err := repo.At(ctx, i)
		require.NoError(t, err)
		assert.Equal(t, id, j.ID)
	}

	_, err = repo.At(ctx, 7)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = repo.At(ctx, -1)
	assert.True(t, apperrors.IsNotFound(err))
}
