package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/jokeboard/config"
	"github.com/target/jokeboard/internal/domain/model"
	"github.com/target/jokeboard/internal/mocks"
	"github.com/target/jokeboard/internal/testutil"
)

func TestRedisCacheRepo_SetGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Health(ctx))

	got, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))
	got, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	ttl := client.TTL(ctx, "k").Val()
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	deleted, err := repo.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRedisCacheRepo_EmptyKey(t *testing.T) {
	repo := NewRedisCacheRepo(nil)
	ctx := context.Background()

	require.ErrorIs(t, repo.Set(ctx, "", nil, 0), errEmptyKey)
	_, err := repo.Get(ctx, "")
	require.ErrorIs(t, err, errEmptyKey)
	_, err = repo.Delete(ctx, "")
	require.ErrorIs(t, err, errEmptyKey)
}

func TestNewRedisClient(t *testing.T) {
	_, err := NewRedisClient(config.RedisConfig{})
	require.Error(t, err)

	c, err := NewRedisClient(config.RedisConfig{URI: "redis://:urlpass@cache:6380/2"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", c.Options().Addr)
	assert.Equal(t, "urlpass", c.Options().Password)
	assert.Equal(t, 2, c.Options().DB)
	require.NoError(t, c.Close())

	c, err = NewRedisClient(config.RedisConfig{URI: "localhost:6379", Password: "p", DB: 3})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", c.Options().Addr)
	assert.Equal(t, "p", c.Options().Password)
	assert.Equal(t, 3, c.Options().DB)
	require.NoError(t, c.Close())

	_, err = NewRedisClient(config.RedisConfig{URI: "http://nope"})
	require.Error(t, err)
}

func TestCachedUserStore_WithRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockUserStore(ctrl)
	store.EXPECT().FindByID(gomock.Any(), cachedUser.ID, gomock.Any()).Return(cachedUser, nil).Times(1)

	s, err := NewCachedUserStore(CachedUserStoreOptions{
		Store:     store,
		Cache:     NewRedisCacheRepo(client),
		TTL:       time.Minute,
		KeyPrefix: "jokeboard:test:",
	})
	require.NoError(t, err)

	ctx := context.Background()
	for range 3 {
		u, err := s.FindByID(ctx, cachedUser.ID, model.AllUserFields())
		require.NoError(t, err)
		assert.Equal(t, *cachedUser, *u)
	}
	assert.Equal(t, int64(1), client.Exists(ctx, "jokeboard:test:user:"+cachedUser.ID).Val())
}
