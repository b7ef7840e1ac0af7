package data

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/target/jokeboard/internal/domain/model"
	"github.com/target/jokeboard/internal/ports"
)

// CachedUserStoreOptions configures NewCachedUserStore.
type CachedUserStoreOptions struct {
	Store     ports.UserStore
	Cache     ports.Cache
	TTL       time.Duration
	KeyPrefix string
	Logger    *slog.Logger
}

// CachedUserStore caches id lookups in front of a UserStore. Every request
// resolving the current user hits FindByID, so those reads are absorbed here.
// Credentials are never cached; FindByUsername and Create pass through.
type CachedUserStore struct {
	store  ports.UserStore
	cache  ports.Cache
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewCachedUserStore wraps opts.Store with opts.Cache.
func NewCachedUserStore(opts CachedUserStoreOptions) (*CachedUserStore, error) {
	if opts.Store == nil {
		return nil, errors.New("user store is required")
	}
	if opts.Cache == nil {
		return nil, ErrNilCache
	}
	if opts.TTL <= 0 {
		return nil, errors.New("cache ttl must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedUserStore{
		store:  opts.Store,
		cache:  opts.Cache,
		ttl:    opts.TTL,
		prefix: opts.KeyPrefix,
		logger: logger.With("component", "user_cache"),
	}, nil
}

func (s *CachedUserStore) key(id string) string {
	return s.prefix + "user:" + id
}

// FindByUsername is not cached.
func (s *CachedUserStore) FindByUsername(ctx context.Context, username string) (*model.Credential, error) {
	return s.store.FindByUsername(ctx, username)
}

// FindByID serves from cache when possible. The full record is cached and the
// projection applied on the way out, so differently projected callers share
// one entry. Cache failures degrade to a store read.
func (s *CachedUserStore) FindByID(ctx context.Context, id string, projection model.UserProjection) (*model.User, error) {
	if u, ok := s.lookup(ctx, id); ok {
		out := projection.Apply(u)
		return &out, nil
	}

	u, err := s.store.FindByID(ctx, id, model.AllUserFields())
	if err != nil {
		return nil, err
	}

	if data, mErr := json.Marshal(u); mErr == nil {
		if setErr := s.cache.Set(ctx, s.key(id), data, s.ttl); setErr != nil {
			s.logger.WarnContext(ctx, "user cache write failed", "user_id", id, "error", setErr)
		}
	}

	out := projection.Apply(*u)
	return &out, nil
}

func (s *CachedUserStore) lookup(ctx context.Context, id string) (model.User, bool) {
	data, err := s.cache.Get(ctx, s.key(id))
	if err != nil {
		s.logger.WarnContext(ctx, "user cache read failed", "user_id", id, "error", err)
		return model.User{}, false
	}
	if data == nil {
		return model.User{}, false
	}
	var u model.User
	if err := json.Unmarshal(data, &u); err != nil || u.ID != id {
		s.logger.WarnContext(ctx, "discarding unreadable user cache entry", "user_id", id)
		_, _ = s.cache.Delete(ctx, s.key(id))
		return model.User{}, false
	}
	return u, true
}

// Create passes through; the new user is cached on first lookup.
func (s *CachedUserStore) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	return s.store.Create(ctx, username, passwordHash)
}

// Invalidate drops the cached entry for id, e.g. after the user is deleted.
func (s *CachedUserStore) Invalidate(ctx context.Context, id string) error {
	_, err := s.cache.Delete(ctx, s.key(id))
	return err
}
