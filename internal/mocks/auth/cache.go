package auth

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/target/jokeboard/internal/ports"
)

var _ ports.Cache = (*MemoryCache)(nil)

// MemoryCache is an in-process ports.Cache. TTLs are recorded but never expire entries.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = slices.Clone(value)
	c.ttls[key] = ttl
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	delete(c.data, key)
	delete(c.ttls, key)
	return ok, nil
}

func (c *MemoryCache) Health(context.Context) error { return nil }

// TTL returns the TTL the key was last stored with.
func (c *MemoryCache) TTL(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key]
}

// Keys lists stored keys in sorted order.
func (c *MemoryCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.data))
}
