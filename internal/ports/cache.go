package ports

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache with expiry.
type Cache interface {
	// Set stores value under key. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil, nil when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)
	Health(ctx context.Context) error
}
