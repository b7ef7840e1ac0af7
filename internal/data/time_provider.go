package data

import (
	"sync"
	"time"
)

// TimeProvider supplies the timestamps repositories write.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock.
type RealTimeProvider struct{}

// Now returns the current time in UTC.
func (RealTimeProvider) Now() time.Time { return time.Now().UTC() }

// FixedTimeProvider returns a settable instant; tests use it to pin created_at ordering.
type FixedTimeProvider struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedTimeProvider creates a FixedTimeProvider starting at t.
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{t: t.UTC()}
}

// Now returns the fixed time.
func (f *FixedTimeProvider) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

// AddTime moves the clock forward by d.
func (f *FixedTimeProvider) AddTime(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}
