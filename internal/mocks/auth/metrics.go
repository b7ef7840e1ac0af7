package auth

import (
	"sync"
	"time"

	"github.com/target/jokeboard/internal/observability/statsd"
)

var _ statsd.Sink = (*RecordingSink)(nil)

// RecordedMetric is one Count or Timing call.
type RecordedMetric struct {
	Name string
	Tags statsd.Tags
}

// RecordingSink is a statsd.Sink that keeps every counter call in memory.
type RecordingSink struct {
	mu      sync.Mutex
	counts  []RecordedMetric
	timings []RecordedMetric
}

func (r *RecordingSink) Count(name string, _ int64, tags statsd.Tags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, RecordedMetric{Name: name, Tags: tags})
}

func (r *RecordingSink) Timing(name string, _ time.Duration, tags statsd.Tags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings = append(r.timings, RecordedMetric{Name: name, Tags: tags})
}

// Counts returns the counter calls named name, in order.
func (r *RecordingSink) Counts(name string) []RecordedMetric {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []RecordedMetric
	for _, m := range r.counts {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// Timings returns the timing calls named name, in order.
func (r *RecordingSink) Timings(name string) []RecordedMetric {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []RecordedMetric
	for _, m := range r.timings {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}
