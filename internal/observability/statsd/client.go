// Package statsd emits counters and timings in the DogStatsD line format over UDP.
package statsd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Tags are key/value pairs appended to a metric line.
type Tags map[string]string

// Sink receives application metrics.
type Sink interface {
	Count(name string, value int64, tags Tags)
	Timing(name string, value time.Duration, tags Tags)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Count(string, int64, Tags)          {}
func (discard) Timing(string, time.Duration, Tags) {}

// Config describes how to reach a StatsD agent.
type Config struct {
	Enabled    bool
	Address    string // host:port of the agent
	Prefix     string // prepended to every metric name, e.g. "jokeboard"
	GlobalTags Tags   // added to every line; per-call tags win on conflict
	Logger     *slog.Logger
}

// Client writes metrics to a UDP StatsD agent. A Client without a connection
// (disabled, or closed) silently drops metrics. Safe for concurrent use.
type Client struct {
	prefix string
	global Tags
	logger *slog.Logger

	mu   sync.Mutex
	conn net.Conn
}

var _ Sink = (*Client)(nil)

const dialTimeout = 5 * time.Second

// NewClient dials the agent when cfg enables it. UDP dialing only resolves the
// address, so an agent that is down does not fail startup.
func NewClient(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "."),
		global: cleanTags(cfg.GlobalTags),
		logger: logger,
	}

	addr := strings.TrimSpace(cfg.Address)
	if !cfg.Enabled || addr == "" {
		return c, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	conn, err := (&net.Dialer{}).DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("statsd dial %s: %w", addr, err)
	}
	c.conn = conn
	return c, nil
}

// Enabled reports whether metrics are being sent.
func (c *Client) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Count adds value to a counter.
func (c *Client) Count(name string, value int64, tags Tags) {
	c.send(name, strconv.FormatInt(value, 10), "c", tags)
}

// Timing records a duration in milliseconds.
func (c *Client) Timing(name string, value time.Duration, tags Tags) {
	ms := float64(value) / float64(time.Millisecond)
	c.send(name, strconv.FormatFloat(ms, 'f', -1, 64), "ms", tags)
}

// Close releases the connection. Later writes are dropped.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) send(name, value, kind string, tags Tags) {
	if c == nil {
		return
	}
	line := formatLine(c.prefix, name, value, kind, c.global, tags)
	if line == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	if _, err := c.conn.Write([]byte(line)); err != nil {
		c.logger.Debug("statsd write failed", "metric", name, "error", err)
	}
}

// formatLine renders "prefix.name:value|kind|#k:v,..." with tags sorted by key.
// An empty name yields "".
func formatLine(prefix, name, value, kind string, global, local Tags) string {
	metric := metricName(prefix, name)
	if metric == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(metric)
	b.WriteByte(':')
	b.WriteString(value)
	b.WriteByte('|')
	b.WriteString(kind)
	b.WriteString(formatTags(global, local))
	return b.String()
}

func metricName(prefix, name string) string {
	n := strings.TrimSpace(name)
	n = strings.NewReplacer(" ", "_", "/", "_", ":", "_", "|", "_").Replace(n)
	for strings.Contains(n, "..") {
		n = strings.ReplaceAll(n, "..", ".")
	}
	n = strings.Trim(n, ".")
	switch {
	case n == "":
		return ""
	case prefix == "":
		return n
	default:
		return prefix + "." + n
	}
}

func formatTags(global, local Tags) string {
	merged := cleanTags(global)
	for k, v := range cleanTags(local) {
		merged[k] = v
	}
	if len(merged) == 0 {
		return ""
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + merged[k]
	}
	return "|#" + strings.Join(parts, ",")
}

// cleanTags copies tags, trimming whitespace and dropping empty keys.
func cleanTags(tags Tags) Tags {
	out := make(Tags, len(tags))
	for k, v := range tags {
		if key := strings.TrimSpace(k); key != "" {
			out[key] = strings.TrimSpace(v)
		}
	}
	return out
}
