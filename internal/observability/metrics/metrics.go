// Package metrics names the application's metrics and their tags.
package metrics

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/target/jokeboard/internal/errors"
	"github.com/target/jokeboard/internal/observability/statsd"
)

// Results used as the "result" tag.
const (
	ResultSuccess = "success"
	ResultFailure = "failure" // rejected input or credentials
	ResultError   = "error"   // infrastructure failure
)

// Auth events.
const (
	EventLogin        = "login"
	EventRegister     = "register"
	EventLogout       = "logout"
	EventForcedLogout = "forced_logout"
)

// RequestMetric describes one served HTTP request.
type RequestMetric struct {
	Method   string
	Route    string // mux pattern, not the raw path
	Status   int
	Duration time.Duration
}

// HTTPRequest emits the request counter and latency timing.
func HTTPRequest(sink statsd.Sink, in RequestMetric) {
	if sink == nil {
		return
	}
	route := in.Route
	if route == "" {
		route = "unmatched"
	}
	tags := statsd.Tags{
		"method":       in.Method,
		"route":        route,
		"status_class": strconv.Itoa(in.Status/100) + "xx",
	}
	sink.Count("http.requests", 1, tags)
	sink.Timing("http.request.duration", in.Duration, tags)
}

// AuthMetric describes an authentication outcome.
type AuthMetric struct {
	Event  string
	Result string
	Err    error // tagged with its type when Result is ResultError
}

// AuthEvent counts an authentication outcome under "auth.<event>".
func AuthEvent(sink statsd.Sink, in AuthMetric) {
	if sink == nil || in.Event == "" {
		return
	}
	tags := statsd.Tags{"result": in.Result}
	if in.Result == ResultError {
		if class := ErrorClass(in.Err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("auth."+in.Event, 1, tags)
}

// Error classes for context expiry, whether raw or mapped by apperrors.
const (
	ErrorClassTimeout  = "timeout"
	ErrorClassCanceled = "canceled"
)

// ErrorClass names the innermost concrete type of err, e.g. "pgconn_pgerror",
// for use as a low-cardinality tag. Deadlines and cancellations get their own
// classes so they are not counted as store failures.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return ErrorClassTimeout
	case apperrors.IsCanceled(err), errors.Is(err, context.Canceled):
		return ErrorClassCanceled
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}

	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := strings.ToLower(strings.NewReplacer("*", "", ".", "_").Replace(t.String()))
	if name == "" {
		return "unknown"
	}
	return name
}
