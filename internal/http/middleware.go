package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
	"github.com/target/jokeboard/internal/observability/metrics"
	"github.com/target/jokeboard/internal/observability/statsd"
)

// Identity is the part of the auth service the middleware needs.
type Identity interface {
	CurrentUserID(cookieHeader string) (string, bool)
	RequireUserID(cookieHeader, redirectTarget string) domainauth.Resolution
}

// Logging returns a middleware that logs HTTP requests and responses.
// Cookie and Authorization headers are never logged.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Metrics returns a middleware that counts and times requests. Requests are
// tagged with the matched mux pattern, which ServeMux records on the request.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			metrics.HTTPRequest(sink, metrics.RequestMetric{
				Method:   r.Method,
				Route:    r.Pattern,
				Status:   ww.status,
				Duration: time.Since(start),
			})
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth adds the session user id to the request context when present.
func OptionalAuth(auth Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := auth.CurrentUserID(r.Header.Get("Cookie")); ok {
				r = r.WithContext(SetUserIDInContext(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects anonymous requests. Browsers are sent to the login page
// with a redirectTo back to the current URL; API clients get a 401 JSON body.
func RequireAuth(auth Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := auth.RequireUserID(r.Header.Get("Cookie"), r.URL.RequestURI())
			if res.Kind() == domainauth.ResolutionContinue {
				next.ServeHTTP(w, r.WithContext(SetUserIDInContext(r.Context(), res.UserID())))
				return
			}
			if IsBrowserRequest(r) {
				http.Redirect(w, r, res.Location(), http.StatusSeeOther)
				return
			}
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "authentication_required",
				Message: "authentication required",
			})
		})
	}
}

// IsBrowserRequest reports whether the client expects HTML rather than JSON.
// API routes under /api/ are never browser requests.
func IsBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}

// SecurityHeaders sets conservative response headers on every response.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "same-origin")
			next.ServeHTTP(w, r)
		})
	}
}

// Chain applies middleware so the first argument is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
