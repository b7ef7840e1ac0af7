package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/jokeboard/internal/domain/auth"
	mocksauth "github.com/target/jokeboard/internal/mocks/auth"
	"github.com/target/jokeboard/internal/observability/statsd"
)

// stubIdentity treats the literal cookie header "sid=<id>" as a session for id.
type stubIdentity struct{}

func (stubIdentity) CurrentUserID(cookieHeader string) (string, bool) {
	if len(cookieHeader) > 4 && cookieHeader[:4] == "sid=" {
		return cookieHeader[4:], true
	}
	return "", false
}

func (s stubIdentity) RequireUserID(cookieHeader, target string) domainauth.Resolution {
	if id, ok := s.CurrentUserID(cookieHeader); ok {
		return domainauth.Continue(id)
	}
	return domainauth.LoginRedirect(target)
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFromContext(r.Context())
	_, _ = w.Write([]byte("user=" + id))
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(stubIdentity{})(http.HandlerFunc(echoUserID))

	t.Run("signed in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/jokes/new", nil)
		req.Header.Set("Cookie", "sid=u1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user=u1", rec.Body.String())
	})

	t.Run("browser is redirected with return path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/jokes/new?draft=1", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?redirectTo=%2Fjokes%2Fnew%3Fdraft%3D1", rec.Header().Get("Location"))
	})

	t.Run("api client gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication_required","message":"authentication required"}`, rec.Body.String())
	})
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(stubIdentity{})(http.HandlerFunc(echoUserID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "user=", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "sid=u2")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "user=u2", rec.Body.String())
}

func TestIsBrowserRequest(t *testing.T) {
	tests := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/jokes", "", true},
		{"/jokes", "text/html", true},
		{"/jokes", "*/*", true},
		{"/jokes", "application/json", false},
		{"/api/me", "text/html", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.accept != "" {
			req.Header.Set("Accept", tt.accept)
		}
		assert.Equal(t, tt.want, IsBrowserRequest(req), "%s accept=%q", tt.path, tt.accept)
	}
}

func TestRecover(t *testing.T) {
	h := Recover(quietLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestSecurityHeaders(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), Logging(quietLogger()), SecurityHeaders())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestMetricsTagsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /jokes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	sink := &mocksauth.RecordingSink{}
	h := Chain(mux, Metrics(sink))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/jokes/abc", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/elsewhere", nil))

	got := sink.Counts("http.requests")
	require.Len(t, got, 2)
	assert.Equal(t, statsd.Tags{"method": "GET", "route": "GET /jokes/{id}", "status_class": "4xx"}, got[0].Tags)
	assert.Equal(t, "unmatched", got[1].Tags["route"])
	assert.Len(t, sink.Timings("http.request.duration"), 2)
}
