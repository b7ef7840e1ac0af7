package httpx

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/publicsuffix"

	"github.com/target/jokeboard"
	"github.com/target/jokeboard/internal/adapters/cookiecodec"
	mocksauth "github.com/target/jokeboard/internal/mocks/auth"
	"github.com/target/jokeboard/internal/service"
)

const testCookieName = "Jokes_session"

type testApp struct {
	server *httptest.Server
	users  *mocksauth.MemoryUserStore
	jokes  *mocksauth.MemoryJokeStore
	auth   *service.AuthService
}

func testTemplateFS(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(jokeboard.TemplateFS, "frontend/templates")
	require.NoError(t, err)
	return sub
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuth(t *testing.T, users *mocksauth.MemoryUserStore) *service.AuthService {
	t.Helper()
	codec, err := cookiecodec.New(cookiecodec.Options{
		Name:    testCookieName,
		Secrets: []string{"http-test-secret"},
		Encrypt: true,
		MaxAge:  time.Hour,
	})
	require.NoError(t, err)
	sessions, err := service.NewSessionManager(service.SessionManagerOptions{
		Codec:      codec,
		CookieName: testCookieName,
		MaxAge:     time.Hour,
	})
	require.NoError(t, err)
	return service.MustNewAuthService(service.AuthServiceOptions{
		Users:    users,
		Hasher:   mocksauth.PlainHasher{},
		Sessions: sessions,
		Logger:   quietLogger(),
	})
}

func newTestApp(t *testing.T, checks ...HealthCheck) *testApp {
	t.Helper()
	users := mocksauth.NewMemoryUserStore()
	jokes := mocksauth.NewMemoryJokeStore()
	auth := newTestAuth(t, users)
	jokeSvc, err := service.NewJokeService(service.JokeServiceOptions{
		Jokes:  jokes,
		Logger: quietLogger(),
		IntN:   func(int) int { return 0 },
	})
	require.NoError(t, err)

	h, err := NewRouter(RouterServices{
		Auth:       auth,
		Jokes:      jokeSvc,
		TemplateFS: testTemplateFS(t),
		Health:     checks,
		Logger:     quietLogger(),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testApp{server: srv, users: users, jokes: jokes, auth: auth}
}

// client returns a browser-like client with its own cookie jar. Redirects are
// not followed so tests can assert on them.
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/html")
	return do(t, c, req)
}

func (a *testApp) postForm(t *testing.T, c *http.Client, path string, vals url.Values) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(vals.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return do(t, c, req)
}

func (a *testApp) getJSON(t *testing.T, c *http.Client, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	return do(t, c, req)
}

// signIn registers username through the login form and returns a client holding the session.
func (a *testApp) signIn(t *testing.T, username string) *http.Client {
	t.Helper()
	c := a.client(t)
	resp, _ := a.postForm(t, c, "/login", url.Values{
		"loginType":  {"register"},
		"username":   {username},
		"password":   {"twixrox"},
		"redirectTo": {"/jokes"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	return c
}

func (a *testApp) sessionCookie(c *http.Client) *http.Cookie {
	u, _ := url.Parse(a.server.URL)
	for _, ck := range c.Jar.Cookies(u) {
		if ck.Name == testCookieName {
			return ck
		}
	}
	return nil
}

func do(t *testing.T, c *http.Client, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}
