package httpx

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/target/jokeboard/internal/observability/statsd"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth       AuthService
	Jokes      JokeService
	TemplateFS fs.FS // layout.tmpl and pages/*.tmpl
	StaticFS   fs.FS // served under /static/ (optional)
	Health     []HealthCheck
	Metrics    statsd.Sink // optional
	Logger     *slog.Logger
}

// NewRouter wires handlers and middleware.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil || services.Jokes == nil {
		return nil, errors.New("auth and joke services are required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := services.Metrics
	if sink == nil {
		sink = statsd.Discard
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: services.TemplateFS, Logger: logger})
	if err != nil {
		return nil, err
	}

	base := pageBase{Auth: services.Auth, Renderer: renderer, Logger: logger}
	authH := &AuthHandlers{pageBase: base}
	jokeH := &JokeHandlers{pageBase: base, Jokes: services.Jokes, Markdown: NewMarkdown()}
	apiH := &APIHandlers{Auth: services.Auth, Jokes: services.Jokes}
	requireAuth := RequireAuth(services.Auth)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", jokeH.Index)
	mux.HandleFunc("GET /login", authH.LoginPage)
	mux.HandleFunc("POST /login", authH.LoginSubmit)
	mux.HandleFunc("POST /logout", authH.Logout)
	mux.HandleFunc("GET /logout", authH.LogoutPage)

	mux.HandleFunc("GET /jokes", jokeH.List)
	mux.HandleFunc("GET /jokes/new", jokeH.NewForm)
	mux.Handle("POST /jokes/new", requireAuth(http.HandlerFunc(jokeH.Create)))
	mux.HandleFunc("GET /jokes/{id}", jokeH.Show)
	mux.HandleFunc("POST /jokes/{id}", jokeH.Mutate)

	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(apiH.Me)))
	mux.HandleFunc("GET /api/jokes", apiH.ListJokes)

	health := &HealthHandler{Checks: services.Health}
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)

	if services.StaticFS != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(services.StaticFS)))
	}

	mux.HandleFunc("/", jokeH.NotFound)

	return Chain(mux, Recover(logger), Logging(logger), Metrics(sink), SecurityHeaders()), nil
}
