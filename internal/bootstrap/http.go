package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/jokeboard"
	"github.com/target/jokeboard/config"
	httpx "github.com/target/jokeboard/internal/http"
)

const devTemplateDir = "frontend/templates"

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// TemplateFS returns the page templates. Development mode reads them from disk
// so edits show up on restart without a rebuild.
func TemplateFS(isDev bool) (fs.FS, error) {
	if isDev {
		if st, err := os.Stat(devTemplateDir); err == nil && st.IsDir() {
			return os.DirFS(devTemplateDir), nil
		}
	}
	return fs.Sub(jokeboard.TemplateFS, devTemplateDir)
}

// StaticFS returns the embedded static assets.
func StaticFS() (fs.FS, error) {
	return fs.Sub(jokeboard.StaticFS, "frontend/static")
}

// BuildHTTPHandler assembles the router for the configured services.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil || cfg.Services == nil {
		return nil, errors.New("http server config is incomplete")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templates, err := TemplateFS(cfg.Config.IsDev)
	if err != nil {
		return nil, fmt.Errorf("template fs: %w", err)
	}
	static, err := StaticFS()
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}

	return httpx.NewRouter(httpx.RouterServices{
		Auth:       cfg.Services.Auth,
		Jokes:      cfg.Services.Jokes,
		TemplateFS: templates,
		StaticFS:   static,
		Health:     cfg.Services.Health,
		Metrics:    cfg.Services.Metrics,
		Logger:     logger,
	})
}

// Serve runs the HTTP server until ctx is canceled, then shuts it down,
// giving in-flight requests up to HTTP.ShutdownTimeout to finish.
func Serve(ctx context.Context, cfg *HTTPServerConfig) error {
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := &http.Server{
		Addr:              cfg.Config.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Config.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})
	return g.Wait()
}
