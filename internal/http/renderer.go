package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// Page names accepted by TemplateRenderer.Render.
const (
	PageIndex   = "index"
	PageLogin   = "login"
	PageJokes   = "jokes"
	PageJoke    = "joke"
	PageNewJoke = "new_joke"
	PageError   = "error"
)

// TemplateRenderer renders HTML pages. Each file in pages/ is parsed together
// with layout.tmpl into its own template set, so every page may define "content".
type TemplateRenderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing layout.tmpl and pages/*.tmpl (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer parses every page up front so template errors fail startup.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base, err := template.New("root").Funcs(templateFuncs()).ParseFS(cfg.TemplateFS, "layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(cfg.TemplateFS, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		set, cloneErr := base.Clone()
		if cloneErr != nil {
			return nil, cloneErr
		}
		if _, err := set.ParseFS(cfg.TemplateFS, f); err != nil {
			logger.Error("template parsing failed", slog.String("template", f), slog.Any("error", err))
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".tmpl")] = set
	}
	for _, required := range []string{PageIndex, PageLogin, PageJokes, PageJoke, PageNewJoke, PageError} {
		if _, ok := pages[required]; !ok {
			return nil, fmt.Errorf("missing page template %q", required)
		}
	}

	return &TemplateRenderer{pages: pages, logger: logger}, nil
}

// Render executes page into a buffer first so a template failure never sends a half-written page.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", page),
			slog.Any("error", err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"statusText": http.StatusText,
	}
}
