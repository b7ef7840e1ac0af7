package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jokeboard/internal/domain/model"
)

func TestNewTemplateRenderer_MissingPage(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.tmpl":      {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"pages/index.tmpl": {Data: []byte(`{{define "content"}}hi{{end}}`)},
	}
	_, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys, Logger: quietLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing page template")
}

func TestNewTemplateRenderer_ParseError(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.tmpl":      {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"pages/index.tmpl": {Data: []byte(`{{define "content"}}{{.Broken{{end}}`)},
	}
	_, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys, Logger: quietLogger()})
	require.Error(t, err)
}

func TestTemplateRenderer_Render(t *testing.T) {
	r, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: testTemplateFS(t), Logger: quietLogger()})
	require.NoError(t, err)

	t.Run("escapes user content", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, PageLogin, PageData{
			Title: "Login",
			Form:  FormState{Username: `<script>alert(1)</script>`, LoginType: "login", RedirectTo: "/jokes"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	})

	t.Run("signed-in header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, r.Render(rec, http.StatusOK, PageIndex, PageData{User: &model.User{ID: "u1", Username: "kody"}}))
		assert.Contains(t, rec.Body.String(), "Hi kody")
		assert.Contains(t, rec.Body.String(), `action="/logout"`)
	})

	t.Run("unknown page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.Error(t, r.Render(rec, http.StatusOK, "nope", PageData{}))
	})
}
