package httpx

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders user-submitted joke text. Raw HTML in the source is
// dropped and dangerous link schemes are neutralized (goldmark's safe mode).
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a GFM renderer with hard line breaks, so multi-line
// jokes keep their shape.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)}
}

// Render converts source to HTML safe to embed in a template.
func (m *Markdown) Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark output without WithUnsafe
}
