// Package web renders the upload form page.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/BerylCAtieno/file-query-client/internal/form"
	"github.com/BerylCAtieno/file-query-client/internal/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templates embed.FS

type Renderer struct {
	page     *template.Template
	markdown goldmark.Markdown
}

type page struct {
	View      form.View
	FileTypes []models.FileType
	Result    template.HTML
}

// NewRenderer parses the embedded templates. With markdown set, result text is
// rendered as Markdown; raw HTML inside it stays escaped.
func NewRenderer(markdown bool) (*Renderer, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := &Renderer{page: tmpl}

	if markdown {
		r.markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, view form.View) error {
	result, err := r.result(view.Result)
	if err != nil {
		return err
	}

	return r.page.ExecuteTemplate(w, "index.html", page{
		View:      view,
		FileTypes: models.FileTypes,
		Result:    result,
	})
}

func (r *Renderer) result(text string) (template.HTML, error) {
	if r.markdown == nil {
		return template.HTML(template.HTMLEscapeString(text)), nil
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render result: %w", err)
	}

	return template.HTML(buf.String()), nil
}
