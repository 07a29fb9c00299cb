package handler

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/drill-inventory/internal/model"
)

const layoutFile = "layout.html"

// Renderer renders catalog pages.  Each page is parsed together with the
// shared layout into its own template set so the "content" blocks of
// different pages never collide.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	// Stored and redisplayed values are already HTML-escaped.
	"safe":      func(s string) template.HTML { return template.HTML(s) },
	"locations": model.Locations,
	"listURL":   model.ListURL,
}

// NewRenderer parses every page under dir in fsys.
func NewRenderer(fsys fs.FS, dir string) (*Renderer, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		base := path.Base(name)
		if base == layoutFile {
			continue
		}
		t, err := template.New(base).Funcs(funcs).ParseFS(fsys, path.Join(dir, layoutFile), name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		r.pages[base] = t
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
