// Package web embeds the HTML templates and static assets and renders pages
// for echo.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"

	"cloud.google.com/go/civil"
	"github.com/labstack/echo/v4"

	"krishi/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DateLayout is how projected activity dates are shown to farmers.
const DateLayout = "02 January, 2006"

func StaticFS() fs.FS { return staticFS }

var funcs = template.FuncMap{
	"fmtDate": func(d civil.Date) string { return d.In(time.UTC).Format(DateLayout) },
	"fmtTime": func(t time.Time) string { return t.Local().Format("2006-01-02 15:04") },
}

// Renderer keeps one template set per page, each parsed together with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, n := range names {
		base := path.Base(n)
		if base == "layout.html" {
			continue
		}
		t, err := template.New(base).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", n)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", base, err)
		}
		r.pages[base] = t
	}
	return r, nil
}

// Render executes the page's layout. Map data gets the current farmer under
// "Farmer".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if m, ok := data.(map[string]any); ok && c != nil {
		if _, set := m["Farmer"]; !set {
			m["Farmer"] = middleware.CurrentFarmer(c)
		}
	}
	return t.ExecuteTemplate(w, "layout", data)
}
