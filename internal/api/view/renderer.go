// Package view holds the embedded HTML templates and static assets, and the
// echo.Renderer that serves them. Templates are parsed once at startup.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer implements echo.Renderer over the embedded templates. Each
// template file defines one named page ("login", "register", "home",
// "error").
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Static returns the embedded static asset tree rooted at its contents,
// ready to be mounted under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
