// Package views renders the HTML pages of the service.
package views

import (
	"bytes"
	"fmt"
	"geomap-admin/internal/geomap"
	"html/template"
	"io"
	"strings"
)

const (
	TemplateHome  = "home"
	TemplateError = "error"
)

const (
	DefaultLeafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	DefaultLeafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
	DefaultTileURL    = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
)

// Assets holds page-wide settings shared by every template.
type Assets struct {
	SiteTitle  string
	LeafletCSS string
	LeafletJS  string
	TileURL    string
}

func DefaultAssets() Assets {
	return Assets{
		SiteTitle:  "Geomap admin",
		LeafletCSS: DefaultLeafletCSS,
		LeafletJS:  DefaultLeafletJS,
		TileURL:    DefaultTileURL,
	}
}

// AdminData is the template data of admin pages. The template name comes
// from the wrapped response.
type AdminData struct {
	Assets
	Title string
	geomap.Page
}

type HomeData struct {
	Assets
	Title   string
	Total   int
	Located int
	Map     *geomap.Context
}

type ErrorData struct {
	Assets
	Title   string
	Message string
}

// Renderer executes the page templates.
type Renderer struct {
	Assets Assets
	tpl    *template.Template
}

func New(assets Assets) (*Renderer, error) {
	tpl := template.New("views").Funcs(template.FuncMap{
		"inc": func(n int) int { return n + 1 },
		"dec": func(n int) int { return n - 1 },
		// toggle flips between ascending and descending order on key.
		"toggle": func(current, key string) string {
			if current == key {
				return "-" + key
			}
			return key
		},
	})

	for _, src := range []string{
		headerTemplate,
		footerTemplate,
		mapTemplate,
		homeTemplate,
		changelistTemplate,
		formTemplate,
		errorTemplate,
	} {
		var err error
		if tpl, err = tpl.Parse(src); err != nil {
			return nil, fmt.Errorf("views: parse templates: %w", err)
		}
	}

	return &Renderer{Assets: assets, tpl: tpl}, nil
}

func Must(r *Renderer, err error) *Renderer {
	if err != nil {
		panic(err)
	}
	return r
}

// Admin renders an admin page with the template named by its response.
func (r *Renderer) Admin(w io.Writer, title string, page geomap.Page) error {
	name := page.Template()
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("views: response %T names no template", page.Response)
	}
	return r.execute(w, name, AdminData{Assets: r.Assets, Title: title, Page: page})
}

func (r *Renderer) Home(w io.Writer, data HomeData) error {
	data.Assets = r.Assets
	return r.execute(w, TemplateHome, data)
}

func (r *Renderer) Error(w io.Writer, title, message string) error {
	return r.execute(w, TemplateError, ErrorData{Assets: r.Assets, Title: title, Message: message})
}

// execute renders into a buffer first so a failed template never leaves a
// half-written page.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("views: render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
