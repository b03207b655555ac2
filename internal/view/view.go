package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"aiadoption/internal/auth"
	"aiadoption/internal/http/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutName = "layout.html"

var funcMap = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
	"formatDate": func(value time.Time) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("2006-01-02")
	},
	"formatDateTime": func(value time.Time) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("2006-01-02 15:04")
	},
	"clampPercent": func(value int) int {
		switch {
		case value < 0:
			return 0
		case value > 100:
			return 100
		default:
			return value
		}
	},
}

type PageData struct {
	Title         string
	User          *auth.User
	Authenticated bool
	Data          any
	Error         string
	Success       string
	CSRFToken     string
}

// Renderer executes page templates. Each page is parsed together with the
// layout once, at construction.
type Renderer struct {
	templates map[string]*template.Template
}

func New() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template, len(pages))
	layoutPath := path.Join("templates", layoutName)
	for _, page := range pages {
		name := path.Base(page)
		if name == layoutName {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS, layoutPath, page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	v.RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus buffers the whole page so a template error never leaves a
// half-written response.
func (v *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data PageData) {
	if data.User == nil {
		if user, ok := middleware.UserFromContext(r.Context()); ok {
			data.User = user
		}
	}
	data.Authenticated = data.User != nil

	if token := middleware.CSRFTokenFromContext(r); token != "" {
		data.CSRFToken = token
	}

	if data.Success == "" {
		data.Success = strings.TrimSpace(r.URL.Query().Get("success"))
	}
	if data.Error == "" {
		data.Error = strings.TrimSpace(r.URL.Query().Get("error"))
	}

	tmpl, ok := v.templates[name]
	if !ok {
		http.Error(w, "Template not found: "+name, http.StatusInternalServerError)
		return
	}

	entry := layoutName
	if r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Boosted") != "true" {
		entry = "content"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, entry, data); err != nil {
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
