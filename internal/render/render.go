// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the tutor pages.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"tutorhub/internal/course"
	"tutorhub/internal/middleware"
	"tutorhub/internal/models"
	"tutorhub/internal/session"
)

//go:embed templates
var templatesFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string            // Page title for <title> tag
	Tutor     *middleware.Tutor // Authenticated tutor (nil on public pages)
	CSRFToken string            // CSRF token for forms and HTMX headers
	Data      map[string]any    // Page-specific data
	Flashes   []session.Flash   // One-time notifications
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New parses every page template together with the base layout and all
// partials from the embedded filesystem.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"formatPrice": course.FormatPrice,
			"flashClass":  flashClass,
			"statusLabel": statusLabel,
		},
	}

	partials, err := fs.Glob(templatesFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		files := append([]string{"templates/base.html", page}, partials...)
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

// Page renders a full page or, for HTMX requests, only its "content" block.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	block := "base.html"
	if IsHTMX(r) {
		block = "content"
	}
	rn.execute(w, r, name, block, data)
}

// Partial renders a single named block of a page template.
func (rn *Renderer) Partial(w http.ResponseWriter, r *http.Request, name, block string, data *PageData) {
	rn.execute(w, r, name, block, data)
}

// execute buffers the output so a template error never leaves a half
// written response.
func (rn *Renderer) execute(w http.ResponseWriter, r *http.Request, name, block string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Tutor == nil {
		data.Tutor = middleware.TutorFromCtx(r.Context())
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
		slog.Error("render template", "error", err, "template", name, "block", block)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func statusLabel(s models.SubmissionStatus) string {
	switch s {
	case models.SubmissionCreated:
		return "Berhasil"
	case models.SubmissionFailed:
		return "Gagal"
	case models.SubmissionBusy:
		return "Ditolak (masih diproses)"
	default:
		return string(s)
	}
}

func flashClass(t string) string {
	switch t {
	case session.FlashSuccess:
		return "bg-green-50 text-green-800 border-green-200"
	case session.FlashError:
		return "bg-red-50 text-red-800 border-red-200"
	case session.FlashWarning:
		return "bg-yellow-50 text-yellow-800 border-yellow-200"
	default:
		return "bg-blue-50 text-blue-800 border-blue-200"
	}
}
