// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for
// tutorhub. Operational endpoints are public; the course pages require an
// authenticated tutor and CSRF protection.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tutorhub/internal/handlers"
	"tutorhub/internal/middleware"
)

// Deps carries everything the routes need.
type Deps struct {
	Courses       *handlers.Courses
	JWTSecret     []byte
	LoginURL      string
	SecureCookies bool
	SubmitLimiter *middleware.RateLimiter // limits POST /tutor/courses per tutor
	Metrics       http.Handler            // nil disables /metrics
	Static        fs.FS                   // nil disables /static/
}

// New creates the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}
	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tutor/courses", http.StatusSeeOther)
	})

	r.Route("/tutor/courses", func(r chi.Router) {
		r.Use(middleware.RequireTutor(d.JWTSecret, d.LoginURL))
		r.Use(middleware.NewCSRF(d.SecureCookies))

		r.Get("/", d.Courses.List)
		r.Get("/new", d.Courses.New)
		r.Post("/preview", d.Courses.Preview)
		r.Get("/{id}", d.Courses.Show)

		r.Group(func(r chi.Router) {
			if d.SubmitLimiter != nil {
				r.Use(d.SubmitLimiter.Middleware)
			}
			r.Post("/", d.Courses.Create)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
