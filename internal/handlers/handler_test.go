// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides fakes for the course handler dependencies so the
// submission flow can be tested without the course API, Valkey or PostgreSQL.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"tutorhub/internal/course"
	"tutorhub/internal/courseapi"
	"tutorhub/internal/metrics"
	"tutorhub/internal/middleware"
	"tutorhub/internal/models"
	"tutorhub/internal/render"
	"tutorhub/internal/session"
)

type fakeAPI struct {
	mu          sync.Mutex
	createCalls int
	lastDraft   course.Draft
	lastToken   string
	createRes   *courseapi.CreateResult
	createErr   error
	course      *courseapi.Course
	getErr      error
	courses     []courseapi.Course
	listErr     error
}

func (f *fakeAPI) CreateCourse(_ context.Context, token string, d course.Draft) (*courseapi.CreateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastDraft = d
	f.lastToken = token
	return f.createRes, f.createErr
}

func (f *fakeAPI) GetCourse(_ context.Context, _, _ string) (*courseapi.Course, error) {
	return f.course, f.getErr
}

func (f *fakeAPI) ListCourses(_ context.Context, _ string) ([]courseapi.Course, error) {
	return f.courses, f.listErr
}

type fakeFlashes struct {
	added   []session.Flash
	pending []session.Flash
}

func (f *fakeFlashes) AddFlash(_ context.Context, _ http.ResponseWriter, _ *http.Request, fl session.Flash) error {
	f.added = append(f.added, fl)
	return nil
}

func (f *fakeFlashes) PopFlashes(_ context.Context, _ *http.Request) ([]session.Flash, error) {
	out := f.pending
	f.pending = nil
	return out, nil
}

type fakeGate struct {
	busy       bool
	acquireErr error
	acquires   int
	releases   int
	lastKey    string
}

func (g *fakeGate) Acquire(_ context.Context, key string) (bool, error) {
	g.acquires++
	g.lastKey = key
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	return !g.busy, nil
}

func (g *fakeGate) Release(_ context.Context, _ string) {
	g.releases++
}

type fakeLog struct {
	subs    []models.Submission
	listErr error
}

func (l *fakeLog) Record(_ context.Context, sub *models.Submission) error {
	l.subs = append(l.subs, *sub)
	return nil
}

func (l *fakeLog) ListRecentByTutor(_ context.Context, tutorID string, _ int) ([]models.Submission, error) {
	if l.listErr != nil {
		return nil, l.listErr
	}
	var out []models.Submission
	for _, s := range l.subs {
		if s.TutorID == tutorID {
			out = append(out, s)
		}
	}
	return out, nil
}

type testEnv struct {
	h       *Courses
	api     *fakeAPI
	flashes *fakeFlashes
	gate    *fakeGate
	log     *fakeLog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	rn, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	env := &testEnv{
		api:     &fakeAPI{createRes: &courseapi.CreateResult{CourseID: "c-1"}},
		flashes: &fakeFlashes{},
		gate:    &fakeGate{},
		log:     &fakeLog{},
	}
	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
	env.h = NewCourses(rn, env.api, env.flashes, env.gate, env.log, m)
	return env
}

var testTutor = &middleware.Tutor{ID: "tutor-1", Name: "Siti", Role: middleware.RoleTutor, Token: "tok-123"}

func validForm() url.Values {
	return url.Values{
		"title":       {"Belajar Go dari Nol"},
		"category":    {"programming"},
		"description": {"Kursus ini membahas dasar-dasar bahasa Go."},
		"price":       {"150000"},
	}
}

// newRequest builds a request carrying the test tutor. A nil form sends no body.
func newRequest(method, target string, form url.Values, htmx bool) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req.WithContext(middleware.WithTutor(req.Context(), testTutor))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

var errTransport = errors.New("dial tcp: connection refused")
