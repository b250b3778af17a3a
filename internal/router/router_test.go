// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tutorhub/internal/course"
	"tutorhub/internal/courseapi"
	"tutorhub/internal/handlers"
	"tutorhub/internal/metrics"
	"tutorhub/internal/middleware"
	"tutorhub/internal/models"
	"tutorhub/internal/render"
	"tutorhub/internal/session"
	"tutorhub/web"
)

var testSecret = []byte("router-test-secret")

type stubAPI struct{ creates int }

func (s *stubAPI) CreateCourse(context.Context, string, course.Draft) (*courseapi.CreateResult, error) {
	s.creates++
	return &courseapi.CreateResult{CourseID: "c-42"}, nil
}

func (s *stubAPI) GetCourse(_ context.Context, _, id string) (*courseapi.Course, error) {
	return &courseapi.Course{ID: id, Title: "Kursus Uji", Category: course.CategoryOther}, nil
}

func (s *stubAPI) ListCourses(context.Context, string) ([]courseapi.Course, error) {
	return nil, nil
}

type stubFlashes struct{}

func (stubFlashes) AddFlash(context.Context, http.ResponseWriter, *http.Request, session.Flash) error {
	return nil
}

func (stubFlashes) PopFlashes(context.Context, *http.Request) ([]session.Flash, error) {
	return nil, nil
}

type stubGate struct{}

func (stubGate) Acquire(context.Context, string) (bool, error) { return true, nil }
func (stubGate) Release(context.Context, string)               {}

type stubLog struct{}

func (stubLog) Record(context.Context, *models.Submission) error { return nil }
func (stubLog) ListRecentByTutor(context.Context, string, int) ([]models.Submission, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, limit int) (http.Handler, *stubAPI) {
	t.Helper()
	rn, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		t.Fatalf("static fs: %v", err)
	}

	reg := prometheus.NewRegistry()
	api := &stubAPI{}
	courses := handlers.NewCourses(rn, api, stubFlashes{}, stubGate{}, stubLog{}, metrics.New(metrics.WithRegistry(reg)))

	limiter := middleware.NewRateLimiter(limit, time.Minute)
	t.Cleanup(limiter.Stop)

	return New(Deps{
		Courses:       courses,
		JWTSecret:     testSecret,
		LoginURL:      "/login",
		SubmitLimiter: limiter,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Static:        static,
	}), api
}

func tutorCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := middleware.SignTutorToken(testSecret, "tutor-1", "Siti", middleware.RoleTutor, time.Hour)
	if err != nil {
		t.Fatalf("SignTutorToken: %v", err)
	}
	return &http.Cookie{Name: middleware.AccessTokenCookie, Value: token}
}

// csrfCookie fetches the form page and returns the CSRF cookie it sets.
func csrfCookie(t *testing.T, h http.Handler, auth *http.Cookie) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/tutor/courses/new", nil)
	req.AddCookie(auth)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			return c
		}
	}
	t.Fatal("no CSRF cookie on form page")
	return nil
}

func postCourse(h http.Handler, auth, csrf *http.Cookie) *httptest.ResponseRecorder {
	form := url.Values{
		"title":       {"Kursus Uji Coba"},
		"category":    {"other"},
		"description": {"Deskripsi yang cukup panjang untuk lolos."},
		"price":       {"0"},
	}
	req := httptest.NewRequest(http.MethodPost, "/tutor/courses", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(auth)
	if csrf != nil {
		req.AddCookie(csrf)
		req.Header.Set(middleware.CSRFHeaderName, csrf.Value)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, 10)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if rr.Body.String() != `{"status":"ok"}` {
		t.Errorf("body: got %q", rr.Body.String())
	}
}

func TestRootRedirect(t *testing.T) {
	h, _ := newTestRouter(t, 10)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/tutor/courses" {
		t.Errorf("got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestTutorRoutesRequireAuth(t *testing.T) {
	h, _ := newTestRouter(t, 10)
	for _, path := range []string{"/tutor/courses", "/tutor/courses/new", "/tutor/courses/c-1"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
			t.Errorf("%s: got %d %q, want 303 /login", path, rr.Code, rr.Header().Get("Location"))
		}
	}
}

func TestFormPage(t *testing.T) {
	h, _ := newTestRouter(t, 10)
	req := httptest.NewRequest(http.MethodGet, "/tutor/courses/new", nil)
	req.AddCookie(tutorCookie(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Buat Kursus Baru") {
		t.Error("expected form page")
	}
	if rr.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected security headers")
	}
}

func TestCreateRequiresCSRF(t *testing.T) {
	h, api := newTestRouter(t, 10)
	rr := postCourse(h, tutorCookie(t), nil)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rr.Code)
	}
	if api.creates != 0 {
		t.Error("course API must not be called without a CSRF token")
	}
}

func TestCreateFlow(t *testing.T) {
	h, api := newTestRouter(t, 10)
	auth := tutorCookie(t)
	rr := postCourse(h, auth, csrfCookie(t, h, auth))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/tutor/courses/c-42" {
		t.Errorf("Location: got %q", loc)
	}
	if api.creates != 1 {
		t.Errorf("creates: got %d, want 1", api.creates)
	}
}

func TestCreateRateLimited(t *testing.T) {
	h, _ := newTestRouter(t, 1)
	auth := tutorCookie(t)
	csrf := csrfCookie(t, h, auth)

	if rr := postCourse(h, auth, csrf); rr.Code != http.StatusSeeOther {
		t.Fatalf("first submit: got %d, want 303", rr.Code)
	}
	if rr := postCourse(h, auth, csrf); rr.Code != http.StatusTooManyRequests {
		t.Errorf("second submit: got %d, want 429", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, 10)
	auth := tutorCookie(t)
	postCourse(h, auth, csrfCookie(t, h, auth))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `tutorhub_course_submissions_total{status="created"} 1`) {
		t.Error("expected submission counter in metrics output")
	}
}

func TestStaticAssets(t *testing.T) {
	h, _ := newTestRouter(t, 10)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "when-busy") {
		t.Error("expected app.css content")
	}
}
