// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the tutor course pages.
// Handlers receive their dependencies through the handler struct.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"tutorhub/internal/course"
	"tutorhub/internal/courseapi"
	"tutorhub/internal/metrics"
	"tutorhub/internal/middleware"
	"tutorhub/internal/models"
	"tutorhub/internal/render"
	"tutorhub/internal/session"
)

// User-facing notifications.
const (
	msgCreated      = "Kursus berhasil dibuat!"
	msgCreateFailed = "Gagal membuat kursus"
	msgBusy         = "Kursus sedang dibuat, mohon tunggu sebentar"
	msgListFailed   = "Gagal memuat daftar kursus"
	msgDetailFailed = "Detail kursus belum dapat dimuat"
)

// recentSubmissions is how many attempts the list page shows.
const recentSubmissions = 5

// CourseAPI is the subset of the course service the pages call.
type CourseAPI interface {
	CreateCourse(ctx context.Context, token string, d course.Draft) (*courseapi.CreateResult, error)
	GetCourse(ctx context.Context, token, id string) (*courseapi.Course, error)
	ListCourses(ctx context.Context, token string) ([]courseapi.Course, error)
}

// FlashStore queues one-time notifications across a redirect.
type FlashStore interface {
	AddFlash(ctx context.Context, w http.ResponseWriter, r *http.Request, f session.Flash) error
	PopFlashes(ctx context.Context, r *http.Request) ([]session.Flash, error)
}

// Gate allows one create call in flight per key.
type Gate interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

// SubmissionLog records create attempts.
type SubmissionLog interface {
	Record(ctx context.Context, sub *models.Submission) error
	ListRecentByTutor(ctx context.Context, tutorID string, limit int) ([]models.Submission, error)
}

// Courses groups the tutor course handlers and their dependencies.
type Courses struct {
	renderer    *render.Renderer
	api         CourseAPI
	flashes     FlashStore
	gate        Gate
	submissions SubmissionLog
	metrics     *metrics.Metrics
}

// NewCourses creates the course handler group. m may be nil.
func NewCourses(renderer *render.Renderer, api CourseAPI, flashes FlashStore, gate Gate, submissions SubmissionLog, m *metrics.Metrics) *Courses {
	return &Courses{
		renderer:    renderer,
		api:         api,
		flashes:     flashes,
		gate:        gate,
		submissions: submissions,
		metrics:     m,
	}
}

// List renders the tutor's courses and recent submission attempts.
func (h *Courses) List(w http.ResponseWriter, r *http.Request) {
	tutor := middleware.TutorFromCtx(r.Context())
	if tutor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data := map[string]any{}

	courses, err := h.api.ListCourses(r.Context(), tutor.Token)
	if err != nil {
		slog.Error("list courses failed", "error", err, "tutor", tutor.ID)
		data["LoadError"] = courseapi.UserMessage(err, msgListFailed)
	}
	data["Courses"] = courses

	subs, err := h.submissions.ListRecentByTutor(r.Context(), tutor.ID, recentSubmissions)
	if err != nil {
		slog.Warn("list submissions failed", "error", err, "tutor", tutor.ID)
	}
	data["Submissions"] = subs

	h.renderer.Page(w, r, "courses_list", &render.PageData{
		Title:   "Kursus Saya",
		Data:    data,
		Flashes: h.popFlashes(r),
	})
}

// New renders the empty create form.
func (h *Courses) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, postedDraft{Raw: course.NewDraft(), PriceInput: "0"}, nil, h.popFlashes(r))
}

// Preview re-renders the counters, price label and preview card from the
// posted values. It never validates and never calls the course API.
func (h *Courses) Preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	p := parseDraft(r.PostForm)
	h.renderer.Partial(w, r, "course_new", "course_live", &render.PageData{
		Data: formData(p.Raw, "", nil),
	})
}

// Create validates the draft, calls the course API once and either
// redirects to the new course or re-renders the form with a notification.
func (h *Courses) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tutor := middleware.TutorFromCtx(ctx)
	if tutor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	p := parseDraft(r.PostForm)
	d := p.Draft
	if len(p.Errors) > 0 {
		for field := range p.Errors {
			h.metrics.ValidationFailed(field)
		}
		h.renderForm(w, r, p, p.Errors, nil)
		return
	}

	acquired, err := h.gate.Acquire(ctx, tutor.ID)
	if err != nil {
		msg := msgCreateFailed
		slog.Error("submit gate unavailable", "error", err, "tutor", tutor.ID)
		h.record(ctx, tutor, d, models.SubmissionFailed, nil, &msg, 0)
		h.metrics.Submission(string(models.SubmissionFailed))
		h.renderForm(w, r, p, nil, []session.Flash{{Type: session.FlashError, Message: msg}})
		return
	}
	if !acquired {
		msg := msgBusy
		h.record(ctx, tutor, d, models.SubmissionBusy, nil, &msg, 0)
		h.metrics.Submission(string(models.SubmissionBusy))
		h.renderForm(w, r, p, nil, []session.Flash{{Type: session.FlashWarning, Message: msg}})
		return
	}
	defer h.gate.Release(context.WithoutCancel(ctx), tutor.ID)

	start := time.Now()
	res, err := h.api.CreateCourse(ctx, tutor.Token, d)
	elapsed := time.Since(start)
	h.metrics.ObserveAPI("create", elapsed, err)

	if err != nil {
		msg := courseapi.UserMessage(err, msgCreateFailed)
		slog.Error("create course failed", "error", err, "tutor", tutor.ID, "duration", elapsed.String())
		h.record(ctx, tutor, d, models.SubmissionFailed, nil, &msg, elapsed)
		h.metrics.Submission(string(models.SubmissionFailed))
		h.renderForm(w, r, p, nil, []session.Flash{{Type: session.FlashError, Message: msg}})
		return
	}

	slog.Info("course created", "course_id", res.CourseID, "tutor", tutor.ID, "duration", elapsed.String())
	h.record(ctx, tutor, d, models.SubmissionCreated, &res.CourseID, nil, elapsed)
	h.metrics.Submission(string(models.SubmissionCreated))

	if err := h.flashes.AddFlash(ctx, w, r, session.Flash{Type: session.FlashSuccess, Message: msgCreated}); err != nil {
		slog.Warn("queue flash failed", "error", err, "tutor", tutor.ID)
	}

	redirect(w, r, "/tutor/courses/"+url.PathEscape(res.CourseID))
}

// Show renders the course detail page, the landing page after a create.
func (h *Courses) Show(w http.ResponseWriter, r *http.Request) {
	tutor := middleware.TutorFromCtx(r.Context())
	if tutor == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	flashes := h.popFlashes(r)

	data := map[string]any{"CourseID": id}
	c, err := h.api.GetCourse(r.Context(), tutor.Token, id)
	if err != nil {
		slog.Warn("get course failed", "error", err, "course_id", id)
		data["LoadError"] = courseapi.UserMessage(err, msgDetailFailed)
	}
	data["Course"] = c

	title := "Detail Kursus"
	if c != nil {
		title = c.Title
	}
	h.renderer.Page(w, r, "course_detail", &render.PageData{
		Title:   title,
		Data:    data,
		Flashes: flashes,
	})
}

// renderForm shows the form with the values as the tutor typed them.
func (h *Courses) renderForm(w http.ResponseWriter, r *http.Request, p postedDraft, errs course.FieldErrors, flashes []session.Flash) {
	h.renderer.Page(w, r, "course_new", &render.PageData{
		Title:   "Buat Kursus Baru",
		Data:    formData(p.Raw, p.PriceInput, errs),
		Flashes: flashes,
	})
}

func (h *Courses) popFlashes(r *http.Request) []session.Flash {
	flashes, err := h.flashes.PopFlashes(r.Context(), r)
	if err != nil {
		slog.Warn("pop flashes failed", "error", err)
		return nil
	}
	return flashes
}

// record writes the attempt to the submission log. Failures are logged and
// never change the response.
func (h *Courses) record(ctx context.Context, tutor *middleware.Tutor, d course.Draft, status models.SubmissionStatus, courseID, errMsg *string, elapsed time.Duration) {
	sub := &models.Submission{
		TutorID:      tutor.ID,
		Title:        d.Title,
		Category:     string(d.Category),
		Price:        d.Price,
		Status:       status,
		CourseID:     courseID,
		ErrorMessage: errMsg,
		DurationMS:   int(elapsed.Milliseconds()),
	}
	if err := h.submissions.Record(context.WithoutCancel(ctx), sub); err != nil {
		slog.Warn("record submission failed", "error", err, "tutor", tutor.ID, "status", status)
	}
}

func formData(d course.Draft, priceInput string, errs course.FieldErrors) map[string]any {
	return map[string]any{
		"Draft":      d,
		"PriceInput": priceInput,
		"Errors":     errs,
		"View":       course.NewView(d),
		"Categories": course.Categories(),
	}
}

// redirect navigates to target: HX-Redirect for HTMX requests, 303 otherwise.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if render.IsHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
