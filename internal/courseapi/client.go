// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package courseapi is the HTTP client for the platform's course service.
// Every call is a single request/response round trip authenticated with the
// tutor's bearer token; there is no retry or backoff.
package courseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tutorhub/internal/course"
)

// DefaultTimeout bounds a single course API call.
const DefaultTimeout = 15 * time.Second

// ErrMissingCourseID is returned when a create response has no course id.
var ErrMissingCourseID = errors.New("course api: response has no course id")

// Course is the course representation returned by the API.
type Course struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    course.Category `json:"category"`
	Price       int64           `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateResult is the outcome of a successful create call.
type CreateResult struct {
	CourseID string
}

// createRequest is the JSON body sent to POST /courses.
type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
}

// createResponse accepts both a bare and a "data"-enveloped course id.
type createResponse struct {
	CourseID string `json:"courseId"`
	Data     *struct {
		CourseID string `json:"courseId"`
		ID       string `json:"id"`
	} `json:"data"`
}

// Client talks to the course service.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// New creates a course API client. A zero timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer("tutorhub/internal/courseapi"),
	}
}

// CreateCourse sends a validated draft to the course service and returns
// the new course's id.
func (c *Client) CreateCourse(ctx context.Context, token string, d course.Draft) (*CreateResult, error) {
	ctx, span := c.tracer.Start(ctx, "courseapi.CreateCourse")
	defer span.End()

	payload, err := json.Marshal(createRequest{
		Title:       d.Title,
		Description: d.Description,
		Category:    string(d.Category),
		Price:       d.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("course api marshal: %w", err)
	}

	body, err := c.do(ctx, span, http.MethodPost, "/courses", token, payload)
	if err != nil {
		return nil, err
	}

	var resp createResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		span.SetStatus(codes.Error, "decode")
		return nil, fmt.Errorf("course api unmarshal: %w", err)
	}

	id := resp.CourseID
	if id == "" && resp.Data != nil {
		id = resp.Data.CourseID
		if id == "" {
			id = resp.Data.ID
		}
	}
	if id == "" {
		span.SetStatus(codes.Error, "missing course id")
		return nil, ErrMissingCourseID
	}

	span.SetAttributes(attribute.String("course.id", id))
	return &CreateResult{CourseID: id}, nil
}

// GetCourse fetches a single course by id.
func (c *Client) GetCourse(ctx context.Context, token, id string) (*Course, error) {
	ctx, span := c.tracer.Start(ctx, "courseapi.GetCourse")
	defer span.End()

	body, err := c.do(ctx, span, http.MethodGet, "/courses/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data *Course `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var crs Course
	if err := json.Unmarshal(body, &crs); err != nil {
		return nil, fmt.Errorf("course api unmarshal: %w", err)
	}
	return &crs, nil
}

// ListCourses returns the courses owned by the authenticated tutor.
func (c *Client) ListCourses(ctx context.Context, token string) ([]Course, error) {
	ctx, span := c.tracer.Start(ctx, "courseapi.ListCourses")
	defer span.End()

	body, err := c.do(ctx, span, http.MethodGet, "/tutor/courses", token, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []Course `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	var items []Course
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("course api unmarshal: %w", err)
	}
	return items, nil
}

// do performs one HTTP round trip and returns the body of a 2xx response.
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, span trace.Span, method, path, token string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("course api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", req.URL.String()),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, fmt.Errorf("course api http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("course api read body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body),
			Body:       body,
		}
		span.SetStatus(codes.Error, apiErr.Error())
		return nil, apiErr
	}

	return body, nil
}
