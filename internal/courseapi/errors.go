// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package courseapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError carries the status and body of a non-2xx course API response.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string // "message" or "error" field of a JSON body, if any
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("course api: %s %s status=%d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("course api: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

// UserMessage returns the message the API gave for err, or fallback when the
// error carries none (network failures, malformed responses).
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorBody covers the error envelopes the course API is known to send.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// extractMessage pulls a human-readable message out of an error body.
func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if m := strings.TrimSpace(eb.Message); m != "" {
		return m
	}
	return strings.TrimSpace(eb.Error)
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
