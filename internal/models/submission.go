// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the outcome of a single create-course attempt.
type SubmissionStatus string

const (
	SubmissionCreated SubmissionStatus = "created"
	SubmissionFailed  SubmissionStatus = "failed"
	SubmissionBusy    SubmissionStatus = "busy" // rejected by the in-flight gate
)

// Submission is one row of the course submission log.
type Submission struct {
	ID           uuid.UUID        `json:"id"`
	TutorID      string           `json:"tutor_id"`
	Title        string           `json:"title"`
	Category     string           `json:"category"`
	Price        int64            `json:"price"`
	Status       SubmissionStatus `json:"status"`
	CourseID     *string          `json:"course_id,omitempty"`     // set when Status is created
	ErrorMessage *string          `json:"error_message,omitempty"` // set when Status is failed or busy
	DurationMS   int              `json:"duration_ms"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Succeeded reports whether the attempt produced a course.
func (s *Submission) Succeeded() bool {
	return s.Status == SubmissionCreated && s.CourseID != nil
}
