// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for tutorhub entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tutorhub/internal/models"
)

// SubmissionStore records create-course attempts.
type SubmissionStore struct {
	db *sql.DB
}

// NewSubmissionStore creates a new SubmissionStore with the given database connection.
func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// Record inserts a submission. ID and CreatedAt are filled in when zero.
func (s *SubmissionStore) Record(ctx context.Context, sub *models.Submission) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO course_submissions
			(id, tutor_id, title, category, price, status, course_id, error_message, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, sub.ID, sub.TutorID, sub.Title, sub.Category, sub.Price, string(sub.Status),
		sub.CourseID, sub.ErrorMessage, sub.DurationMS,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("record submission: %w", err)
	}
	return nil
}

// ListRecentByTutor returns up to limit submissions of a tutor, newest first.
func (s *SubmissionStore) ListRecentByTutor(ctx context.Context, tutorID string, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tutor_id, title, category, price, status, course_id, error_message, duration_ms, created_at
		FROM course_submissions
		WHERE tutor_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, tutorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		var status string
		if err := rows.Scan(
			&sub.ID, &sub.TutorID, &sub.Title, &sub.Category, &sub.Price, &status,
			&sub.CourseID, &sub.ErrorMessage, &sub.DurationMS, &sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.Status = models.SubmissionStatus(status)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}
