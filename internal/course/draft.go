// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package course holds the course-creation draft, the validation schema it
// must satisfy before submission, and the pure helpers that derive the
// form's display state (character counters, price label, live preview).
package course

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field limits shared by the schema, the counters and the form inputs.
const (
	MinTitleLen       = 5
	MaxTitleLen       = 255
	MinDescriptionLen = 20
	MaxDescriptionLen = 1000
)

// Draft is the in-progress, unsaved course a tutor is filling in.
// Form tags match the HTML input names; JSON tags match the course API.
type Draft struct {
	Title       string   `form:"title" json:"title" validate:"required,min=5,max=255"`
	Category    Category `form:"category" json:"category" validate:"required,course_category"`
	Description string   `form:"description" json:"description" validate:"required,min=20,max=1000"`
	Price       int64    `form:"price" json:"price" validate:"gte=0"`
}

// NewDraft returns the empty draft shown when the form first loads.
func NewDraft() Draft {
	return Draft{Price: 0}
}

// Normalized returns a copy with text fields trimmed and NFC-normalised,
// so that length checks count what the user actually typed.
func (d Draft) Normalized() Draft {
	d.Title = normalizeText(d.Title)
	d.Description = normalizeText(d.Description)
	d.Category = Category(strings.TrimSpace(string(d.Category)))
	return d
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
