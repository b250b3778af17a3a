// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package course

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to the message shown under it.
type FieldErrors map[string]string

// Has reports whether the named field failed validation.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Get returns the message for a field, or "" when it is valid.
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// fieldMessages holds the user-facing message for each field/rule pair.
var fieldMessages = map[string]map[string]string{
	"title": {
		"required": "Judul kursus wajib diisi",
		"min":      fmt.Sprintf("Judul kursus minimal %d karakter", MinTitleLen),
		"max":      fmt.Sprintf("Judul kursus maksimal %d karakter", MaxTitleLen),
	},
	"category": {
		"required":        "Kategori wajib dipilih",
		"course_category": "Kategori tidak valid",
	},
	"description": {
		"required": "Deskripsi kursus wajib diisi",
		"min":      fmt.Sprintf("Deskripsi kursus minimal %d karakter", MinDescriptionLen),
		"max":      fmt.Sprintf("Deskripsi kursus maksimal %d karakter", MaxDescriptionLen),
	},
	"price": {
		"gte": "Harga tidak boleh negatif",
	},
}

// Schema wraps a validator configured for Draft.
type Schema struct {
	v *validator.Validate
}

// NewSchema builds the draft validator: field names are reported by their
// form tag and the course_category rule checks enum membership.
func NewSchema() *Schema {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("course_category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})

	return &Schema{v: v}
}

// Validate checks a draft and returns one message per failing field, or nil
// when the draft may be submitted. The draft is validated as given; callers
// normalise it first.
func (s *Schema) Validate(d Draft) FieldErrors {
	err := s.v.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_form": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if out.Has(field) {
			continue
		}
		out[field] = fieldMessage(field, fe.Tag())
	}
	return out
}

// defaultSchema backs the package-level Validate helper.
var defaultSchema = NewSchema()

// Validate normalises and checks a draft with the default schema.
func Validate(d Draft) FieldErrors {
	return defaultSchema.Validate(d.Normalized())
}

func fieldMessage(field, tag string) string {
	if msgs, ok := fieldMessages[field]; ok {
		if m, ok := msgs[tag]; ok {
			return m
		}
	}
	return "Nilai tidak valid"
}
