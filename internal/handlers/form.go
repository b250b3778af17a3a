// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"tutorhub/internal/course"
)

// Price input messages. Range and sign rules live in the course schema.
const (
	msgPriceNotNumber  = "Harga harus berupa angka"
	msgPriceNotInteger = "Harga harus berupa bilangan bulat"
	msgPriceTooLarge   = "Harga terlalu besar"
)

// postedDraft is one submission of the course form. Draft is trimmed and
// NFC-normalised for the schema and the course API; Raw keeps the values
// exactly as typed so the counters and the re-rendered inputs match the
// browser.
type postedDraft struct {
	Raw        course.Draft
	Draft      course.Draft
	PriceInput string
	Errors     course.FieldErrors
}

// parseDraft reads posted form values. Errors is nil when the draft may be
// submitted.
func parseDraft(form url.Values) postedDraft {
	p := postedDraft{
		Raw: course.Draft{
			Title:       form.Get("title"),
			Category:    course.Category(strings.TrimSpace(form.Get("category"))),
			Description: form.Get("description"),
		},
		PriceInput: strings.TrimSpace(form.Get("price")),
	}

	price, priceErr := parsePrice(p.PriceInput)
	p.Raw.Price = price
	p.Draft = p.Raw.Normalized()

	p.Errors = course.Validate(p.Draft)
	if priceErr != "" {
		if p.Errors == nil {
			p.Errors = course.FieldErrors{}
		}
		p.Errors["price"] = priceErr
	}
	return p
}

// parsePrice accepts whole rupiah amounts. Integral decimals such as
// "1000.0" are accepted; anything else yields a message and price 0.
// Negative amounts of any magnitude are left to the schema's sign rule.
func parsePrice(raw string) (int64, string) {
	if raw == "" {
		return 0, msgPriceNotNumber
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, ""
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, msgPriceNotNumber
	}
	if f != math.Trunc(f) {
		return 0, msgPriceNotInteger
	}
	if f < 0 {
		if f <= math.MinInt64 {
			return math.MinInt64, ""
		}
		return int64(f), ""
	}
	if f >= math.MaxInt64 {
		return 0, msgPriceTooLarge
	}
	return int64(f), ""
}
