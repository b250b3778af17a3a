// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package course

// Category is one of the fixed course categories a tutor can pick.
type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryDesign      Category = "design"
	CategoryBusiness    Category = "business"
	CategoryMarketing   Category = "marketing"
	CategoryLanguage    Category = "language"
	CategoryMathematics Category = "mathematics"
	CategoryScience     Category = "science"
	CategoryMusic       Category = "music"
	CategoryPhotography Category = "photography"
	CategoryOther       Category = "other"
)

// CategoryOption pairs a category value with its display label.
// Used to build the <select> on the course form.
type CategoryOption struct {
	Value Category
	Label string
}

// categoryOptions is the canonical, ordered category list.
var categoryOptions = []CategoryOption{
	{CategoryProgramming, "Pemrograman"},
	{CategoryDesign, "Desain"},
	{CategoryBusiness, "Bisnis"},
	{CategoryMarketing, "Pemasaran"},
	{CategoryLanguage, "Bahasa"},
	{CategoryMathematics, "Matematika"},
	{CategoryScience, "Sains"},
	{CategoryMusic, "Musik"},
	{CategoryPhotography, "Fotografi"},
	{CategoryOther, "Lainnya"},
}

// Categories returns every category option in display order.
func Categories() []CategoryOption {
	out := make([]CategoryOption, len(categoryOptions))
	copy(out, categoryOptions)
	return out
}

// Valid reports whether c belongs to the fixed category set.
func (c Category) Valid() bool {
	for _, opt := range categoryOptions {
		if opt.Value == c {
			return true
		}
	}
	return false
}

// Label returns the display label, or the raw value for unknown categories.
func (c Category) Label() string {
	for _, opt := range categoryOptions {
		if opt.Value == c {
			return opt.Label
		}
	}
	return string(c)
}
