// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package course

// Preview placeholders used while a field is still empty.
const (
	previewTitlePlaceholder       = "Judul Kursus"
	previewDescriptionPlaceholder = "Deskripsi kursus akan muncul di sini..."
	previewCategoryPlaceholder    = "Kategori"
)

// Preview is the live course card rendered under the form.
type Preview struct {
	Visible       bool
	Title         string
	Description   string
	CategoryLabel string
	Price         string
}

// View is the derived display state of the form for one draft.
type View struct {
	TitleCount       string
	TitleColor       string
	DescriptionCount string
	DescriptionColor string
	PriceLabel       string
	Preview          Preview
}

// NewPreview builds the preview card. It is only visible once the tutor has
// typed a title or a description.
func NewPreview(d Draft) Preview {
	p := Preview{
		Visible:       d.Title != "" || d.Description != "",
		Title:         d.Title,
		Description:   d.Description,
		CategoryLabel: previewCategoryPlaceholder,
		Price:         FormatPrice(d.Price),
	}
	if p.Title == "" {
		p.Title = previewTitlePlaceholder
	}
	if p.Description == "" {
		p.Description = previewDescriptionPlaceholder
	}
	if d.Category != "" {
		p.CategoryLabel = d.Category.Label()
	}
	return p
}

// NewView derives every counter, label and the preview from a draft.
func NewView(d Draft) View {
	return View{
		TitleCount:       CharacterCount(d.Title, MaxTitleLen),
		TitleColor:       CharacterColor(d.Title, MaxTitleLen),
		DescriptionCount: CharacterCount(d.Description, MaxDescriptionLen),
		DescriptionColor: CharacterColor(d.Description, MaxDescriptionLen),
		PriceLabel:       FormatPrice(d.Price),
		Preview:          NewPreview(d),
	}
}
