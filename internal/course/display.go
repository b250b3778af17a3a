// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package course

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Counter colour classes, in increasing urgency.
const (
	ColorNormal  = "text-gray-500"
	ColorWarning = "text-yellow-500"
	ColorDanger  = "text-red-500"
)

// FreeLabel is shown instead of a currency amount when the price is zero.
const FreeLabel = "Gratis"

// idrPrinter formats numbers with Indonesian digit grouping (1.500.000).
var idrPrinter = message.NewPrinter(language.Indonesian)

// CharacterCount renders the "current/max" counter under a text field.
func CharacterCount(s string, max int) string {
	return fmt.Sprintf("%d/%d", utf8.RuneCountInString(s), max)
}

// CharacterColor picks the counter colour: danger above 90% of max,
// warning above 70%, normal otherwise.
func CharacterColor(s string, max int) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n*10 > max*9:
		return ColorDanger
	case n*10 > max*7:
		return ColorWarning
	default:
		return ColorNormal
	}
}

// FormatPrice renders a price in rupiah the way id-ID currency formatting
// does ("Rp 150.000", NBSP after the symbol), or FreeLabel for zero.
func FormatPrice(price int64) string {
	if price == 0 {
		return FreeLabel
	}
	if price < 0 {
		return "-Rp\u00a0" + idrPrinter.Sprintf("%d", -price)
	}
	return "Rp\u00a0" + idrPrinter.Sprintf("%d", price)
}
