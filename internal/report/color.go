// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package report

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Shared color printers for report sections.
var (
	colorCyan  = color.New(color.FgCyan)
	colorFaint = color.New(color.Faint)
	colorBold  = color.New(color.Bold)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorCount dims zero counts so populated categories stand out.
func ColorCount(val string) string {
	if val == "0" {
		return colorFaint.Sprint(val)
	}
	return val
}

// ColorBar renders a bar in the accent color.
func ColorBar(val string) string {
	return colorCyan.Sprint(val)
}

// Bar draws value as a horizontal bar scaled against maxValue.
func Bar(value, maxValue int64, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(value * int64(width) / maxValue)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// underline returns a rule as wide as title.
func underline(title string, r rune) string {
	return strings.Repeat(string(r), utf8.RuneCountInString(title))
}
