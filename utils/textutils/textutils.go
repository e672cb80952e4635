// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils holds the small text helpers used by reports and dataset
// checks.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var printer = message.NewPrinter(language.English)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// FoldKey returns a comparison key for names: folded, with internal runs of
// whitespace collapsed to a single space.
func FoldKey(s string) string {
	return strings.Join(strings.Fields(LowerASCIIFolding(s)), " ")
}

// FormatInt formats an integer with thousands separators.
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent formats part/total as a percentage with one decimal. A zero
// total yields "0.0%".
func FormatPercent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}

	return printer.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
