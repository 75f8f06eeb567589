// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils normalizes free text for matching.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var germanTransliterations = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss", "ẞ", "ss",
)

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

// GermanFolding lowercases s and spells umlauts and ß the way German ASCII
// text does (ü -> ue, ß -> ss) before removing any remaining accents.
func GermanFolding(s string) string {
	lower := norm.NFC.String(strings.TrimSpace(strings.ToLower(s)))

	return LowerASCIIFolding(germanTransliterations.Replace(lower))
}

// ContainsFold reports whether needle occurs in haystack ignoring case and
// accents. "Muller", "Müller" and "Mueller" all match "Müller".
func ContainsFold(haystack, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}

	if strings.Contains(LowerASCIIFolding(haystack), LowerASCIIFolding(needle)) {
		return true
	}

	return strings.Contains(GermanFolding(haystack), GermanFolding(needle))
}
