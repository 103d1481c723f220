// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives ASCII URL slugs from display names.
//
// Team and brand slugs appear in dashboard URLs ("/acme/templates?brand=summer-sale"),
// so they must be lowercase ASCII with single hyphens.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
//  1. NFD-normalise and drop combining marks ("Café" -> "Cafe").
//  2. Lowercase.
//  3. Collapse every run of other characters into one hyphen and trim the ends.
func From(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
