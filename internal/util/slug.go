// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides slug handling for store URLs.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength bounds slugs accepted in store URLs.
const MaxSlugLength = 128

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	validSlug       = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify converts s to a URL slug: accents are removed, letters lowercased,
// whitespace becomes a hyphen and every other character outside [a-z0-9-]
// is dropped. "Niño's Sari-Sari" becomes "ninos-sari-sari".
func Slugify(s string) string {
	// A transform.Transformer is stateful, so a chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.Join(strings.Fields(strings.ToLower(result)), "-")
	result = nonSlugChars.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is already in slug form.
func IsValidSlug(s string) bool {
	return len(s) <= MaxSlugLength && validSlug.MatchString(s)
}

// CanonicalSlug returns the slug form of s and whether it differs from s.
// An empty result means s cannot name a store.
func CanonicalSlug(s string) (string, bool) {
	canonical := Slugify(s)
	if len(canonical) > MaxSlugLength {
		return "", false
	}
	return canonical, canonical != s
}
