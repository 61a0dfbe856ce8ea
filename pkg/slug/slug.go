// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Topic slugs are derived from the topic name ("Apache Kafka" → "apache-kafka").
// Names in non-Latin scripts are transliterated first, so "Ruby on Rails" and
// "Руби" both produce usable ASCII slugs.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Normalizes to NFD and drops combining marks (é → e).
//  2. Transliterates what is left to ASCII (ß → ss, Ж → Zh).
//  3. Lowercases and replaces every other character with a hyphen.
//  4. Collapses repeated hyphens and trims them from both ends.
//
// The result may be empty when s has no letters or digits at all.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(unidecode.Unidecode(result))

	result = strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// WithSuffix returns the n-th candidate for base: base itself for n <= 1,
// otherwise base-n.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
