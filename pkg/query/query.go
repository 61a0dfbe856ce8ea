// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Package query parses list-style URL query parameters.
package query

import (
	"slices"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Allowed splits val like [StringSlice] and keeps only members of allowed.
// Duplicates are dropped.
func Allowed(val string, allowed ...string) []string {
	var res []string
	for _, v := range StringSlice(val) {
		v = strings.ToLower(v)
		if slices.Contains(allowed, v) && !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}
