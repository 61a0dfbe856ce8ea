// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package pointer provides generic helpers for optional values.

PATCH payloads decode absent fields as nil pointers; these helpers keep the
merge code in services short.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback returns *p, or fallback when p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
