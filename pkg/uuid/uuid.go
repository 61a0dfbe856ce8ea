// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package uuid generates the identifiers used across the radar.

Two flavours are needed:

  - [New]: UUIDv7 primary keys. Time-ordered, so B-tree inserts stay local.
  - [Token]: random UUIDv4 values for externally shared radar links, where
    a creation timestamp must not leak.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Token generates a random UUIDv4 string.
func Token() string {
	return uuid.NewString()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
