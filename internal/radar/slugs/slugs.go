// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package slugs keeps the history of every slug a record has carried.

A row maps (slug, sluggable type, scope) to the owning record. The triple is
unique, so a slug handed out once is never reused by another record of the
same type, and renamed records keep resolving under their old slugs.
*/
package slugs

import (
	"context"
	"time"
)

// SlugRecord is one historical or current slug of a record.
type SlugRecord struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	SluggableID   string    `json:"sluggable_id"`
	SluggableType string    `json:"sluggable_type"`
	Scope         string    `json:"scope"`
	CreatedAt     time.Time `json:"created_at"`
}

// Repository is the persistence contract for slug history.
type Repository interface {

	/*
		Record stores a new slug for a record.

		Returns:
		  - error: a unique violation on slug_slug_type_scope_key when the
		    triple is already taken
	*/
	Record(context context.Context, record *SlugRecord) error

	// Exists reports whether the triple is already taken.
	Exists(context context.Context, slug, sluggableType, scope string) (bool, error)

	// Resolve returns the owning record ID, or apperr.NotFound.
	Resolve(context context.Context, slug, sluggableType, scope string) (string, error)

	// History lists every slug of a record, oldest first.
	History(context context.Context, sluggableID, sluggableType string) ([]*SlugRecord, error)

	// DeleteFor removes the history of a deleted record.
	DeleteFor(context context.Context, sluggableID, sluggableType string) error
}
