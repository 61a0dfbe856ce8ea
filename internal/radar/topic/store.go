// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package topic

import (
	"context"

	"github.com/mc-aweaver/techradar-1/internal/radar/slugs"
)

// Repository is the persistence contract for topics.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Topic, int, error)

	// ListAll returns every topic ordered by lower(name), for the letter index.
	ListAll(context context.Context) ([]*Topic, error)

	FindByID(context context.Context, id string) (*Topic, error)
	FindBySlug(context context.Context, slug string) (*Topic, error)
	Create(context context.Context, topic *Topic) error
	Update(context context.Context, topic *Topic) error
	Delete(context context.Context, id string) error

	// CountByCreator counts the topics a user has authored.
	CountByCreator(context context.Context, userID string) (int, error)
}

// SlugHistory is the subset of the slug store topics rely on.
type SlugHistory interface {
	Record(context context.Context, record *slugs.SlugRecord) error
	Exists(context context.Context, slug, sluggableType, scope string) (bool, error)
	Resolve(context context.Context, slug, sluggableType, scope string) (string, error)
	DeleteFor(context context.Context, sluggableID, sluggableType string) error
}

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	RunInTx(context context.Context, fn func(context context.Context) error) error
}
