// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package topic manages the technologies and techniques that can be placed on a
radar.

# Slugs

A topic's slug is derived from its name. Collisions get a numeric suffix
("kafka", "kafka-2", ...), and every slug a topic has carried is recorded in
the slug history so links survive a rename.

# Letter Index

[GroupByLetter] buckets topics by the uppercased first rune of their name for
A-Z style listings. Groups keep the order in which their letter was first
seen; they are never re-sorted.
*/
package topic

import (
	"net/http"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
)

// SluggableType tags topic rows in the slug history.
const SluggableType = "Topic"

// # Domain Entities

// Topic is a technology, tool or technique that radars can reference.
type Topic struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	CreatorID           *string   `json:"creator_id,omitempty"`
	Username            *string   `json:"username,omitempty"`
	TwitterUsername     *string   `json:"twitter_username,omitempty"`
	TwitterProfileImage *string   `json:"twitter_profile_image,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Filter narrows a topic listing.
type Filter struct {
	CreatorID string // exact creator match
	Query     string // case-insensitive name prefix
}

// CreateInput carries the fields a caller may set on a new topic.
type CreateInput struct {
	Name                string
	Username            *string
	TwitterUsername     *string
	TwitterProfileImage *string
}

// UpdateInput carries a partial topic update. Nil fields are left untouched.
type UpdateInput struct {
	Name                *string
	TwitterUsername     *string
	TwitterProfileImage *string
}

// Global field names for validation
const (
	FieldName                = "name"
	FieldUsername            = "username"
	FieldTwitterUsername     = "twitter_username"
	FieldTwitterProfileImage = "twitter_profile_image"
)

// # Errors

// ErrInvalidTopic is returned when a topic cannot be indexed, e.g. it has an
// empty name.
var ErrInvalidTopic = apperr.New("INVALID_TOPIC", http.StatusUnprocessableEntity, "Topic has no name to index")
