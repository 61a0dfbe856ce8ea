// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package radar manages radars and the blips placed on them.

A radar belongs to one user and is shared through an opaque uuid token. Each
blip places a topic on the radar in one quadrant and one ring; a topic can sit
on a given radar at most once.
*/
package radar

import (
	"time"
)

// # Grid

const (
	QuadrantTechniques = "techniques"
	QuadrantTools      = "tools"
	QuadrantPlatforms  = "platforms"
	QuadrantLanguages  = "languages-and-frameworks"
)

// Quadrants lists the quadrants in display order.
var Quadrants = []string{QuadrantTechniques, QuadrantTools, QuadrantPlatforms, QuadrantLanguages}

const (
	RingAdopt  = "adopt"
	RingTrial  = "trial"
	RingAssess = "assess"
	RingHold   = "hold"
)

// Rings lists the rings from the centre outwards.
var Rings = []string{RingAdopt, RingTrial, RingAssess, RingHold}

// # Domain Entities

// Radar is a named, owned collection of blips.
type Radar struct {
	ID              string           `json:"id"`
	UUID            string           `json:"uuid"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	DescriptionHTML string           `json:"description_html"`
	OwnerID         string           `json:"owner_id"`
	Quadrants       []*QuadrantBlips `json:"quadrants,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Blip places a topic on a radar.
type Blip struct {
	ID        string    `json:"id"`
	RadarID   string    `json:"-"`
	TopicID   string    `json:"topic_id"`
	TopicName string    `json:"topic_name"`
	TopicSlug string    `json:"topic_slug"`
	Quadrant  string    `json:"quadrant"`
	Ring      string    `json:"ring"`
	Notes     string    `json:"notes"`
	NotesHTML string    `json:"notes_html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuadrantBlips is one quadrant of a rendered radar.
type QuadrantBlips struct {
	Quadrant string  `json:"quadrant"`
	Blips    []*Blip `json:"blips"`
}

// # Inputs

type CreateInput struct {
	Name        string
	Description string
}

type UpdateInput struct {
	Name        *string
	Description *string
}

// AddBlipInput names the topic by slug, current or historical.
type AddBlipInput struct {
	Topic    string
	Quadrant string
	Ring     string
	Notes    string
}

type UpdateBlipInput struct {
	Quadrant *string
	Ring     *string
	Notes    *string
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldTopic       = "topic"
	FieldQuadrant    = "quadrant"
	FieldRing        = "ring"
	FieldNotes       = "notes"
)
