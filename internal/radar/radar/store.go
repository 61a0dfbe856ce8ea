// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package radar

import (
	"context"

	"github.com/mc-aweaver/techradar-1/internal/radar/topic"
)

// Repository is the persistence contract for radars.
type Repository interface {
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Radar, int, error)
	FindByUUID(context context.Context, uuid string) (*Radar, error)
	Create(context context.Context, radar *Radar) error
	Update(context context.Context, radar *Radar) error
	Delete(context context.Context, id string) error
}

// BlipRepository is the persistence contract for blips. Reads join the topic
// so TopicName and TopicSlug are filled in.
type BlipRepository interface {
	ListByRadar(context context.Context, radarID string) ([]*Blip, error)
	FindByID(context context.Context, radarID, blipID string) (*Blip, error)
	Create(context context.Context, blip *Blip) error
	Update(context context.Context, blip *Blip) error
	Delete(context context.Context, radarID, blipID string) error
}

// TopicResolver looks a topic up by current or historical slug.
type TopicResolver interface {
	Get(context context.Context, slug string) (*topic.Topic, error)
}
