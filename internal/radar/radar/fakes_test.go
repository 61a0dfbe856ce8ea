// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package radar_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/radar/radar"
	"github.com/mc-aweaver/techradar-1/internal/radar/topic"
)

type fakeRadars struct {
	mu     sync.Mutex
	byUUID map[string]*radar.Radar
}

func (f *fakeRadars) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*radar.Radar, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var owned []*radar.Radar
	for _, r := range f.byUUID {
		if r.OwnerID == ownerID {
			clone := *r
			owned = append(owned, &clone)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Name < owned[j].Name })

	total := len(owned)
	offset = min(offset, total)
	return owned[offset:min(offset+limit, total)], total, nil
}

func (f *fakeRadars) FindByUUID(_ context.Context, uuid string) (*radar.Radar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.byUUID[uuid]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, apperr.NotFound("Radar")
}

func (f *fakeRadars) Create(_ context.Context, r *radar.Radar) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *r
	f.byUUID[r.UUID] = &clone
	return nil
}

func (f *fakeRadars) Update(_ context.Context, r *radar.Radar) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *r
	clone.Quadrants = nil
	f.byUUID[r.UUID] = &clone
	return nil
}

func (f *fakeRadars) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uuid, r := range f.byUUID {
		if r.ID == id {
			delete(f.byUUID, uuid)
			return nil
		}
	}
	return apperr.NotFound("Radar")
}

type fakeBlips struct {
	mu    sync.Mutex
	blips []*radar.Blip
}

func (f *fakeBlips) ListByRadar(_ context.Context, radarID string) ([]*radar.Blip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*radar.Blip{}
	for _, b := range f.blips {
		if b.RadarID == radarID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBlips) FindByID(_ context.Context, radarID, blipID string) (*radar.Blip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blips {
		if b.ID == blipID && b.RadarID == radarID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Blip")
}

func (f *fakeBlips) Create(_ context.Context, blip *radar.Blip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.blips {
		if b.RadarID == blip.RadarID && b.TopicID == blip.TopicID {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: schema.BlipRadarTopicKey}
		}
	}
	clone := *blip
	f.blips = append(f.blips, &clone)
	return nil
}

func (f *fakeBlips) Update(_ context.Context, blip *radar.Blip) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.blips {
		if b.ID == blip.ID && b.RadarID == blip.RadarID {
			clone := *blip
			f.blips[i] = &clone
			return nil
		}
	}
	return apperr.NotFound("Blip")
}

func (f *fakeBlips) Delete(_ context.Context, radarID, blipID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.blips {
		if b.ID == blipID && b.RadarID == radarID {
			f.blips = append(f.blips[:i], f.blips[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Blip")
}

type fakeTopics map[string]*topic.Topic

func (f fakeTopics) Get(_ context.Context, slug string) (*topic.Topic, error) {
	if t, ok := f[slug]; ok {
		return t, nil
	}
	return nil, apperr.NotFound("Topic")
}

type fixture struct {
	radars  *fakeRadars
	blips   *fakeBlips
	service *radar.Service
}

func newFixture() *fixture {
	f := &fixture{
		radars: &fakeRadars{byUUID: map[string]*radar.Radar{}},
		blips:  &fakeBlips{},
	}
	topics := fakeTopics{
		"go":         {ID: "topic-go", Name: "Go", Slug: "go"},
		"kubernetes": {ID: "topic-k8s", Name: "Kubernetes", Slug: "kubernetes"},
		"tdd":        {ID: "topic-tdd", Name: "TDD", Slug: "tdd"},
	}
	f.service = radar.NewService(f.radars, f.blips, topics, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}
