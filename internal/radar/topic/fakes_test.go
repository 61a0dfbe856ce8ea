// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package topic_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/radar/slugs"
	"github.com/mc-aweaver/techradar-1/internal/radar/topic"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: constraint}
}

// # Topics

type fakeTopics struct {
	mu   sync.Mutex
	byID map[string]*topic.Topic

	// stolen slugs fail Create once with a unique violation, as if another
	// request inserted them first.
	stolen map[string]bool
}

func newFakeTopics() *fakeTopics {
	return &fakeTopics{byID: map[string]*topic.Topic{}, stolen: map[string]bool{}}
}

func (f *fakeTopics) all() []*topic.Topic {
	out := make([]*topic.Topic, 0, len(f.byID))
	for _, t := range f.byID {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out
}

func (f *fakeTopics) List(_ context.Context, filter topic.Filter, limit, offset int) ([]*topic.Topic, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*topic.Topic
	for _, t := range f.all() {
		if filter.CreatorID != "" && (t.CreatorID == nil || *t.CreatorID != filter.CreatorID) {
			continue
		}
		if filter.Query != "" && !strings.HasPrefix(strings.ToLower(t.Name), strings.ToLower(filter.Query)) {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (f *fakeTopics) ListAll(_ context.Context) ([]*topic.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.all(), nil
}

func (f *fakeTopics) FindByID(_ context.Context, id string) (*topic.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.byID[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, apperr.NotFound("Topic")
}

func (f *fakeTopics) FindBySlug(_ context.Context, slug string) (*topic.Topic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.byID {
		if t.Slug == slug {
			clone := *t
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Topic")
}

func (f *fakeTopics) slugTaken(slug, exceptID string) bool {
	for _, t := range f.byID {
		if t.Slug == slug && t.ID != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeTopics) Create(_ context.Context, t *topic.Topic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stolen[t.Slug] {
		delete(f.stolen, t.Slug)
		return uniqueViolation(schema.TopicSlugKey)
	}
	if f.slugTaken(t.Slug, t.ID) {
		return uniqueViolation(schema.TopicSlugKey)
	}
	clone := *t
	f.byID[t.ID] = &clone
	return nil
}

func (f *fakeTopics) Update(_ context.Context, t *topic.Topic) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[t.ID]; !ok {
		return apperr.NotFound("Topic")
	}
	if f.slugTaken(t.Slug, t.ID) {
		return uniqueViolation(schema.TopicSlugKey)
	}
	clone := *t
	f.byID[t.ID] = &clone
	return nil
}

func (f *fakeTopics) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return apperr.NotFound("Topic")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTopics) CountByCreator(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, t := range f.byID {
		if t.CreatorID != nil && *t.CreatorID == userID {
			count++
		}
	}
	return count, nil
}

// # Slug History

type fakeSlugs struct {
	mu      sync.Mutex
	records []*slugs.SlugRecord
}

func (f *fakeSlugs) find(slug, sluggableType, scope string) *slugs.SlugRecord {
	for _, record := range f.records {
		if record.Slug == slug && record.SluggableType == sluggableType && record.Scope == scope {
			return record
		}
	}
	return nil
}

func (f *fakeSlugs) Record(_ context.Context, record *slugs.SlugRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.find(record.Slug, record.SluggableType, record.Scope) != nil {
		return uniqueViolation(schema.SlugTripleKey)
	}
	clone := *record
	f.records = append(f.records, &clone)
	return nil
}

func (f *fakeSlugs) Exists(_ context.Context, slug, sluggableType, scope string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(slug, sluggableType, scope) != nil, nil
}

func (f *fakeSlugs) Resolve(_ context.Context, slug, sluggableType, scope string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record := f.find(slug, sluggableType, scope); record != nil {
		return record.SluggableID, nil
	}
	return "", apperr.NotFound(sluggableType)
}

func (f *fakeSlugs) DeleteFor(_ context.Context, sluggableID, sluggableType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	for _, record := range f.records {
		if record.SluggableID != sluggableID || record.SluggableType != sluggableType {
			kept = append(kept, record)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeSlugs) slugsOf(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, record := range f.records {
		if record.SluggableID == id {
			out = append(out, record.Slug)
		}
	}
	return out
}

// # Wiring

type inlineTx struct{}

func (inlineTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	topics  *fakeTopics
	slugs   *fakeSlugs
	service *topic.Service
}

func newFixture() *fixture {
	f := &fixture{topics: newFakeTopics(), slugs: &fakeSlugs{}}
	f.service = topic.NewService(f.topics, f.slugs, inlineTx{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}
