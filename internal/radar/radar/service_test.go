// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package radar_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/radar/radar"
	"github.com/mc-aweaver/techradar-1/pkg/pointer"
	"github.com/mc-aweaver/techradar-1/pkg/uuid"
)

const (
	owner    = "owner-1"
	stranger = "user-2"
)

func newRadar(t *testing.T, f *fixture) *radar.Radar {
	t.Helper()
	created, err := f.service.Create(context.Background(), owner, radar.CreateInput{
		Name:        "Platform Team 2026",
		Description: "What we **bet** on",
	})
	require.NoError(t, err)
	return created
}

func TestCreate_IssuesTokenAndRendersDescription(t *testing.T) {
	f := newFixture()
	created := newRadar(t, f)

	assert.True(t, uuid.Valid(created.UUID))
	assert.NotEqual(t, created.ID, created.UUID)
	assert.Equal(t, owner, created.OwnerID)
	assert.Contains(t, created.DescriptionHTML, "<strong>bet</strong>")
}

func TestCreate_RequiresName(t *testing.T) {
	_, err := newFixture().service.Create(context.Background(), owner, radar.CreateInput{Name: "  "})

	require.True(t, apperr.IsValidation(err))
	assert.Equal(t, radar.FieldName, apperr.As(err).Details[0].Field)
}

func TestGet_IsPublicAndGroupsBlips(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created := newRadar(t, f)

	_, err := f.service.AddBlip(ctx, owner, created.UUID, radar.AddBlipInput{Topic: "go", Quadrant: radar.QuadrantLanguages, Ring: radar.RingAdopt})
	require.NoError(t, err)
	_, err = f.service.AddBlip(ctx, owner, created.UUID, radar.AddBlipInput{Topic: "tdd", Quadrant: radar.QuadrantTechniques, Ring: radar.RingTrial, Notes: "_pair_ on it"})
	require.NoError(t, err)

	loaded, err := f.service.Get(ctx, created.UUID)
	require.NoError(t, err)

	require.Len(t, loaded.Quadrants, 4)
	assert.Equal(t, "TDD", loaded.Quadrants[0].Blips[0].TopicName)
	assert.Contains(t, loaded.Quadrants[0].Blips[0].NotesHTML, "<em>pair</em>")
	assert.Equal(t, "Go", loaded.Quadrants[3].Blips[0].TopicName)
}

func TestGet_UnknownToken(t *testing.T) {
	_, err := newFixture().service.Get(context.Background(), "nope")
	assert.True(t, apperr.IsNotFound(err))
}

func TestMutations_AreOwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created := newRadar(t, f)

	_, err := f.service.Update(ctx, stranger, created.UUID, radar.UpdateInput{Name: pointer.To("Mine now")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = f.service.AddBlip(ctx, stranger, created.UUID, radar.AddBlipInput{Topic: "go", Quadrant: radar.QuadrantTools, Ring: radar.RingHold})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	err = f.service.Delete(ctx, stranger, created.UUID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	require.NoError(t, f.service.Delete(ctx, owner, created.UUID))
	_, err = f.service.Get(ctx, created.UUID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdate_PartialFields(t *testing.T) {
	f := newFixture()
	created := newRadar(t, f)

	updated, err := f.service.Update(context.Background(), owner, created.UUID, radar.UpdateInput{Description: pointer.To("# Q3")})
	require.NoError(t, err)

	assert.Equal(t, created.Name, updated.Name)
	assert.Contains(t, updated.DescriptionHTML, "<h1")
}

func TestAddBlip_Validation(t *testing.T) {
	f := newFixture()
	created := newRadar(t, f)

	tests := []struct {
		name   string
		input  radar.AddBlipInput
		fields []string
	}{
		{"off_grid", radar.AddBlipInput{Topic: "go", Quadrant: "databases", Ring: "maybe"}, []string{radar.FieldQuadrant, radar.FieldRing}},
		{"missing_everything", radar.AddBlipInput{}, []string{radar.FieldTopic, radar.FieldQuadrant, radar.FieldRing}},
		{"unknown_topic", radar.AddBlipInput{Topic: "cobol", Quadrant: radar.QuadrantLanguages, Ring: radar.RingHold}, []string{radar.FieldTopic}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.AddBlip(context.Background(), owner, created.UUID, tt.input)
			require.True(t, apperr.IsValidation(err), "got %v", err)

			var fields []string
			for _, detail := range apperr.As(err).Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestAddBlip_TopicOncePerRadar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created := newRadar(t, f)

	_, err := f.service.AddBlip(ctx, owner, created.UUID, radar.AddBlipInput{Topic: "kubernetes", Quadrant: radar.QuadrantPlatforms, Ring: radar.RingAdopt})
	require.NoError(t, err)

	_, err = f.service.AddBlip(ctx, owner, created.UUID, radar.AddBlipInput{Topic: "kubernetes", Quadrant: radar.QuadrantTools, Ring: radar.RingHold})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestUpdateAndRemoveBlip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created := newRadar(t, f)

	blip, err := f.service.AddBlip(ctx, owner, created.UUID, radar.AddBlipInput{Topic: "go", Quadrant: radar.QuadrantLanguages, Ring: radar.RingTrial})
	require.NoError(t, err)

	moved, err := f.service.UpdateBlip(ctx, owner, created.UUID, blip.ID, radar.UpdateBlipInput{Ring: pointer.To(radar.RingAdopt)})
	require.NoError(t, err)
	assert.Equal(t, radar.RingAdopt, moved.Ring)
	assert.Equal(t, radar.QuadrantLanguages, moved.Quadrant)

	_, err = f.service.UpdateBlip(ctx, owner, created.UUID, blip.ID, radar.UpdateBlipInput{Quadrant: pointer.To("nowhere")})
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, f.service.RemoveBlip(ctx, owner, created.UUID, blip.ID))
	err = f.service.RemoveBlip(ctx, owner, created.UUID, blip.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListByOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	newRadar(t, f)
	_, err := f.service.Create(ctx, stranger, radar.CreateInput{Name: "Someone else's"})
	require.NoError(t, err)

	radars, total, err := f.service.ListByOwner(ctx, owner, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, radars, 1)
	assert.NotEmpty(t, radars[0].DescriptionHTML)
}
