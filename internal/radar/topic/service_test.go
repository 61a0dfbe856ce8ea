// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package topic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
	"github.com/mc-aweaver/techradar-1/internal/radar/topic"
	"github.com/mc-aweaver/techradar-1/pkg/pointer"
)

var (
	creator = &sec.AuthClaims{UserID: "user-1", Role: string(sec.RoleMember)}
	other   = &sec.AuthClaims{UserID: "user-2", Role: string(sec.RoleMember)}
	admin   = &sec.AuthClaims{UserID: "user-9", Role: string(sec.RoleAdmin)}
)

func TestCreate_DerivesSlugAndRecordsIt(t *testing.T) {
	f := newFixture()

	created, err := f.service.Create(context.Background(), creator.UserID, topic.CreateInput{Name: "  Apache Kafka "})
	require.NoError(t, err)

	assert.Equal(t, "Apache Kafka", created.Name)
	assert.Equal(t, "apache-kafka", created.Slug)
	assert.Equal(t, creator.UserID, pointer.Val(created.CreatorID))
	assert.Equal(t, []string{"apache-kafka"}, f.slugs.slugsOf(created.ID))
}

func TestCreate_SuffixesCollidingSlugs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "Kafka"})
	require.NoError(t, err)
	second, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "kafka"})
	require.NoError(t, err)
	third, err := f.service.Create(ctx, other.UserID, topic.CreateInput{Name: "KAFKA!"})
	require.NoError(t, err)

	assert.Equal(t, "kafka", first.Slug)
	assert.Equal(t, "kafka-2", second.Slug)
	assert.Equal(t, "kafka-3", third.Slug)
}

func TestCreate_RetriesWhenSlugIsTakenConcurrently(t *testing.T) {
	f := newFixture()
	f.topics.stolen["graphql"] = true

	created, err := f.service.Create(context.Background(), creator.UserID, topic.CreateInput{Name: "GraphQL"})
	require.NoError(t, err)

	assert.Equal(t, "graphql-2", created.Slug)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		input topic.CreateInput
		field string
	}{
		{"blank_name", topic.CreateInput{Name: "   "}, topic.FieldName},
		{"no_slug_characters", topic.CreateInput{Name: "!!!"}, topic.FieldName},
		{"bad_avatar", topic.CreateInput{Name: "Go", TwitterProfileImage: pointer.To("not a url")}, topic.FieldTwitterProfileImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), creator.UserID, tt.input)
			require.True(t, apperr.IsValidation(err), "got %v", err)
			assert.Equal(t, tt.field, apperr.As(err).Details[0].Field)
		})
	}
}

func TestRename_OldSlugKeepsResolving(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "Kafka"})
	require.NoError(t, err)

	renamed, err := f.service.Update(ctx, creator, "kafka", topic.UpdateInput{Name: pointer.To("Apache Kafka")})
	require.NoError(t, err)
	assert.Equal(t, "apache-kafka", renamed.Slug)

	viaOld, err := f.service.Get(ctx, "kafka")
	require.NoError(t, err)
	assert.Equal(t, created.ID, viaOld.ID)
	assert.Equal(t, "apache-kafka", viaOld.Slug)

	assert.ElementsMatch(t, []string{"kafka", "apache-kafka"}, f.slugs.slugsOf(created.ID))
}

func TestRename_OldSlugIsNotHandedOut(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "Kafka"})
	require.NoError(t, err)
	_, err = f.service.Update(ctx, creator, "kafka", topic.UpdateInput{Name: pointer.To("Apache Kafka")})
	require.NoError(t, err)

	newcomer, err := f.service.Create(ctx, other.UserID, topic.CreateInput{Name: "Kafka"})
	require.NoError(t, err)
	assert.Equal(t, "kafka-2", newcomer.Slug)
}

func TestRename_BackToPreviousSlug(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "Kafka"})
	require.NoError(t, err)
	_, err = f.service.Update(ctx, creator, "kafka", topic.UpdateInput{Name: pointer.To("Apache Kafka")})
	require.NoError(t, err)

	back, err := f.service.Update(ctx, creator, "apache-kafka", topic.UpdateInput{Name: pointer.To("Kafka")})
	require.NoError(t, err)

	assert.Equal(t, "kafka", back.Slug)
	assert.Len(t, f.slugs.slugsOf(created.ID), 2)
}

func TestUpdate_Permissions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "Rust"})
	require.NoError(t, err)

	_, err = f.service.Update(ctx, other, "rust", topic.UpdateInput{TwitterUsername: pointer.To("rustlang")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	updated, err := f.service.Update(ctx, admin, "rust", topic.UpdateInput{TwitterUsername: pointer.To("rustlang")})
	require.NoError(t, err)
	assert.Equal(t, "rustlang", pointer.Val(updated.TwitterUsername))
	assert.Equal(t, "rust", updated.Slug)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "Elm"})
	require.NoError(t, err)

	err = f.service.Delete(ctx, other, "elm")
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	require.NoError(t, f.service.Delete(ctx, creator, "elm"))
	assert.Empty(t, f.slugs.slugsOf(created.ID))

	_, err = f.service.Get(ctx, "elm")
	assert.True(t, apperr.IsNotFound(err))
}

func TestIndex_GroupsStoredTopics(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, name := range []string{"Kotlin", "Go", "gRPC", "Kubernetes"} {
		_, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: name})
		require.NoError(t, err)
	}

	index, err := f.service.Index(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"G", "K"}, index.Letters())
	index.ForEachLetter(func(letter string, topics []*topic.Topic) {
		assert.Len(t, topics, 2, letter)
	})
}

func TestCountByCreator(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	count, err := f.service.CountByCreator(ctx, creator.UserID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: "Zig"})
	require.NoError(t, err)
	_, err = f.service.Create(ctx, other.UserID, topic.CreateInput{Name: "Nim"})
	require.NoError(t, err)

	count, err = f.service.CountByCreator(ctx, creator.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestList_Filters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, name := range []string{"React", "Redux", "Vue"} {
		_, err := f.service.Create(ctx, creator.UserID, topic.CreateInput{Name: name})
		require.NoError(t, err)
	}
	_, err := f.service.Create(ctx, other.UserID, topic.CreateInput{Name: "Remix"})
	require.NoError(t, err)

	topics, total, err := f.service.List(ctx, topic.Filter{Query: "re"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, topics, 3)

	_, total, err = f.service.List(ctx, topic.Filter{Query: "re", CreatorID: other.UserID}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
