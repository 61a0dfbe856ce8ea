// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package topic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
	"github.com/mc-aweaver/techradar-1/internal/platform/validate"
	"github.com/mc-aweaver/techradar-1/internal/radar/slugs"
	"github.com/mc-aweaver/techradar-1/pkg/pointer"
	"github.com/mc-aweaver/techradar-1/pkg/slug"
	"github.com/mc-aweaver/techradar-1/pkg/uuid"
)

// maxSlugAttempts bounds the "-2", "-3"... suffix search.
const maxSlugAttempts = 50

// Service implements the topic use cases.
type Service struct {
	repo     Repository
	slugs    SlugHistory
	txRunner TxRunner
	logger   *slog.Logger
}

// NewService constructs a topic [Service].
func NewService(repo Repository, history SlugHistory, tx TxRunner, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		slugs:    history,
		txRunner: tx,
		logger:   logger,
	}
}

// # Queries

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Topic, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Index groups every topic by first letter. Topics arrive sorted by name, so
// the groups come out in alphabetical order without re-sorting them here.
func (service *Service) Index(context context.Context) (*LetterIndex, error) {
	topics, err := service.repo.ListAll(context)
	if err != nil {
		return nil, fmt.Errorf("topic_service_index_failed: %w", err)
	}

	return GroupByLetter(topics)
}

/*
Get returns the topic currently or formerly known under slug.

Returns:
  - *Topic: The topic, carrying its current slug
  - error: apperr.NotFound when no topic ever used the slug
*/
func (service *Service) Get(context context.Context, topicSlug string) (*Topic, error) {
	topic, err := service.repo.FindBySlug(context, topicSlug)
	if err == nil || !apperr.IsNotFound(err) {
		return topic, err
	}

	// Renamed topics keep answering to their old slugs.
	id, err := service.slugs.Resolve(context, topicSlug, SluggableType, "")
	if err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, id)
}

// # Mutations

/*
Create adds a topic authored by creatorID.

The slug is derived from the name. When it is taken (now or in the past), the
next free "-N" suffix is used.
*/
func (service *Service) Create(ctx context.Context, creatorID string, input CreateInput) (*Topic, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)
	validateSocial(validator, input.TwitterUsername, input.TwitterProfileImage)

	base := slug.From(input.Name)
	if input.Name != "" && base == "" {
		validator.Add(FieldName, "Must contain at least one letter or digit")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	topic := &Topic{
		ID:                  uuid.New(),
		Name:                input.Name,
		CreatorID:           pointer.To(creatorID),
		Username:            input.Username,
		TwitterUsername:     input.TwitterUsername,
		TwitterProfileImage: input.TwitterProfileImage,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := service.claimSlug(ctx, topic, base, func(txContext context.Context, candidate string) error {
		topic.Slug = candidate
		return service.repo.Create(txContext, topic)
	})
	if err != nil {
		return nil, fmt.Errorf("topic_service_create_failed: %w", err)
	}

	service.logger.Info("topic_created",
		slog.String("topic_id", topic.ID),
		slog.String("slug", topic.Slug),
		slog.String("creator_id", creatorID),
	)
	return topic, nil
}

/*
Update applies a partial update. Renaming moves the topic to a new slug; the
old slug stays in the history and keeps resolving.

Only the creator or an admin may update a topic.
*/
func (service *Service) Update(ctx context.Context, actor *sec.AuthClaims, topicSlug string, input UpdateInput) (*Topic, error) {
	topic, err := service.Get(ctx, topicSlug)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, topic) {
		return nil, apperr.Forbidden("Only the creator or an admin can change this topic")
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		*input.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 100)
		if *input.Name != "" && slug.From(*input.Name) == "" {
			validator.Add(FieldName, "Must contain at least one letter or digit")
		}
	}
	validateSocial(validator, input.TwitterUsername, input.TwitterProfileImage)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.TwitterUsername != nil {
		topic.TwitterUsername = input.TwitterUsername
	}
	if input.TwitterProfileImage != nil {
		topic.TwitterProfileImage = input.TwitterProfileImage
	}
	topic.UpdatedAt = time.Now().UTC()

	renamed := input.Name != nil && *input.Name != topic.Name
	if !renamed {
		if err := service.repo.Update(ctx, topic); err != nil {
			return nil, fmt.Errorf("topic_service_update_failed: %w", err)
		}
		return topic, nil
	}

	previous := topic.Slug
	topic.Name = *input.Name

	err = service.claimSlug(ctx, topic, slug.From(topic.Name), func(txContext context.Context, candidate string) error {
		topic.Slug = candidate
		return service.repo.Update(txContext, topic)
	})
	if err != nil {
		return nil, fmt.Errorf("topic_service_rename_failed: %w", err)
	}

	service.logger.Info("topic_renamed",
		slog.String("topic_id", topic.ID),
		slog.String("from", previous),
		slog.String("to", topic.Slug),
	)
	return topic, nil
}

// Delete removes a topic and its slug history. Only the creator or an admin
// may delete it.
func (service *Service) Delete(ctx context.Context, actor *sec.AuthClaims, topicSlug string) error {
	topic, err := service.Get(ctx, topicSlug)
	if err != nil {
		return err
	}
	if !canModify(actor, topic) {
		return apperr.Forbidden("Only the creator or an admin can delete this topic")
	}

	err = service.txRunner.RunInTx(ctx, func(txContext context.Context) error {
		if err := service.slugs.DeleteFor(txContext, topic.ID, SluggableType); err != nil {
			return err
		}
		return service.repo.Delete(txContext, topic.ID)
	})
	if err != nil {
		return fmt.Errorf("topic_service_delete_failed: %w", err)
	}

	service.logger.Warn("topic_deleted", slog.String("topic_id", topic.ID), slog.String("actor_id", actor.UserID))
	return nil
}

// CountByCreator reports how many topics userID has authored.
func (service *Service) CountByCreator(context context.Context, userID string) (int, error) {
	return service.repo.CountByCreator(context, userID)
}

// # Helpers

/*
claimSlug walks base, base-2, base-3... and runs write for the first candidate
that is free or already belongs to topic. The write and the history record
share one transaction; losing a race on either unique index moves on to the
next candidate.
*/
func (service *Service) claimSlug(ctx context.Context, topic *Topic, base string, write func(context.Context, string) error) error {
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := slug.WithSuffix(base, attempt)

		owner, err := service.slugs.Resolve(ctx, candidate, SluggableType, "")
		switch {
		case err == nil && owner != topic.ID:
			continue
		case err != nil && !apperr.IsNotFound(err):
			return err
		}
		known := err == nil

		err = service.txRunner.RunInTx(ctx, func(txContext context.Context) error {
			if err := write(txContext, candidate); err != nil {
				return err
			}
			if known {
				return nil
			}
			return service.slugs.Record(txContext, &slugs.SlugRecord{
				Slug:          candidate,
				SluggableID:   topic.ID,
				SluggableType: SluggableType,
			})
		})
		if dberr.IsUniqueViolation(err, schema.TopicSlugKey) || dberr.IsUniqueViolation(err, schema.SlugTripleKey) {
			service.logger.Debug("topic_slug_taken", slog.String("slug", candidate))
			continue
		}
		return err
	}

	return apperr.Conflict(fmt.Sprintf("No free slug left for %q", base))
}

func validateSocial(validator *validate.Validator, twitterUsername, profileImage *string) {
	if twitterUsername != nil && *twitterUsername != "" {
		validator.MaxLen(FieldTwitterUsername, *twitterUsername, 15)
	}
	if profileImage != nil && *profileImage != "" {
		validator.URL(FieldTwitterProfileImage, *profileImage)
	}
}

func canModify(actor *sec.AuthClaims, topic *Topic) bool {
	if actor == nil {
		return false
	}
	if sec.UserRole(actor.Role).AtLeast(sec.RoleAdmin) {
		return true
	}
	return topic.CreatorID != nil && *topic.CreatorID == actor.UserID
}
