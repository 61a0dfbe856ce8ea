// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package radar

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/render"
	"github.com/mc-aweaver/techradar-1/internal/platform/validate"
	"github.com/mc-aweaver/techradar-1/pkg/slice"
	"github.com/mc-aweaver/techradar-1/pkg/uuid"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 5000
	maxNotesLength       = 5000
)

// Service implements the radar and blip use cases.
type Service struct {
	radars Repository
	blips  BlipRepository
	topics TopicResolver
	logger *slog.Logger
}

// NewService constructs a radar [Service].
func NewService(radars Repository, blips BlipRepository, topics TopicResolver, logger *slog.Logger) *Service {
	return &Service{
		radars: radars,
		blips:  blips,
		topics: topics,
		logger: logger,
	}
}

// # Radars

// ListByOwner returns the caller's radars without their blips.
func (service *Service) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Radar, int, error) {
	radars, total, err := service.radars.ListByOwner(context, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, radar := range radars {
		if err := renderDescription(radar); err != nil {
			return nil, 0, err
		}
	}

	return radars, total, nil
}

/*
Get loads a radar by its shareable token, with its blips grouped by quadrant.

Radars are public: anyone holding the token may read them.
*/
func (service *Service) Get(context context.Context, token string) (*Radar, error) {
	radar, err := service.radars.FindByUUID(context, token)
	if err != nil {
		return nil, err
	}
	if err := renderDescription(radar); err != nil {
		return nil, err
	}

	blips, err := service.listBlips(context, radar.ID)
	if err != nil {
		return nil, err
	}
	radar.Quadrants = ByQuadrant(blips)

	return radar, nil
}

func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Radar, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLength)
	validator.MaxLen(FieldDescription, input.Description, maxDescriptionLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	radar := &Radar{
		ID:          uuid.New(),
		UUID:        uuid.Token(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.radars.Create(context, radar); err != nil {
		return nil, fmt.Errorf("radar_service_create_failed: %w", err)
	}
	if err := renderDescription(radar); err != nil {
		return nil, err
	}

	service.logger.Info("radar_created",
		slog.String("radar_id", radar.ID),
		slog.String("owner_id", ownerID),
	)
	return radar, nil
}

func (service *Service) Update(context context.Context, actorID, token string, input UpdateInput) (*Radar, error) {
	radar, err := service.owned(context, actorID, token)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		*input.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, maxNameLength)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, maxDescriptionLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		radar.Name = *input.Name
	}
	if input.Description != nil {
		radar.Description = *input.Description
	}
	radar.UpdatedAt = time.Now().UTC()

	if err := service.radars.Update(context, radar); err != nil {
		return nil, fmt.Errorf("radar_service_update_failed: %w", err)
	}
	if err := renderDescription(radar); err != nil {
		return nil, err
	}

	return radar, nil
}

// Delete removes a radar. Its blips go with it.
func (service *Service) Delete(context context.Context, actorID, token string) error {
	radar, err := service.owned(context, actorID, token)
	if err != nil {
		return err
	}

	if err := service.radars.Delete(context, radar.ID); err != nil {
		return fmt.Errorf("radar_service_delete_failed: %w", err)
	}

	service.logger.Warn("radar_deleted", slog.String("radar_id", radar.ID), slog.String("owner_id", actorID))
	return nil
}

// # Blips

// ListBlips returns a radar's blips grouped by quadrant. When rings is not
// empty only blips in one of those rings are kept.
func (service *Service) ListBlips(context context.Context, token string, rings ...string) ([]*QuadrantBlips, error) {
	radar, err := service.radars.FindByUUID(context, token)
	if err != nil {
		return nil, err
	}

	blips, err := service.listBlips(context, radar.ID)
	if err != nil {
		return nil, err
	}

	if len(rings) > 0 {
		blips = slice.Filter(blips, func(blip *Blip) bool {
			return slices.Contains(rings, blip.Ring)
		})
	}

	return ByQuadrant(blips), nil
}

/*
AddBlip places a topic on a radar.

Returns:
  - *Blip: The new blip with its topic name and slug
  - error: ValidationError for an unknown topic or an off-grid position,
    Conflict when the topic is already on the radar
*/
func (service *Service) AddBlip(context context.Context, actorID, token string, input AddBlipInput) (*Blip, error) {
	radar, err := service.owned(context, actorID, token)
	if err != nil {
		return nil, err
	}

	input.Topic = strings.TrimSpace(input.Topic)

	validator := &validate.Validator{}
	validator.Required(FieldTopic, input.Topic)
	validatePosition(validator, input.Quadrant, input.Ring)
	validator.MaxLen(FieldNotes, input.Notes, maxNotesLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	placed, err := service.topics.Get(context, input.Topic)
	if apperr.IsNotFound(err) {
		return nil, validate.RequiredError(FieldTopic, "Does not exist")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	blip := &Blip{
		ID:        uuid.New(),
		RadarID:   radar.ID,
		TopicID:   placed.ID,
		TopicName: placed.Name,
		TopicSlug: placed.Slug,
		Quadrant:  input.Quadrant,
		Ring:      input.Ring,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = service.blips.Create(context, blip)
	if dberr.IsUniqueViolation(err, schema.BlipRadarTopicKey) {
		return nil, apperr.Conflict(fmt.Sprintf("%s is already on this radar", placed.Name))
	}
	if err != nil {
		return nil, fmt.Errorf("radar_service_add_blip_failed: %w", err)
	}
	if err := renderNotes(blip); err != nil {
		return nil, err
	}

	service.logger.Info("blip_added",
		slog.String("radar_id", radar.ID),
		slog.String("topic_id", placed.ID),
		slog.String("quadrant", blip.Quadrant),
		slog.String("ring", blip.Ring),
	)
	return blip, nil
}

// UpdateBlip moves a blip on the grid or edits its notes.
func (service *Service) UpdateBlip(context context.Context, actorID, token, blipID string, input UpdateBlipInput) (*Blip, error) {
	radar, err := service.owned(context, actorID, token)
	if err != nil {
		return nil, err
	}

	blip, err := service.blips.FindByID(context, radar.ID, blipID)
	if err != nil {
		return nil, err
	}

	if input.Quadrant != nil {
		blip.Quadrant = *input.Quadrant
	}
	if input.Ring != nil {
		blip.Ring = *input.Ring
	}
	if input.Notes != nil {
		blip.Notes = *input.Notes
	}

	validator := &validate.Validator{}
	validatePosition(validator, blip.Quadrant, blip.Ring)
	validator.MaxLen(FieldNotes, blip.Notes, maxNotesLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	blip.UpdatedAt = time.Now().UTC()
	if err := service.blips.Update(context, blip); err != nil {
		return nil, fmt.Errorf("radar_service_update_blip_failed: %w", err)
	}
	if err := renderNotes(blip); err != nil {
		return nil, err
	}

	return blip, nil
}

func (service *Service) RemoveBlip(context context.Context, actorID, token, blipID string) error {
	radar, err := service.owned(context, actorID, token)
	if err != nil {
		return err
	}

	return service.blips.Delete(context, radar.ID, blipID)
}

// # Helpers

// owned loads a radar and checks that actorID owns it.
func (service *Service) owned(context context.Context, actorID, token string) (*Radar, error) {
	radar, err := service.radars.FindByUUID(context, token)
	if err != nil {
		return nil, err
	}
	if radar.OwnerID != actorID {
		return nil, apperr.Forbidden("Only the owner can change this radar")
	}
	return radar, nil
}

func (service *Service) listBlips(context context.Context, radarID string) ([]*Blip, error) {
	blips, err := service.blips.ListByRadar(context, radarID)
	if err != nil {
		return nil, err
	}

	for _, blip := range blips {
		if err := renderNotes(blip); err != nil {
			return nil, err
		}
	}

	return blips, nil
}

func validatePosition(validator *validate.Validator, quadrant, ring string) {
	if quadrant == "" {
		validator.Required(FieldQuadrant, quadrant)
	} else {
		validator.OneOf(FieldQuadrant, quadrant, Quadrants...)
	}

	if ring == "" {
		validator.Required(FieldRing, ring)
	} else {
		validator.OneOf(FieldRing, ring, Rings...)
	}
}

func renderDescription(radar *Radar) error {
	html, err := render.Markdown(radar.Description)
	if err != nil {
		return err
	}
	radar.DescriptionHTML = html
	return nil
}

func renderNotes(blip *Blip) error {
	html, err := render.Markdown(blip.Notes)
	if err != nil {
		return err
	}
	blip.NotesHTML = html
	return nil
}
