// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/validate"
	"github.com/mc-aweaver/techradar-1/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for the signed-in user's account.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	topicCounter      TopicCounter
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	topics TopicCounter,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		topicCounter:      topics,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
// A nil field is left unchanged; an empty Username clears it.
type UpdateProfileInput struct {
	Name     *string
	Username *string
}

/*
UpdateProfile applies a partial set of changes to a user's account.

Description: Fetches the existing user state, overrides provided fields,
validates the result with the signup rules and persists it.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: ValidationError, NotFound or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Username != nil {
		user.Username = nil
		if username := strings.TrimSpace(*input.Username); username != "" {
			user.Username = &username
		}
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldName, user.Name).MaxLen(auth.FieldName, user.Name, 100)
	if user.Username != nil {
		validator.MinLen(auth.FieldUsername, *user.Username, 2).
			MaxLen(auth.FieldUsername, *user.Username, 40).
			Slug(auth.FieldUsername, *user.Username)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.accountRepository.UpdateProfile(context, user.ID, user.Name, user.Username); err != nil {
		if dberr.IsUniqueViolation(err, schema.UsernameKey) {
			return nil, validate.RequiredError(auth.FieldUsername, "Has already been taken")
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Onboarding

/*
AlreadyHasTopics reports whether the user has created at least one topic.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - bool: true once the user authored one or more topics
  - error: Storage failures
*/
func (service *Service) AlreadyHasTopics(context context.Context, userID string) (bool, error) {
	count, err := service.topicCounter.CountByCreator(context, userID)
	if err != nil {
		return false, fmt.Errorf("account_service_count_topics_failed: %w", err)
	}
	return count > 0, nil
}

// Onboarding gathers the first-run checklist for the user.
func (service *Service) Onboarding(context context.Context, userID string) (*Onboarding, error) {
	user, err := service.GetProfile(context, userID)
	if err != nil {
		return nil, err
	}

	hasTopics, err := service.AlreadyHasTopics(context, userID)
	if err != nil {
		return nil, err
	}

	return &Onboarding{Confirmed: user.Confirmed(), AlreadyHasTopics: hasTopics}, nil
}

// # Session Security

/*
ListSessions returns the user's live sessions.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string (Hash of the caller's refresh token, may be empty)

Returns:
  - []SessionInfo: Active devices, the caller's flagged IsCurrent
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.FindActiveByUserID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			ID:         session.ID,
			DeviceName: session.DeviceName,
			UserAgent:  session.UserAgent,
			IPAddress:  session.IPAddress,
			CreatedAt:  session.CreatedAt,
			ExpiresAt:  session.ExpiresAt,
			IsCurrent:  currentTokenHash != "" && session.TokenHash == currentTokenHash,
		})
	}

	return infos, nil
}

/*
RevokeSession terminates one of the user's sessions by its ID.

Returns:
  - error: NotFound when the session is not the user's, or storage failures
*/
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if err := service.sessionRepository.Revoke(context, userID, sessionID); err != nil {
		return fmt.Errorf("account_service_revoke_session_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	return nil
}

/*
RevokeOtherSessions signs out every device but the caller's.

Returns:
  - error: Unauthorized when the caller's own session cannot be identified
*/
func (service *Service) RevokeOtherSessions(context context.Context, userID, currentTokenHash string) error {
	sessions, err := service.ListSessions(context, userID, currentTokenHash)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if !session.IsCurrent {
			continue
		}
		if err := service.sessionRepository.RevokeOthers(context, userID, session.ID); err != nil {
			return fmt.Errorf("account_service_revoke_others_failed: %w", err)
		}
		service.logger.InfoContext(context, "user_other_sessions_revoked", slog.String("user_id", userID))
		return nil
	}

	return apperr.Unauthorized("Current session not found")
}
