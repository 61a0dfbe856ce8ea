// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package account handles the signed-in user's own profile, onboarding state
and device sessions.

# Architecture

  - Entities: Onboarding, SessionInfo (DTO).
  - Domain: This package depends on the auth package for the User entity.
  - Onboarding: topic authorship is read through [TopicCounter], implemented
    by the topic store, so this package never imports radar code.
*/
package account

import (
	"context"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/users/auth"
)

// # Domain Entities

// Onboarding tells the client which first-run steps are still pending.
type Onboarding struct {
	Confirmed        bool `json:"confirmed"`
	AlreadyHasTopics bool `json:"already_has_topics"`
}

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID         string    `json:"id"`
	DeviceName string    `json:"device_name,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsCurrent  bool      `json:"is_current"`
}

// # Repository Contracts

// AccountRepository defines the persistence contract for profile data.
type AccountRepository interface {

	/*
		FindByID retrieves a user record by their unique ID.

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateProfile overwrites the mutable profile columns.

		Returns:
		  - error: A unique violation on the username index is kept in the
		    chain so the service can report it against the field.
	*/
	UpdateProfile(context context.Context, userID, name string, username *string) error
}

// SessionRepository is the read and revoke surface over refresh sessions.
type SessionRepository interface {

	// FindActiveByUserID lists live sessions, newest first.
	FindActiveByUserID(context context.Context, userID string) ([]auth.Session, error)

	// Revoke revokes one of userID's sessions, or returns apperr.NotFound.
	Revoke(context context.Context, userID, sessionID string) error

	// RevokeOthers revokes every session of userID except currentSessionID.
	RevokeOthers(context context.Context, userID, currentSessionID string) error
}

// TopicCounter reports how many topics a user has created.
type TopicCounter interface {
	CountByCreator(context context.Context, userID string) (int, error)
}
