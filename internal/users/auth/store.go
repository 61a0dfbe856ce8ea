// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account whose email matches, ignoring case.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// FindAdmin returns the account carrying the admin flag, or apperr.NotFound.
	FindAdmin(context context.Context) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: A unique violation on the lower(email) index is returned
		    unwrapped so the service can report it as a field error.
	*/
	Create(context context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, userID, newHash string) error

	// MarkConfirmed stamps confirmedat if it is not set yet.
	MarkConfirmed(context context.Context, userID string, at time.Time) error

	/*
		RecordSignIn shifts the current sign-in stamp to "last" and records a new one.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - ip: string
		  - at: time.Time
	*/
	RecordSignIn(context context.Context, userID, ip string, at time.Time) error

	// SetAdmin sets or clears the admin flag on one account.
	SetAdmin(context context.Context, userID string, admin bool) error

	// ClearAdmins removes the admin flag from every account.
	ClearAdmins(context context.Context) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	// Create persists a new session for an authenticated login.
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the active session matching the given token hash.

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound when missing, revoked or expired
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke marks a specific session as permanently invalidated.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to userID.
	RevokeAll(context context.Context, userID string) error

	// RevokeOthers revokes all of userID's sessions except currentSessionID.
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	/*
		DeleteExpired physically removes sessions whose expiry has passed.

		Returns:
		  - int64: Number of deleted rows
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context) (int64, error)
}

// # Volatile Data Access

// TokenRepository stores single-use tokens (password reset, email
// confirmation) mapped to a user ID.
type TokenRepository interface {

	// Set stores token for userID for ttl.
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a token.

		Returns:
		  - string: UserID
		  - error: apperr.NotFound when absent or expired
	*/
	Get(context context.Context, token string) (string, error)

	// Delete removes a token after successful use.
	Delete(context context.Context, token string) error
}

// # Collaborators

// TokenProvider signs access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, name, role string, timeToLive time.Duration) (string, error)
}

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	RunInTx(context context.Context, fn func(context context.Context) error) error
}
