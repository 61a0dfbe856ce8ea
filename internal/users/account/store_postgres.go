// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package account

import (
	"context"
	"fmt"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/postgres"
	"github.com/mc-aweaver/techradar-1/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository]. Lookups are
// delegated to the auth user repository.
type PostgresAccountRepository struct {
	*auth.PostgresUserRepository
	db postgres.DB
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(db postgres.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{PostgresUserRepository: auth.NewUserRepository(db), db: db}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	db postgres.DB
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(db postgres.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// # AccountRepository Methods

/*
UpdateProfile writes name and username and refreshes updatedat.

Parameters:
  - context: context.Context
  - userID: string
  - name: string
  - username: *string (nil stores NULL)

Returns:
  - error: NotFound or update failures
*/
func (repository *PostgresAccountRepository) UpdateProfile(context context.Context, userID, name string, username *string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Name, schema.UserAccount.Username, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, userID, name, username)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account")
	}

	return nil
}

// # SessionRepository Methods

/*
FindActiveByUserID retrieves all valid device sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []auth.Session: Live sessions, newest first
  - error: Database retrieval failures
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]auth.Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND NOT %s AND %s > NOW()
		ORDER BY %s DESC`,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.DeviceName, schema.UserSession.IPAddress, schema.UserSession.UserAgent,
		schema.UserSession.CreatedAt, schema.UserSession.ExpiresAt,
		schema.UserSession.Table,
		schema.UserSession.UserID, schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt,
		schema.UserSession.CreatedAt,
	)

	rows, err := postgres.QuerierFromCtx(context, repository.db).Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_active_sessions")
	}
	defer rows.Close()

	var sessions []auth.Session
	for rows.Next() {
		var session auth.Session
		if err := rows.Scan(
			&session.ID, &session.UserID, &session.TokenHash,
			&session.DeviceName, &session.IPAddress, &session.UserAgent,
			&session.CreatedAt, &session.ExpiresAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_session")
		}
		sessions = append(sessions, session)
	}

	return sessions, dberr.Wrap(rows.Err(), "iterate_sessions")
}

/*
Revoke marks a single session as permanently revoked.

Parameters:
  - context: context.Context
  - userID: string (Ownership check)
  - sessionID: string

Returns:
  - error: NotFound when no live session of userID has that ID
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = $2 AND NOT %s`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.IsRevoked)

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, sessionID, userID)
	if err != nil {
		return dberr.Wrap(err, "revoke_session")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

// RevokeOthers marks all sessions except the current one as revoked.
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s <> $2 AND NOT %s`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.UserID, schema.UserSession.ID, schema.UserSession.IsRevoked)

	_, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, userID, currentSessionID)
	return dberr.Wrap(err, "revoke_other_sessions")
}
