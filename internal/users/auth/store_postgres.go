// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/postgres"
)

// # User Repository

// userColumns is the projection shared by every account lookup, in [scanUser] order.
const userColumns = `id, name, username, email, passwordhash, admin, confirmedat, signincount,
	currentsigninat, lastsigninat, currentsigninip, lastsigninip, createdat, updatedat`

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	db postgres.DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
Create persists a new user record into the users.account table.

Description: Timestamps are initialized when not provided. Unique violations
keep their pgconn cause so the service can map them to field errors.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (id, name, username, email, passwordhash, admin, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Admin,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a user record by its ID.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`
	return repository.findOne(context, "find_user_by_id", query, id)
}

/*
FindByEmail retrieves a user by email address, ignoring letter case.

Description: The comparison runs on lower(email), which is backed by the
account_email_lower_key unique index.

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound if no account exists
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE lower(email) = lower($1)`
	return repository.findOne(context, "find_user_by_email", query, email)
}

// FindByUsername retrieves a user record by its unique username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`
	return repository.findOne(context, "find_user_by_username", query, username)
}

// FindAdmin retrieves the account carrying the admin flag.
func (repository *PostgresUserRepository) FindAdmin(context context.Context) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE admin ORDER BY createdat LIMIT 1`
	return repository.findOne(context, "find_admin", query)
}

func (repository *PostgresUserRepository) findOne(context context.Context, action, query string, args ...any) (*User, error) {
	row := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, args...)

	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.WrapResource(err, action, "User")
	}

	return user, nil
}

// scanUser hydrates a [User] from a row projected with userColumns.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Admin,
		&user.ConfirmedAt,
		&user.SignInCount,
		&user.CurrentSignInAt,
		&user.LastSignInAt,
		&user.CurrentSignInIP,
		&user.LastSignInIP,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the user's password hash.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `UPDATE users.account SET passwordhash = $2, updatedat = NOW() WHERE id = $1`
	return repository.execOne(context, "update_password", query, userID, newHash)
}

// MarkConfirmed stamps confirmedat unless the account is already confirmed.
func (repository *PostgresUserRepository) MarkConfirmed(context context.Context, userID string, at time.Time) error {
	const query = `
		UPDATE users.account
		SET confirmedat = COALESCE(confirmedat, $2), updatedat = $2
		WHERE id = $1`
	return repository.execOne(context, "mark_confirmed", query, userID, at)
}

/*
RecordSignIn rolls the sign-in tracking columns forward.

Description: The previous "current" stamp and IP become "last", the new
values become "current" and the counter is incremented, all in one statement.
*/
func (repository *PostgresUserRepository) RecordSignIn(context context.Context, userID, ip string, at time.Time) error {
	const query = `
		UPDATE users.account
		SET signincount     = signincount + 1,
		    lastsigninat    = currentsigninat,
		    lastsigninip    = currentsigninip,
		    currentsigninat = $2,
		    currentsigninip = $3,
		    updatedat       = $2
		WHERE id = $1`
	return repository.execOne(context, "record_sign_in", query, userID, at, ip)
}

// SetAdmin sets or clears the admin flag on one account.
func (repository *PostgresUserRepository) SetAdmin(context context.Context, userID string, admin bool) error {
	const query = `UPDATE users.account SET admin = $2, updatedat = NOW() WHERE id = $1`
	return repository.execOne(context, "set_admin", query, userID, admin)
}

// ClearAdmins removes the admin flag from every account.
func (repository *PostgresUserRepository) ClearAdmins(context context.Context) error {
	const query = `UPDATE users.account SET admin = FALSE, updatedat = NOW() WHERE admin`

	if _, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query); err != nil {
		return dberr.Wrap(err, "clear_admins")
	}
	return nil
}

// execOne runs an UPDATE that must touch exactly one account.
func (repository *PostgresUserRepository) execOne(context context.Context, action, query string, args ...any) error {
	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] on users.session.
type PostgresSessionRepository struct {
	db postgres.DB
}

// NewSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewSessionRepository(db postgres.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// Create persists a new refresh-token session.
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
		INSERT INTO users.session (id, userid, tokenhash, devicename, ipaddress, useragent, expiresat, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.DeviceName,
		session.IPAddress,
		session.UserAgent,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_session")
	}

	return nil
}

/*
FindByTokenHash returns the live session for a refresh token hash.

Returns:
  - *Session: Hydrated entity
  - error: apperr.NotFound when missing, revoked or expired
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	const query = `
		SELECT id, userid, tokenhash, devicename, ipaddress, useragent, isrevoked, expiresat, revokedat, createdat
		FROM users.session
		WHERE tokenhash = $1 AND NOT isrevoked AND expiresat > NOW()`

	session := &Session{}
	err := postgres.QuerierFromCtx(context, repository.db).QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.DeviceName,
		&session.IPAddress,
		&session.UserAgent,
		&session.IsRevoked,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.WrapResource(err, "find_session", "Session")
	}

	return session, nil
}

// Revoke marks a session as revoked. Revoking twice is a no-op.
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	const query = `UPDATE users.session SET isrevoked = TRUE, revokedat = NOW() WHERE id = $1 AND NOT isrevoked`
	return repository.exec(context, "revoke_session", query, sessionID)
}

// RevokeAll revokes every live session of userID.
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	const query = `UPDATE users.session SET isrevoked = TRUE, revokedat = NOW() WHERE userid = $1 AND NOT isrevoked`
	return repository.exec(context, "revoke_all_sessions", query, userID)
}

// RevokeOthers revokes all live sessions of userID except currentSessionID.
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	const query = `
		UPDATE users.session SET isrevoked = TRUE, revokedat = NOW()
		WHERE userid = $1 AND id <> $2 AND NOT isrevoked`
	return repository.exec(context, "revoke_other_sessions", query, userID, currentSessionID)
}

// DeleteExpired removes sessions whose expiry has passed.
func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) (int64, error) {
	const query = `DELETE FROM users.session WHERE expiresat <= NOW()`

	tag, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_expired_sessions")
	}
	return tag.RowsAffected(), nil
}

func (repository *PostgresSessionRepository) exec(context context.Context, action, query string, args ...any) error {
	if _, err := postgres.QuerierFromCtx(context, repository.db).Exec(context, query, args...); err != nil {
		return dberr.Wrap(err, action)
	}
	return nil
}
