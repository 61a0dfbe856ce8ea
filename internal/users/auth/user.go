// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package auth owns user identity: signup validation, credentials, sessions,
email confirmation and the singleton admin account.

# Architecture

  - Service: registration, login, token rotation, password recovery, admin.
  - Repositories: Postgres for accounts and refresh sessions, Redis for
    single-use reset and confirmation tokens.
  - Events: a successful signup publishes exactly one user.created event
    through the injected [events.Notifier].
*/
package auth

import (
	"net/http"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
)

// # Domain Entities

// User is a registered radar author.
type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Username        *string    `json:"username,omitempty"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Admin           bool       `json:"admin"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	SignInCount     int        `json:"sign_in_count"`
	CurrentSignInAt *time.Time `json:"current_sign_in_at,omitempty"`
	LastSignInAt    *time.Time `json:"last_sign_in_at,omitempty"`
	CurrentSignInIP *string    `json:"-"`
	LastSignInIP    *string    `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Role maps the admin flag onto the JWT role claim.
func (user *User) Role() sec.UserRole {
	return sec.RoleFor(user.Admin)
}

// Confirmed reports whether the email address has been verified.
func (user *User) Confirmed() bool {
	return user.ConfirmedAt != nil
}

// Contact is the public view of the admin account.
type Contact struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Username *string `json:"username,omitempty"`
	Email    string  `json:"email"`
}

// ContactOf projects a user to its public contact card.
func ContactOf(user *User) *Contact {
	return &Contact{ID: user.ID, Name: user.Name, Username: user.Username, Email: user.Email}
}

// Session represents an active refresh-token session.
type Session struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	TokenHash  string     `json:"-"`
	DeviceName string     `json:"device_name,omitempty"`
	UserAgent  string     `json:"user_agent"`
	IPAddress  string     `json:"ip_address"`
	ExpiresAt  time.Time  `json:"expires_at"`
	IsRevoked  bool       `json:"is_revoked"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// # Errors

// ErrMissingAdminAccount means no account carries the admin flag. The
// deployment is misconfigured, so it surfaces as a server error.
var ErrMissingAdminAccount = apperr.New("MISSING_ADMIN_ACCOUNT", http.StatusInternalServerError, "No admin account is configured")

// # Field Identifiers

// Field names used in validation details and JSON payloads.
const (
	FieldName                 = "name"
	FieldUsername             = "username"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldLogin                = "login"
	FieldToken                = "token"
	FieldCurrentPassword      = "current_password"
	FieldNewPassword          = "new_password"
	FieldAccessToken          = "access_token"
	FieldTokenType            = "token_type"
	FieldExpiresIn            = "expires_in"
	FieldUser                 = "user"
	FieldMessage              = "message"
)
