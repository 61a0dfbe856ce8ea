// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth

import "time"

// # Authentication Constraints

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 8

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72

	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// VerificationTokenTTL is the duration an email confirmation token remains valid.
	VerificationTokenTTL = 24 * time.Hour

	// OneTimeTokenLength is the byte length of reset and confirmation tokens.
	OneTimeTokenLength = 32
)

// # Domain Events

const (
	// EventConfirmationRequested carries a fresh email confirmation token.
	EventConfirmationRequested = "user.confirmation_requested"

	// EventPasswordResetRequested carries a fresh password reset token.
	EventPasswordResetRequested = "user.password_reset_requested"
)
