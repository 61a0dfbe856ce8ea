// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/constants"
	"github.com/mc-aweaver/techradar-1/internal/platform/ctxutil"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/dberr"
	"github.com/mc-aweaver/techradar-1/internal/platform/events"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
	"github.com/mc-aweaver/techradar-1/internal/platform/validate"
	"github.com/mc-aweaver/techradar-1/pkg/uuid"
)

// # Contracts & Types

// Service implements the user directory and authentication use cases.
type Service struct {
	userRepository         UserRepository
	sessionRepository      SessionRepository
	resetTokenRepository   TokenRepository
	confirmTokenRepository TokenRepository
	tokenProvider          TokenProvider
	txRunner               TxRunner
	notifier               events.Notifier
	now                    func() time.Time
}

// Dependencies groups the collaborators of [Service].
type Dependencies struct {
	Users         UserRepository
	Sessions      SessionRepository
	ResetTokens   TokenRepository
	ConfirmTokens TokenRepository
	Tokens        TokenProvider
	Tx            TxRunner
	Notifier      events.Notifier
}

// NewService constructs a new [Service]. A nil Notifier discards events.
func NewService(deps Dependencies) *Service {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = events.Discard{}
	}

	return &Service{
		userRepository:         deps.Users,
		sessionRepository:      deps.Sessions,
		resetTokenRepository:   deps.ResetTokens,
		confirmTokenRepository: deps.ConfirmTokens,
		tokenProvider:          deps.Tokens,
		txRunner:               deps.Tx,
		notifier:               notifier,
		now:                    time.Now,
	}
}

// oneTimeTokenData is the payload of confirmation and reset events, consumed
// by whatever delivers the email.
type oneTimeTokenData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// # Registration Flow

// RegisterInput holds the signup form.
type RegisterInput struct {
	Name                 string
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Field rules are checked first and reported together. Email
uniqueness is checked case-insensitively before the insert and again by the
database index, whose violation is reported as the same field error. On
success exactly one user.created event is published; delivery problems are
logged and never fail the signup.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: ValidationError or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)

	validator := validateSignup(input)
	if !validator.HasErrors() {
		if err := service.checkAvailability(context, input, validator); err != nil {
			return nil, err
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	if input.Username != "" {
		user.Username = &input.Username
	}

	if err := service.userRepository.Create(context, user); err != nil {
		switch {
		case dberr.IsUniqueViolation(err, schema.EmailLowerKey):
			return nil, apperr.ValidationError("Validation failed", emailTaken)
		case dberr.IsUniqueViolation(err, schema.UsernameKey):
			return nil, apperr.ValidationError("Validation failed", usernameTaken)
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", dberr.Wrap(err, "create_user"))
	}

	logger := ctxutil.GetLogger(context)
	logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	service.publish(context, events.NewEvent(constants.EventUserCreated, events.UserCreatedData{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}))

	token, err := service.issueToken(context, service.confirmTokenRepository, user.ID, VerificationTokenTTL)
	if err != nil {
		logger.WarnContext(context, "confirmation_token_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	} else {
		service.publish(context, events.NewEvent(EventConfirmationRequested, oneTimeTokenData{UserID: user.ID, Email: user.Email, Token: token}))
	}

	return user, nil
}

// checkAvailability records a field error for an email or username already in use.
func (service *Service) checkAvailability(context context.Context, input RegisterInput, validator *validate.Validator) error {
	_, err := service.userRepository.FindByEmail(context, input.Email)
	switch {
	case err == nil:
		validator.Add(emailTaken.Field, emailTaken.Message)
	case !apperr.IsNotFound(err):
		return fmt.Errorf("auth_service_email_lookup_failed: %w", err)
	}

	if input.Username == "" {
		return nil
	}

	_, err = service.userRepository.FindByUsername(context, input.Username)
	switch {
	case err == nil:
		validator.Add(usernameTaken.Field, usernameTaken.Message)
	case !apperr.IsNotFound(err):
		return fmt.Errorf("auth_service_username_lookup_failed: %w", err)
	}

	return nil
}

// publish hands an event to the notifier. Failures are logged only.
func (service *Service) publish(context context.Context, event *events.Event) {
	if err := service.notifier.Publish(context, event); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "notifier_publish_failed",
			slog.String("event_type", event.Type),
			slog.Any("error", err),
		)
	}
}

// issueToken generates and stores a single-use token for userID.
func (service *Service) issueToken(context context.Context, repository TokenRepository, userID string, ttl time.Duration) (string, error) {
	token, err := sec.GenerateSecureToken(OneTimeTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_token_failed: %w", err)
	}
	if err := repository.Set(context, token, userID, ttl); err != nil {
		return "", fmt.Errorf("auth_service_store_token_failed: %w", err)
	}
	return token, nil
}

// # Directory Lookups

// FindByID returns a user by ID.
func (service *Service) FindByID(context context.Context, id string) (*User, error) {
	return service.userRepository.FindByID(context, id)
}

/*
Admin returns the single account carrying the admin flag.

Returns:
  - *User: The admin account
  - error: ErrMissingAdminAccount when no account is admin
*/
func (service *Service) Admin(context context.Context) (*User, error) {
	admin, err := service.userRepository.FindAdmin(context)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, ErrMissingAdminAccount
		}
		return nil, fmt.Errorf("auth_service_find_admin_failed: %w", err)
	}
	return admin, nil
}

/*
GrantAdmin moves the admin flag to userID.

Description: The previous admin is cleared and the new one set in one
transaction, so readers never observe zero or two admins.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: The new admin
  - error: NotFound if the user does not exist
*/
func (service *Service) GrantAdmin(ctx context.Context, userID string) (*User, error) {
	var admin *User

	err := service.txRunner.RunInTx(ctx, func(txContext context.Context) error {
		user, err := service.userRepository.FindByID(txContext, userID)
		if err != nil {
			return err
		}
		if err := service.userRepository.ClearAdmins(txContext); err != nil {
			return err
		}
		if err := service.userRepository.SetAdmin(txContext, user.ID, true); err != nil {
			return err
		}
		user.Admin = true
		admin = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth_service_grant_admin_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "admin_granted", slog.String("user_id", admin.ID))
	return admin, nil
}

// GrantAdminByEmail resolves email and calls [Service.GrantAdmin].
func (service *Service) GrantAdminByEmail(context context.Context, email string) (*User, error) {
	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return service.GrantAdmin(context, user.ID)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Email or username
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Looks the account up by email (case-insensitive) or username,
compares the bcrypt hash, records the sign-in and opens a refresh session.
Unknown accounts and wrong passwords produce the same error.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	login := strings.TrimSpace(input.Login)

	user, err := service.userRepository.FindByEmail(context, login)
	if apperr.IsNotFound(err) {
		user, err = service.userRepository.FindByUsername(context, login)
	}
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	now := service.now()
	if err := service.userRepository.RecordSignIn(context, user.ID, input.IPAddress, now); err != nil {
		return nil, fmt.Errorf("auth_service_record_sign_in_failed: %w", err)
	}
	user.SignInCount++
	user.LastSignInAt, user.CurrentSignInAt = user.CurrentSignInAt, &now

	return service.openSession(context, user, input.UserAgent, input.IPAddress)
}

// openSession signs an access token and persists a new refresh session.
func (service *Service) openSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Name, string(user.Role()), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := service.now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
Logout permanently revokes the session behind refreshToken.

An unknown or already revoked token is not an error.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements refresh token rotation.

Description: The presented token's session is revoked and a new access and
refresh token pair is issued, so each refresh token works once.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User no longer exists")
	}

	return service.openSession(context, user, userAgent, ipAddress)
}

// PurgeExpiredSessions deletes expired refresh sessions. It runs on a schedule.
func (service *Service) PurgeExpiredSessions(context context.Context) error {
	deleted, err := service.sessionRepository.DeleteExpired(context)
	if err != nil {
		return fmt.Errorf("auth_service_purge_sessions_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "expired_sessions_purged", slog.Int64("count", deleted))
	return nil
}

// # Password Recovery

/*
RequestPasswordReset starts the forgot-password flow.

Description: When the email belongs to an account, a reset token is stored
and announced through a user.password_reset_requested event. Unknown emails
succeed silently so the endpoint cannot be used to probe for accounts.
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, strings.TrimSpace(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("auth_service_reset_lookup_failed: %w", err)
	}

	token, err := service.issueToken(context, service.resetTokenRepository, user.ID, ResetTokenTTL)
	if err != nil {
		return err
	}

	service.publish(context, events.NewEvent(EventPasswordResetRequested, oneTimeTokenData{UserID: user.ID, Email: user.Email, Token: token}))
	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, validates and hashes the new password,
updates the account and revokes every session of the user.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string
  - confirmation: string

Returns:
  - error: NotFound for a stale token, ValidationError, or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword, confirmation string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	validatePassword(validator, FieldPassword, newPassword).
		Confirmation(FieldPassword, newPassword, confirmation)
	if err := validator.Err(); err != nil {
		return err
	}

	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	if err := service.setPassword(context, userID, newPassword); err != nil {
		return err
	}

	if err := service.sessionRepository.RevokeAll(context, userID); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "revoke_sessions_failed", slog.String("user_id", userID), slog.Any("error", err))
	}
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}

/*
ChangePassword lets an authenticated user replace their password.

Description: The current password must match. Every other refresh session is
revoked; the one presenting currentRefreshToken stays signed in.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword)
	validatePassword(validator, FieldNewPassword, newPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	if err := service.setPassword(context, userID, newPassword); err != nil {
		return err
	}

	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(currentRefreshToken))
	if err == nil {
		err = service.sessionRepository.RevokeOthers(context, userID, session.ID)
	} else {
		err = service.sessionRepository.RevokeAll(context, userID)
	}
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "revoke_sessions_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	return nil
}

func (service *Service) setPassword(context context.Context, userID, password string) error {
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_service_password_hash_failed: %w", err)
	}
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_password_update_failed: %w", err)
	}
	return nil
}

// # Email Confirmation

// VerifyEmail confirms the account behind a confirmation token.
func (service *Service) VerifyEmail(context context.Context, token string) error {
	userID, err := service.confirmTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	if err := service.userRepository.MarkConfirmed(context, userID, service.now()); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	_ = service.confirmTokenRepository.Delete(context, token)
	return nil
}
