// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/constants"
	"github.com/mc-aweaver/techradar-1/internal/platform/database/schema"
	"github.com/mc-aweaver/techradar-1/internal/platform/events"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
	"github.com/mc-aweaver/techradar-1/internal/users/auth"
)

func validInput() auth.RegisterInput {
	return auth.RegisterInput{
		Name:                 "Ada Lovelace",
		Email:                "ada@example.com",
		Password:             "analytical",
		PasswordConfirmation: "analytical",
	}
}

// failedFields returns the field names reported by a validation error.
func failedFields(t *testing.T, err error) []string {
	t.Helper()
	require.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)

	var fields []string
	for _, detail := range apperr.As(err).Details {
		fields = append(fields, detail.Field)
	}
	return fields
}

func tokenOf(t *testing.T, event *events.Event) string {
	t.Helper()
	raw, err := json.Marshal(event.Data)
	require.NoError(t, err)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload.Token
}

// # Registration

func TestRegister_Success(t *testing.T) {
	f := newFixture()

	user, err := f.service.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.False(t, user.Admin)
	assert.NotEqual(t, "analytical", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("analytical", f.users.get(user.ID).PasswordHash))

	created := f.notifier.ofType(constants.EventUserCreated)
	require.Len(t, created, 1)
	assert.Equal(t, events.UserCreatedData{UserID: user.ID, Name: "Ada Lovelace", Email: "ada@example.com"}, created[0].Data)

	confirmations := f.notifier.ofType(auth.EventConfirmationRequested)
	require.Len(t, confirmations, 1)
	userID, err := f.confirms.Get(context.Background(), tokenOf(t, confirmations[0]))
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestRegister_PasswordNeverSerialized(t *testing.T) {
	f := newFixture()

	user, err := f.service.Register(context.Background(), validInput())
	require.NoError(t, err)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "analytical")
	assert.NotContains(t, string(raw), user.PasswordHash)
}

func TestRegister_ValidEmails(t *testing.T) {
	for _, email := range []string{"user@foo.com", "THE_USER@foo.bar.org", "first.last@foo.jp"} {
		t.Run(email, func(t *testing.T) {
			input := validInput()
			input.Email = email

			_, err := newFixture().service.Register(context.Background(), input)
			assert.NoError(t, err)
		})
	}
}

func TestRegister_InvalidEmails(t *testing.T) {
	for _, email := range []string{"user@foo,com", "user_at_foo.org", "example.user@foo.", ""} {
		t.Run(email, func(t *testing.T) {
			input := validInput()
			input.Email = email

			_, err := newFixture().service.Register(context.Background(), input)
			assert.Contains(t, failedFields(t, err), auth.FieldEmail)
		})
	}
}

func TestRegister_EmailTakenIgnoringCase(t *testing.T) {
	f := newFixture()
	_, err := f.service.Register(context.Background(), validInput())
	require.NoError(t, err)

	second := validInput()
	second.Email = "ADA@Example.COM"

	_, err = f.service.Register(context.Background(), second)
	assert.Equal(t, []string{auth.FieldEmail}, failedFields(t, err))
	assert.Len(t, f.notifier.ofType(constants.EventUserCreated), 1)
}

func TestRegister_UsernameTaken(t *testing.T) {
	f := newFixture()
	first := validInput()
	first.Username = "ada"
	_, err := f.service.Register(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.Email = "grace@example.com"
	second.Username = "ada"

	_, err = f.service.Register(context.Background(), second)
	assert.Equal(t, []string{auth.FieldUsername}, failedFields(t, err))
}

func TestRegister_UniqueViolationBecomesValidationError(t *testing.T) {
	f := newFixture()
	f.users.createErr = &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: schema.EmailLowerKey}

	_, err := f.service.Register(context.Background(), validInput())

	assert.Equal(t, []string{auth.FieldEmail}, failedFields(t, err))
	assert.Empty(t, f.notifier.ofType(constants.EventUserCreated))
}

func TestRegister_StorageFailure(t *testing.T) {
	f := newFixture()
	f.users.createErr = errors.New("connection reset")

	_, err := f.service.Register(context.Background(), validInput())

	require.Error(t, err)
	assert.False(t, apperr.IsValidation(err))
	assert.Empty(t, f.notifier.ofType(constants.EventUserCreated))
}

func TestRegister_PasswordRules(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		confirmation string
		wantField    string
	}{
		{"blank", "", "", auth.FieldPassword},
		{"mismatch", "analytical", "analytic4l", auth.FieldPasswordConfirmation},
		{"seven_chars", "1234567", "1234567", auth.FieldPassword},
		{"eight_chars", "12345678", "12345678", ""},
		{"over_bcrypt_limit", strings.Repeat("p", 73), strings.Repeat("p", 73), auth.FieldPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Password = tt.password
			input.PasswordConfirmation = tt.confirmation

			_, err := newFixture().service.Register(context.Background(), input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, failedFields(t, err), tt.wantField)
		})
	}
}

func TestRegister_BlankName(t *testing.T) {
	input := validInput()
	input.Name = "   "

	_, err := newFixture().service.Register(context.Background(), input)
	assert.Equal(t, []string{auth.FieldName}, failedFields(t, err))
}

func TestRegister_ReportsEveryField(t *testing.T) {
	_, err := newFixture().service.Register(context.Background(), auth.RegisterInput{})

	fields := failedFields(t, err)
	assert.Contains(t, fields, auth.FieldName)
	assert.Contains(t, fields, auth.FieldEmail)
	assert.Contains(t, fields, auth.FieldPassword)
}

func TestRegister_NotifierFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.notifier.err = events.ErrQueueFull

	user, err := f.service.Register(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotNil(t, f.users.get(user.ID))
}

// # Admin

func TestAdmin_Missing(t *testing.T) {
	f := newFixture()
	_, err := f.service.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, err = f.service.Admin(context.Background())
	assert.ErrorIs(t, err, auth.ErrMissingAdminAccount)
	assert.True(t, apperr.HasCode(err, "MISSING_ADMIN_ACCOUNT"))
}

func TestAdmin_ReturnsFlaggedUser(t *testing.T) {
	f := newFixture()
	user, err := f.service.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.NoError(t, f.users.SetAdmin(context.Background(), user.ID, true))

	admin, err := f.service.Admin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.ID, admin.ID)
}

func TestGrantAdmin_MovesFlag(t *testing.T) {
	f := newFixture()
	ada, err := f.service.Register(context.Background(), validInput())
	require.NoError(t, err)
	graceInput := validInput()
	graceInput.Email = "grace@example.com"
	grace, err := f.service.Register(context.Background(), graceInput)
	require.NoError(t, err)

	_, err = f.service.GrantAdmin(context.Background(), ada.ID)
	require.NoError(t, err)
	admin, err := f.service.GrantAdminByEmail(context.Background(), "GRACE@example.com")
	require.NoError(t, err)

	assert.Equal(t, grace.ID, admin.ID)
	assert.False(t, f.users.get(ada.ID).Admin)
	assert.True(t, f.users.get(grace.ID).Admin)
}

func TestGrantAdmin_UnknownUser(t *testing.T) {
	_, err := newFixture().service.GrantAdmin(context.Background(), "0190b8a4-0000-7000-8000-000000000000")
	assert.True(t, apperr.IsNotFound(err))
}

// # Sessions

func register(t *testing.T, f *fixture) *auth.User {
	t.Helper()
	input := validInput()
	input.Username = "ada"
	user, err := f.service.Register(context.Background(), input)
	require.NoError(t, err)
	return user
}

func TestLogin_ByEmailOrUsername(t *testing.T) {
	f := newFixture()
	user := register(t, f)

	for _, login := range []string{"ADA@example.com", "ada"} {
		session, err := f.service.Login(context.Background(), auth.LoginInput{Login: login, Password: "analytical", IPAddress: "10.0.0.1"})
		require.NoError(t, err, login)
		assert.Equal(t, "access:"+user.ID+":member", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
	}

	stored := f.users.get(user.ID)
	assert.Equal(t, 2, stored.SignInCount)
	require.NotNil(t, stored.CurrentSignInIP)
	assert.Equal(t, "10.0.0.1", *stored.CurrentSignInIP)
	assert.Equal(t, 2, f.sessions.active())
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newFixture()
	register(t, f)

	for _, input := range []auth.LoginInput{
		{Login: "ada@example.com", Password: "wrong-password"},
		{Login: "nobody@example.com", Password: "analytical"},
	} {
		_, err := f.service.Login(context.Background(), input)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized), "%+v", input)
	}
}

func TestRefreshSession_Rotates(t *testing.T) {
	f := newFixture()
	register(t, f)
	session, err := f.service.Login(context.Background(), auth.LoginInput{Login: "ada", Password: "analytical"})
	require.NoError(t, err)

	rotated, err := f.service.RefreshSession(context.Background(), session.RefreshToken, "test", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	_, err = f.service.RefreshSession(context.Background(), session.RefreshToken, "test", "127.0.0.1")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestLogout_RevokesSession(t *testing.T) {
	f := newFixture()
	register(t, f)
	session, err := f.service.Login(context.Background(), auth.LoginInput{Login: "ada", Password: "analytical"})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))
	assert.Equal(t, 0, f.sessions.active())
	assert.NoError(t, f.service.Logout(context.Background(), "unknown-token"))
}

// # Password Recovery

func TestPasswordReset_Flow(t *testing.T) {
	f := newFixture()
	user := register(t, f)
	_, err := f.service.Login(context.Background(), auth.LoginInput{Login: "ada", Password: "analytical"})
	require.NoError(t, err)

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "ada@example.com"))
	requested := f.notifier.ofType(auth.EventPasswordResetRequested)
	require.Len(t, requested, 1)
	token := tokenOf(t, requested[0])

	err = f.service.ResetPassword(context.Background(), token, "short", "short")
	assert.Contains(t, failedFields(t, err), auth.FieldPassword)

	require.NoError(t, f.service.ResetPassword(context.Background(), token, "difference-engine", "difference-engine"))
	assert.True(t, sec.CheckPasswordHash("difference-engine", f.users.get(user.ID).PasswordHash))
	assert.Equal(t, 0, f.sessions.active())

	err = f.service.ResetPassword(context.Background(), token, "difference-engine", "difference-engine")
	assert.True(t, apperr.IsNotFound(err))
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.notifier.ofType(auth.EventPasswordResetRequested))
}

func TestChangePassword_KeepsCurrentSession(t *testing.T) {
	f := newFixture()
	user := register(t, f)
	current, err := f.service.Login(context.Background(), auth.LoginInput{Login: "ada", Password: "analytical"})
	require.NoError(t, err)
	_, err = f.service.Login(context.Background(), auth.LoginInput{Login: "ada", Password: "analytical"})
	require.NoError(t, err)

	err = f.service.ChangePassword(context.Background(), user.ID, "wrong-password", "difference-engine", current.RefreshToken)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	require.NoError(t, f.service.ChangePassword(context.Background(), user.ID, "analytical", "difference-engine", current.RefreshToken))
	assert.Equal(t, 1, f.sessions.active())

	_, err = f.service.RefreshSession(context.Background(), current.RefreshToken, "", "")
	assert.NoError(t, err)
}

// # Email Confirmation

func TestVerifyEmail(t *testing.T) {
	f := newFixture()
	user := register(t, f)
	token := tokenOf(t, f.notifier.ofType(auth.EventConfirmationRequested)[0])

	require.NoError(t, f.service.VerifyEmail(context.Background(), token))
	assert.True(t, f.users.get(user.ID).Confirmed())

	assert.True(t, apperr.IsNotFound(f.service.VerifyEmail(context.Background(), token)))
}

func TestPurgeExpiredSessions(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.service.PurgeExpiredSessions(context.Background()))
}
