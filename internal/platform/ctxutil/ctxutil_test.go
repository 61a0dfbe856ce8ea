// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mc-aweaver/techradar-1/internal/platform/ctxutil"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "techradar"))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that AuthClaims can be stored in context.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AuthClaims{
		UserID: "user-123",
		Name:   "Ada Lovelace",
		Role:   string(sec.RoleAdmin),
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithAuthUser(ctx, claims)
	retrieved := ctxutil.GetAuthUser(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "Ada Lovelace", retrieved.Name)
	assert.Equal(t, "user-123", ctxutil.GetUserID(ctx))
	assert.True(t, ctxutil.IsAdmin(ctx))
}

/*
TestContext_Anonymous verifies the helpers degrade safely without claims.
*/
func TestContext_Anonymous(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetUserID(ctx))
	assert.False(t, ctxutil.IsAdmin(ctx))

	member := ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "u-2", Role: string(sec.RoleMember)})
	assert.False(t, ctxutil.IsAdmin(member))
}
