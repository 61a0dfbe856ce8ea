// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// Keys use an unexported type so that values stored by third-party packages
// under the same string can never collide with ours.
package ctxkey

type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the authenticated user claim ([sec.AuthClaims]).
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
