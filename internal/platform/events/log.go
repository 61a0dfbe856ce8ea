// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package events

import (
	"context"
	"log/slog"
)

// LogSubscriber writes one structured line per event. Payloads are not
// logged since some carry single-use tokens.
type LogSubscriber struct {
	logger *slog.Logger
}

// NewLogSubscriber creates a log subscriber.
func NewLogSubscriber(logger *slog.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger}
}

// Name implements Subscriber.
func (subscriber *LogSubscriber) Name() string { return "log" }

// Handle implements Subscriber.
func (subscriber *LogSubscriber) Handle(ctx context.Context, event *Event) error {
	subscriber.logger.InfoContext(ctx, "domain_event",
		slog.String("event_type", event.Type),
		slog.Time("timestamp", event.Timestamp),
	)
	return nil
}
