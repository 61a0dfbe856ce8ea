// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package events fans domain events out to subscribers.

Services hold a [Notifier] and call Publish once their write has committed.
The production Notifier is a [Dispatcher]: a bounded queue drained by a fixed
set of worker goroutines, each event handed to every registered [Subscriber].

Subscribers:

  - [RedisPublisher]: PUBLISH to a channel other processes listen on.
  - [LogSubscriber]: one structured log line per event.
*/
package events

import (
	"context"
	"time"
)

// Event is a domain occurrence delivered to subscribers.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent stamps a new event with the current UTC time.
func NewEvent(eventType string, data any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// UserCreatedData is the payload of the user.created event.
type UserCreatedData struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Notifier accepts events for asynchronous delivery.
type Notifier interface {
	Publish(ctx context.Context, event *Event) error
}

// Subscriber receives every event accepted by a [Dispatcher].
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event *Event) error
}

// SubscriberFunc adapts a plain function to [Subscriber].
type SubscriberFunc struct {
	Label string
	Fn    func(ctx context.Context, event *Event) error
}

// Name implements Subscriber.
func (s SubscriberFunc) Name() string { return s.Label }

// Handle implements Subscriber.
func (s SubscriberFunc) Handle(ctx context.Context, event *Event) error { return s.Fn(ctx, event) }

// Discard is a Notifier that drops every event.
type Discard struct{}

// Publish implements Notifier.
func (Discard) Publish(context.Context, *Event) error { return nil }
