// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the part of *redis.Client the publisher needs.
type RedisClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher publishes every event as JSON on a Redis channel.
type RedisPublisher struct {
	client  RedisClient
	channel string
}

// NewRedisPublisher creates a subscriber publishing on channel.
func NewRedisPublisher(client RedisClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Name implements Subscriber.
func (publisher *RedisPublisher) Name() string { return "redis:" + publisher.channel }

// Handle implements Subscriber.
func (publisher *RedisPublisher) Handle(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events_redis_marshal_failed: %w", err)
	}

	if err := publisher.client.Publish(ctx, publisher.channel, payload).Err(); err != nil {
		return fmt.Errorf("events_redis_publish_failed: %w", err)
	}

	return nil
}
