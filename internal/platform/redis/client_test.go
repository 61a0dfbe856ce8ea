// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package redis_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/mc-aweaver/techradar-1/internal/platform/redis"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) *goredis.StatusCmd {
	cmd := goredis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func TestPing(t *testing.T) {
	assert.NoError(t, redis.Ping(context.Background(), fakePinger{}))
	assert.Error(t, redis.Ping(context.Background(), fakePinger{err: errors.New("refused")}))
}

func TestNewClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := redis.NewClient(context.Background(), "not-a-redis-url", logger)
	assert.Error(t, err)
}
