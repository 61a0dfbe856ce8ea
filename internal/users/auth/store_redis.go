// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mc-aweaver/techradar-1/internal/platform/apperr"
	"github.com/mc-aweaver/techradar-1/internal/platform/constants"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
)

// RedisKV is the subset of *redis.Client used by token repositories.
type RedisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisTokenRepository implements [TokenRepository] for one kind of
// single-use token. Keys are the SHA-256 of the token under a fixed prefix,
// so a Redis dump never exposes usable tokens.
type RedisTokenRepository struct {
	client RedisKV
	prefix string
	label  string
}

// NewResetTokenRepository creates the Redis store for password reset tokens.
func NewResetTokenRepository(client RedisKV) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: constants.RedisPrefixResetToken, label: "Reset token"}
}

// NewVerificationTokenRepository creates the Redis store for email confirmation tokens.
func NewVerificationTokenRepository(client RedisKV) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, prefix: constants.RedisPrefixVerifyToken, label: "Verification token"}
}

func (repository *RedisTokenRepository) key(token string) string {
	return repository.prefix + sec.HashToken(token)
}

/*
Set stores a token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, repository.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_token_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the userID for a given token.

Returns:
  - string: Original UserID
  - error: apperr.NotFound when the token is absent or expired
*/
func (repository *RedisTokenRepository) Get(context context.Context, token string) (string, error) {
	userID, err := repository.client.Get(context, repository.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound(repository.label)
		}
		return "", fmt.Errorf("redis_token_get_failed: %w", err)
	}
	return userID, nil
}

// Delete removes the token after successful use.
func (repository *RedisTokenRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, repository.key(token)).Err(); err != nil {
		return fmt.Errorf("redis_token_delete_failed: %w", err)
	}
	return nil
}
