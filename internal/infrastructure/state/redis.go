// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package state

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-recipe-search/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-recipe-search/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by RedisStore
const DefaultKeyPrefix = "recipe-search:"

const (
	tokenKey    = "token"
	cursorKey   = "cursor"
	resultsKey  = "results"
	selectedKey = "selected"
)

var _ port.StateStore = (*RedisStore)(nil)

// RedisStore keeps client state in Redis so several terminals share one
// session.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) get(ctx context.Context, name string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(name)).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewServiceUnavailable("failed to read "+name+" from redis", err)
	}
	return value, true, nil
}

func (s *RedisStore) set(ctx context.Context, name, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(name), value, ttl).Err(); err != nil {
		return errors.NewServiceUnavailable("failed to write "+name+" to redis", err)
	}
	return nil
}

// Token implements port.SessionReader
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, _, err := s.get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return checkToken(ctx, token, s.now())
}

// SaveToken stores the session token; a JWT expires from Redis together
// with its exp claim
func (s *RedisStore) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.NewValidation("token is required")
	}

	var ttl time.Duration
	if claims, err := auth.ParseClaims(token); err == nil && claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return errors.NewValidation("token has already expired")
		}
	}
	return s.set(ctx, tokenKey, token, ttl)
}

// ClearToken signs the session out and forgets the last search
func (s *RedisStore) ClearToken(ctx context.Context) error {
	keys := []string{s.key(tokenKey), s.key(cursorKey), s.key(resultsKey), s.key(selectedKey)}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.NewServiceUnavailable("failed to clear session in redis", err)
	}
	return nil
}

// LoadCursor returns the sealed cursor of the last loaded page
func (s *RedisStore) LoadCursor(ctx context.Context) (string, error) {
	cursor, ok, err := s.get(ctx, cursorKey)
	if err != nil {
		return "", err
	}
	if !ok || cursor == "" {
		return "", errors.NewNotFound("no search cursor stored")
	}
	return cursor, nil
}

// SaveCursor stores the sealed cursor of the last loaded page
func (s *RedisStore) SaveCursor(ctx context.Context, cursor string) error {
	return s.set(ctx, cursorKey, cursor, 0)
}

// ReplaceResults implements port.ResultStore with a single SET, so readers
// never observe a partial collection
func (s *RedisStore) ReplaceResults(ctx context.Context, results []model.Recipe) error {
	data, err := json.Marshal(toRecords(results))
	if err != nil {
		return errors.NewUnexpected("failed to encode results", err)
	}
	return s.set(ctx, resultsKey, string(data), 0)
}

// Results returns the last published results
func (s *RedisStore) Results(ctx context.Context) ([]model.Recipe, error) {
	data, ok, err := s.get(ctx, resultsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Recipe{}, nil
	}

	var records []recipeRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, errors.NewUnexpected("stored results are corrupt", err)
	}
	return fromRecords(records), nil
}

// SetSelectedRecipe implements port.ResultStore
func (s *RedisStore) SetSelectedRecipe(ctx context.Context, recipeID string) error {
	return s.set(ctx, selectedKey, recipeID, 0)
}

// SelectedRecipe returns the last selected recipe id
func (s *RedisStore) SelectedRecipe(ctx context.Context) (string, error) {
	recipeID, _, err := s.get(ctx, selectedKey)
	return recipeID, err
}

// IsReady pings Redis
func (s *RedisStore) IsReady(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.NewServiceUnavailable("redis is not reachable", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// NewRedisStore creates a Redis backed store from a redis:// URL. An empty
// prefix uses DefaultKeyPrefix.
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	slog.InfoContext(ctx, "redis state store initialized",
		"addr", opts.Addr,
		"db", opts.DB,
	)

	return &RedisStore{
		client: redis.NewClient(opts),
		prefix: prefix,
		now:    time.Now,
	}, nil
}
