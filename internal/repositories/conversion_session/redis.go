package conversionsession

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/lss-foundry/internal/redis"
)

// Key pattern: conversion_session:{id}
const sessionKeyPrefix = "conversion_session:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for conversion sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new session with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	session := input.Session.Clone()
	session.CreatedAt = r.clock.Now()
	session.ExpiresAt = session.CreatedAt.Add(ttl)

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	created, err := r.client.SetNX(ctx, r.buildKey(session.ID), sessionJSON, ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to store session in Redis")
	}
	if !created {
		return nil, errors.FailedPrecondition(errAlreadyExists).WithMeta("session_id", session.ID)
	}

	slog.DebugContext(ctx, "conversion session created",
		"session_id", session.ID,
		"expires_at", session.ExpiresAt)

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := r.buildKey(input.ID)

	sessionJSON, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get session from Redis")
	}

	var session Session
	if err := json.Unmarshal(sessionJSON, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	// Redis TTLs are second-granular; the stored expiry is authoritative
	if !r.clock.Now().Before(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound(errSessionExpired).WithMeta("session_id", input.ID)
	}

	return &GetOutput{Session: &session}, nil
}

// Update replaces an existing session, keeping its remaining TTL
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	if !now.Before(input.Session.ExpiresAt) {
		return nil, errors.NotFound(errSessionExpired).WithMeta("session_id", input.Session.ID)
	}
	remainingTTL := input.Session.ExpiresAt.Sub(now)

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	updated, err := r.client.SetXX(ctx, r.buildKey(input.Session.ID), sessionJSON, remainingTTL).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update session in Redis")
	}
	if !updated {
		return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.Session.ID)
	}

	return &UpdateOutput{Session: input.Session.Clone()}, nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	removed, err := r.client.Del(ctx, r.buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete session from Redis")
	}
	if removed == 0 {
		return nil, errors.NotFound(errNotFound).WithMeta("session_id", input.ID)
	}

	return &DeleteOutput{}, nil
}

// buildKey creates the Redis key for a session
func (r *redisRepository) buildKey(id string) string {
	return sessionKeyPrefix + id
}
