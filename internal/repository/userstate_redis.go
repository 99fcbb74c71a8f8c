package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dining-concierge/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisUserStateRepository stores each user's state as a JSON string under prefix+userId.
type RedisUserStateRepository struct {
	client redis.Cmdable
	prefix string
}

func NewRedisUserStateRepository(client redis.Cmdable, prefix string) *RedisUserStateRepository {
	return &RedisUserStateRepository{client: client, prefix: prefix}
}

func (r *RedisUserStateRepository) key(userID string) string {
	return r.prefix + userID
}

func (r *RedisUserStateRepository) Get(ctx context.Context, userID string) (*models.UserState, error) {
	raw, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key(userID), err)
	}

	var state models.UserState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode user state: %w", err)
	}
	return &state, nil
}

// Upsert writes the state without expiry.
func (r *RedisUserStateRepository) Upsert(ctx context.Context, state models.UserState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode user state: %w", err)
	}
	if err := r.client.Set(ctx, r.key(state.UserID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(state.UserID), err)
	}
	return nil
}
