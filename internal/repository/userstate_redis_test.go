package repository

import (
	"context"
	"testing"

	"dining-concierge/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisUserState_GetUnknownUser(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisUserStateRepository(client, "user_state:")

	mock.ExpectGet("user_state:u1").RedisNil()

	state, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, state)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisUserState_GetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisUserStateRepository(client, "user_state:")

	mock.ExpectGet("user_state:u1").SetErr(assert.AnError)

	_, err := repo.Get(context.Background(), "u1")
	assert.Error(t, err)
}

func TestRedisUserState_UpsertOverwrites(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisUserStateRepository(client, "user_state:")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, models.UserState{UserID: "u1", RecentRecommendation: "first"}))
	require.NoError(t, repo.Upsert(ctx, models.UserState{UserID: "u1", RecentRecommendation: "second"}))

	state, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "second", state.RecentRecommendation)
	assert.Len(t, mr.Keys(), 1)
	assert.Zero(t, mr.TTL("user_state:u1"))
}
