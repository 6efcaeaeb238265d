package cache

import (
	"context"
	"testing"

	"quizcraft/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	for _, address := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		client, err := NewRedisClient(ctx, config.RedisConfig{Address: address})
		require.NoError(t, err, address)
		require.NoError(t, client.Set(ctx, RateLimitKey("10.0.0.1"), "1", 0).Err())
		assert.NoError(t, client.Close())
	}
	assert.True(t, mr.Exists("quizcraft:ratelimit:client:10.0.0.1"))
}

func TestNewRedisClient_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewRedisClient(ctx, config.RedisConfig{})
	assert.Error(t, err)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(ctx, config.RedisConfig{Address: addr})
	assert.Error(t, err)
}
