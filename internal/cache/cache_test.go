package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	if os.Getenv("TEST_REDIS") != "true" {
		t.Skip("Skipping: TEST_REDIS not set")
	}

	ctx := context.Background()

	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}

	c, err := NewRedisCache(ctx, addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)

	t.Cleanup(func() {
		iter := c.Client().Scan(ctx, 0, "test:*", 0).Iterator()
		for iter.Next(ctx) {
			_ = c.Client().Del(ctx, iter.Val())
		}
		_ = c.Close()
	})

	return c
}

func TestRedisCache_SetGet(t *testing.T) {
	c := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "test:predict:abc", []byte("39523500"), time.Minute))

	val, err := c.Get(ctx, "test:predict:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("39523500"), val)
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	c := setupTestRedis(t)

	_, err := c.Get(context.Background(), "test:predict:missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Ping(t *testing.T) {
	c := setupTestRedis(t)

	assert.NoError(t, c.Ping(context.Background()))
}
