package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis indisponível em %s: %v", addr, err)
	}

	c := New(client, Config{Prefix: "test-pdv:", TTL: time.Minute})
	t.Cleanup(func() {
		_ = c.DeletePattern(context.Background(), "*")
		_ = c.Close()
	})
	return c
}

type report struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func TestRedisCache_SetGet(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	var got report
	found, err := c.Get(ctx, "t1:dashboard", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "t1:dashboard", report{Total: decimal.RequireFromString("10.50"), Count: 2}))

	found, err = c.Get(ctx, "t1:dashboard", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "10.50", got.Total.StringFixed(2))
	assert.Equal(t, 2, got.Count)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "t1:a", report{Count: 1}))
	require.NoError(t, c.Set(ctx, "t1:b", report{Count: 2}))
	require.NoError(t, c.Set(ctx, "t2:a", report{Count: 3}))

	require.NoError(t, c.DeletePattern(ctx, "t1:*"))

	var got report
	found, _ := c.Get(ctx, "t1:a", &got)
	assert.False(t, found)
	found, _ = c.Get(ctx, "t2:a", &got)
	assert.True(t, found)
}
