package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNopCategoryCache(t *testing.T) {
	var c CategoryCache = NopCategoryCache{}
	ctx := context.Background()

	c.Set(ctx, []string{"Tools"})
	got, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, got)
	c.Invalidate(ctx)
}

func TestRedisCategoryCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rdb, err := NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer rdb.Close()

	c := NewRedisCategoryCache(rdb, time.Minute, zap.NewNop())
	ctx := context.Background()
	c.Invalidate(ctx)

	_, ok := c.Get(ctx)
	assert.False(t, ok)

	c.Set(ctx, []string{"Food", "Tools"})
	got, ok := c.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"Food", "Tools"}, got)

	c.Invalidate(ctx)
	_, ok = c.Get(ctx)
	assert.False(t, ok)
}
