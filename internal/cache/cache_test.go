package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type payload struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "stats:1", &payload{Name: "chai", Count: 3}, time.Minute))

	var got payload
	require.True(t, c.Get(ctx, "stats:1", &got))
	assert.Equal(t, "chai", got.Name)
	assert.Equal(t, int64(3), got.Count)

	require.NoError(t, c.Delete(ctx, "stats:1"))
	assert.False(t, c.Get(ctx, "stats:1", &got))
}

func TestRedisCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", &payload{Name: "x"}, time.Second))

	mr.FastForward(2 * time.Second)

	var got payload
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestRedisCacheMissReturnsFalse(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	var got payload
	assert.False(t, c.Get(context.Background(), "absent", &got))
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", &payload{Name: "mem", Count: 1}, time.Minute))

	var got payload
	require.True(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "mem", got.Name)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, c.Get(ctx, "k", &got))
	assert.NoError(t, c.Health(ctx))
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", &payload{Name: "mem"}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got payload
	assert.False(t, c.Get(ctx, "k", &got))
}
