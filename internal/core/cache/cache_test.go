package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct{ Total int }

func TestGetOrLoadJSON_NilCacheLoadsEveryTime(t *testing.T) {
	var c *Cache
	calls := 0
	load := func(context.Context) (*stats, error) {
		calls++
		return &stats{Total: calls}, nil
	}

	v, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Total)

	v, err = GetOrLoadJSON(c, context.Background(), "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Total)
}

func TestNilCache_NoOps(t *testing.T) {
	var c *Cache
	c.Invalidate(context.Background(), "a")
	assert.NoError(t, c.Close())

	b, err := c.GetOrLoad(context.Background(), "k", time.Second, func(context.Context) ([]byte, error) { return []byte("x"), nil })
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))
}

func TestGetOrLoadJSON_ZeroTTLSkipsRedis(t *testing.T) {
	// 地址不可达：只要不访问 redis 就不会出错
	c := New("127.0.0.1:1", "", 0, "t:")
	t.Cleanup(func() { _ = c.Close() })

	calls := 0
	for i := 0; i < 2; i++ {
		v, err := GetOrLoadJSON(c, context.Background(), "k", 0, func(context.Context) (*stats, error) {
			calls++
			return &stats{Total: calls}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, calls, v.Total)
	}
	assert.Equal(t, 2, calls)
}
