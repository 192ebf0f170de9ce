package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// GetOrLoadJSON 按 JSON 缓存 *T；ttl<=0 或缓存未启用时直接回源。
// 缓存内容无法解码（结构体字段变更后的旧数据）时删除该 key 并回源一次。
func GetOrLoadJSON[T any](c *Cache, ctx context.Context, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	if c == nil || ttl <= 0 {
		return load(ctx)
	}

	var fresh *T
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		fresh = v
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		return fresh, nil
	}

	out := new(T)
	if err := json.Unmarshal(b, out); err != nil {
		c.Invalidate(ctx, key)
		v, lerr := load(ctx)
		if lerr != nil {
			return nil, errors.Wrap(err, "decode cached "+key)
		}
		return v, nil
	}
	return out, nil
}
