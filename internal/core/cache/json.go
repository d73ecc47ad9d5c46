package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

var nullJSON = []byte("null")

// GetOrLoadJSON 读穿缓存的 JSON 版本；load 返回 nil 时缓存 "null" 作为负缓存。
// 缓存里的旧数据解码失败（结构变更后）则删 key 并直接回源。
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	out, err := decodeJSON[T](b)
	if err == nil {
		return out, nil
	}
	_ = c.Delete(ctx, key)
	return load(ctx)
}

func decodeJSON[T any](b []byte) (*T, error) {
	if bytes.Equal(b, nullJSON) {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
