package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const IdempotencyHeader = "Idempotency-Key"

// Idempotency 用 SETNX 占位；同一 key 在 TTL 内只能被占用一次
type Idempotency struct {
	RDB    redis.Cmdable
	TTL    time.Duration
	Prefix string
}

func NewIdempotency(c *Cache, ttl time.Duration) *Idempotency {
	if !c.Enabled() {
		return nil
	}
	return &Idempotency{RDB: c.RDB, TTL: ttl, Prefix: "idempotency:"}
}

func (i *Idempotency) Claim(ctx context.Context, key string) (bool, error) {
	return i.RDB.SetNX(ctx, i.Prefix+key, "1", i.TTL).Result()
}
