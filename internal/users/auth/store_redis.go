package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olekker/ratebase/internal/platform/constants"
)

// RedisCodeLedger records consumed confirmation codes in Redis. The marker
// carries the code's remaining lifetime as its TTL, so the set cleans
// itself up.
type RedisCodeLedger struct {
	client *redis.Client
}

func NewRedisCodeLedger(client *redis.Client) *RedisCodeLedger {
	return &RedisCodeLedger{client: client}
}

func (ledger *RedisCodeLedger) ConsumeCode(ctx context.Context, digest string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixUsedCode + digest

	// SETNX is atomic: of two concurrent exchanges of the same code, exactly
	// one observes the key as fresh.
	fresh, err := ledger.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("auth: failed to mark code as used: %w", err)
	}
	return fresh, nil
}
