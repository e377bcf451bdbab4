package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"walletledger/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// CurrencyCache caches currency descriptors by name. The catalog reads
// through it: a miss or a Redis failure falls back to PostgreSQL, so the
// cache is strictly best-effort.
type CurrencyCache struct {
	client *goredis.Client
	prefix string
}

// NewCurrencyCache creates a new Redis-backed currency cache.
func NewCurrencyCache(client *goredis.Client) *CurrencyCache {
	return &CurrencyCache{
		client: client,
		prefix: "currency:",
	}
}

// Get retrieves a cached currency by name. Returns nil, nil on a miss.
func (c *CurrencyCache) Get(ctx context.Context, name string) (*domain.Currency, error) {
	val, err := c.client.Get(ctx, c.prefix+name).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis currency get: %w", err)
	}

	cur := &domain.Currency{}
	if err := json.Unmarshal(val, cur); err != nil {
		return nil, fmt.Errorf("unmarshal cached currency: %w", err)
	}
	return cur, nil
}

// Set stores a currency descriptor with TTL.
func (c *CurrencyCache) Set(ctx context.Context, cur *domain.Currency, ttl time.Duration) error {
	data, err := json.Marshal(cur)
	if err != nil {
		return fmt.Errorf("marshal currency: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+cur.Name, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis currency set: %w", err)
	}
	return nil
}
