package webhooks

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultOrderTTL is how long a processed order id is remembered.
const DefaultOrderTTL = 7 * 24 * time.Hour

// Ledger records which orders have already been turned into ads.
type Ledger interface {
	// Claim marks orderID as processed and reports whether this call was the first to do so.
	Claim(ctx context.Context, orderID string) (bool, error)
	// Release forgets orderID so a redelivery can be processed again.
	Release(ctx context.Context, orderID string) error
}

// RedisLedger keeps claimed order ids in Redis with a TTL.
type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisLedger creates a ledger over client. A non-positive ttl uses DefaultOrderTTL.
func NewRedisLedger(client *redis.Client, ttl time.Duration) *RedisLedger {
	if ttl <= 0 {
		ttl = DefaultOrderTTL
	}
	return &RedisLedger{client: client, ttl: ttl, prefix: "webhook:order:"}
}

// Claim sets the order key only if it does not exist yet.
func (l *RedisLedger) Claim(ctx context.Context, orderID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+orderID, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim order %s: %w", orderID, err)
	}
	return ok, nil
}

// Release deletes the order key.
func (l *RedisLedger) Release(ctx context.Context, orderID string) error {
	if err := l.client.Del(ctx, l.prefix+orderID).Err(); err != nil {
		return fmt.Errorf("release order %s: %w", orderID, err)
	}
	return nil
}
