package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EventCache is a Redis SET NX fast path in front of the durable event
// ledger. It absorbs webhook redeliveries without a database round trip;
// the ledger's unique key remains the source of truth, so a cache miss
// (eviction, restart) is always safe.
type EventCache struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewEventCache creates a new Redis-backed event cache.
func NewEventCache(client *goredis.Client, ttl time.Duration) *EventCache {
	return &EventCache{
		client: client,
		prefix: "event:",
		ttl:    ttl,
	}
}

// MarkSeen atomically records an external event id if it was not seen yet.
// Returns true if the id is new, false if a delivery already claimed it.
func (c *EventCache) MarkSeen(ctx context.Context, externalEventID string) (bool, error) {
	key := c.prefix + externalEventID
	result, err := c.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  c.ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — event was already delivered
			return false, nil
		}
		return false, fmt.Errorf("redis event mark: %w", err)
	}
	return result == "OK", nil
}

// Forget drops the seen marker so a delivery can be retried after a
// processing failure that should not count as handled.
func (c *EventCache) Forget(ctx context.Context, externalEventID string) error {
	if err := c.client.Del(ctx, c.prefix+externalEventID).Err(); err != nil {
		return fmt.Errorf("redis event forget: %w", err)
	}
	return nil
}
