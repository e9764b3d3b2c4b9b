package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mostofa-Abedin/trello/internal/core/domain"
)

const DefaultViewTTL = 5 * time.Minute

// kv is the subset of the Redis client the view cache needs.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ViewCache stores serialised user views.
// Key format: users:view:<id>
type ViewCache struct {
	client kv
	ttl    time.Duration
}

// NewViewCache wraps client. A non-positive ttl falls back to DefaultViewTTL.
func NewViewCache(client kv, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Get returns the cached view for id. A missing key is reported as ok=false
// with a nil error.
func (c *ViewCache) Get(ctx context.Context, id int64) (*domain.UserView, bool, error) {
	raw, err := c.client.Get(ctx, viewKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("view cache get: %w", err)
	}

	var view domain.UserView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, false, fmt.Errorf("view cache decode: %w", err)
	}
	return &view, true, nil
}

// Set stores view until the TTL elapses.
func (c *ViewCache) Set(ctx context.Context, view domain.UserView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("view cache encode: %w", err)
	}
	if err := c.client.Set(ctx, viewKey(view.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("view cache set: %w", err)
	}
	return nil
}

func viewKey(id int64) string {
	return fmt.Sprintf("users:view:%d", id)
}
