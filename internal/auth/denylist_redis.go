package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistKeyPrefix = "denylist:"

// RedisDenylist stores revoked jtis in Redis with a TTL matching the token's
// remaining lifetime, so eviction is handled by the server. Use it when more
// than one instance serves the same token population.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist creates a denylist backed by the given client.
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

// Revoke records the jti until the given time.
func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the jti is on the denylist.
func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
