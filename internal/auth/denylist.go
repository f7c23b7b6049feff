package auth

import (
	"context"
	"sync"
	"time"
)

// Denylist records revoked token identifiers until their natural expiry.
// Logout is the only writer; every authenticated request is a reader.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MemoryDenylist is the default, single-node denylist: a guarded map of jti to
// expiry, with expired entries evicted lazily on writes.
type MemoryDenylist struct {
	now func() time.Time

	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewMemoryDenylist creates an empty denylist.
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{
		now:     func() time.Time { return time.Now().UTC() },
		revoked: make(map[string]time.Time),
	}
}

// Revoke records the jti until the given time and sweeps expired entries, so
// the map stays bounded by the number of logouts within one token lifetime.
func (d *MemoryDenylist) Revoke(_ context.Context, jti string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, expiry := range d.revoked {
		if !expiry.After(now) {
			delete(d.revoked, id)
		}
	}
	if until.After(now) {
		d.revoked[jti] = until
	}
	return nil
}

// IsRevoked reports whether the jti is on the denylist and not yet expired.
func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	until, ok := d.revoked[jti]
	return ok && until.After(d.now()), nil
}
