package stores

import (
	"context"
	"time"
)

// DefaultVerifyTTL is how long a verify result is reused.
const DefaultVerifyTTL = 5 * time.Minute

type verifyResult struct {
	ok      bool
	checked time.Time
}

// VerifyCache remembers Verify results per connection identity for a fixed
// TTL. It is owned by whoever creates it and is not safe for concurrent use.
type VerifyCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]verifyResult
}

// NewVerifyCache returns an empty cache. A non-positive ttl uses DefaultVerifyTTL.
func NewVerifyCache(ttl time.Duration) *VerifyCache {
	if ttl <= 0 {
		ttl = DefaultVerifyTTL
	}
	return &VerifyCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]verifyResult),
	}
}

// Verify returns the cached result for entry's identity when it is still
// fresh, and otherwise calls adapter.Verify and caches its answer.
func (c *VerifyCache) Verify(ctx context.Context, entry Entry, adapter Adapter) bool {
	key := entry.Identity()
	if cached, ok := c.entries[key]; ok && c.now().Sub(cached.checked) < c.ttl {
		return cached.ok
	}

	ok := adapter.Verify(ctx)
	c.entries[key] = verifyResult{ok: ok, checked: c.now()}
	return ok
}

// Invalidate drops the cached result for entry.
func (c *VerifyCache) Invalidate(entry Entry) {
	delete(c.entries, entry.Identity())
}
