package middleware

import (
	"sync"
	"time"

	"github.com/guttosm/college-order-service/internal/cache"
)

const idempotencyCapacity = 10000

// idempotencyCache remembers finished responses per request fingerprint
// and which fingerprints are still being handled.
type idempotencyCache struct {
	done *cache.Sharded[*cachedResponse]

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	return &idempotencyCache{
		done:     cache.NewSharded[*cachedResponse]("idempotency", idempotencyCapacity, ttl, 4),
		inFlight: make(map[string]struct{}),
	}
}

// Get returns the stored response for key.
func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	return c.done.Get(key)
}

// Begin claims key. It reports false when another request holds it.
func (c *idempotencyCache) Begin(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[key]; busy {
		return false
	}
	c.inFlight[key] = struct{}{}
	return true
}

// Finish releases key, storing resp when it is not nil.
func (c *idempotencyCache) Finish(key string, resp *cachedResponse) {
	if resp != nil {
		c.done.Set(key, resp)
	}
	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

// Stop ends the cleanup goroutines of the response store.
func (c *idempotencyCache) Stop() {
	c.done.Stop()
}
