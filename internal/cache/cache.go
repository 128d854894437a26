// Package cache provides a sharded LRU cache with TTL expiration.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/college-order-service/internal/metrics"
)

// Cache is a string-keyed cache of values of type V.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// WithMetrics extends Cache with metrics reporting.
type WithMetrics[V any] interface {
	Cache[V]
	Metrics() Metrics
}

// Sharded distributes entries across several LRU shards to reduce lock
// contention. It implements WithMetrics.
type Sharded[V any] struct {
	name      string
	shards    []*ttlCache[V]
	shardMask uint32
}

// NewSharded creates a sharded cache with the given total capacity, TTL and
// shard count. The shard count is rounded up to a power of two; zero or
// less selects 16. name labels the cache in metrics.
func NewSharded[V any](name string, capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}
	numShards = n

	perShard := capacity / numShards
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*ttlCache[V], numShards)
	for i := range shards {
		shards[i] = newTTLCache[V](name, perShard, ttl)
	}
	return &Sharded[V]{name: name, shards: shards, shardMask: uint32(numShards - 1)}
}

func (sc *Sharded[V]) shard(key string) *ttlCache[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get returns the value stored under key.
func (sc *Sharded[V]) Get(key string) (V, bool) {
	return sc.shard(key).Get(key)
}

// Set stores value under key.
func (sc *Sharded[V]) Set(key string, value V) {
	sc.shard(key).Set(key, value)
}

// Invalidate removes key.
func (sc *Sharded[V]) Invalidate(key string) {
	sc.shard(key).Invalidate(key)
}

// Clear removes every entry.
func (sc *Sharded[V]) Clear() {
	for _, s := range sc.shards {
		s.Clear()
	}
}

// Stop terminates the background cleanup of every shard.
func (sc *Sharded[V]) Stop() {
	for _, s := range sc.shards {
		s.Stop()
	}
}

// NumShards returns the number of shards.
func (sc *Sharded[V]) NumShards() int {
	return len(sc.shards)
}

// Metrics aggregates the metrics of all shards.
func (sc *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, s := range sc.shards {
		m := s.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	metrics.UpdateCacheMetrics(sc.name, total.Size, total.Capacity)
	return total
}

// ttlCache is one thread-safe LRU shard with TTL expiration.
type ttlCache[V any] struct {
	name      string
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*entry[V]
	head      *entry[V]
	tail      *entry[V]
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      int64
	misses    int64
	evictions int64
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

func newTTLCache[V any](name string, capacity int, ttl time.Duration) *ttlCache[V] {
	c := &ttlCache[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Stop shuts down the cleanup goroutine. It is safe to call more than once.
func (c *ttlCache[V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *ttlCache[V]) Metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()
	return Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      size,
		Capacity:  c.capacity,
	}
}

func (c *ttlCache[V]) Get(key string) (V, bool) {
	var zero V
	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}
	c.moveToFront(e)
	value := e.value
	c.mu.Unlock()

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return value, true
}

func (c *ttlCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	c.items[key] = e
	c.addToFront(e)

	if len(c.items) > c.capacity {
		c.removeTail()
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
	metrics.RecordCacheOperation(c.name, "set", "success")
}

func (c *ttlCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

func (c *ttlCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V], c.capacity)
	c.head = nil
	c.tail = nil
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)
	metrics.RecordCacheOperation(c.name, "clear", "success")
}

// startCleanup drops expired entries once a minute while the shard is
// more than 80% full.
func (c *ttlCache[V]) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if len(c.items) > c.capacity*80/100 {
				c.cleanupLocked()
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

func (c *ttlCache[V]) cleanupLocked() {
	current := time.Now()
	for _, e := range c.items {
		if current.After(e.expiresAt) {
			c.removeEntry(e)
		}
	}
}

func (c *ttlCache[V]) removeEntry(e *entry[V]) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *ttlCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *ttlCache[V]) addToFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *ttlCache[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

func (c *ttlCache[V]) removeTail() {
	if c.tail == nil {
		return
	}
	delete(c.items, c.tail.key)
	c.unlink(c.tail)
}
