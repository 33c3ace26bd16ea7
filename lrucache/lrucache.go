package lrucache

import (
	"container/list"
	"sync"
	"time"
)

var (
	defaultTTL = time.Minute
)

type Option[V any] func(*LruCache[V])

// WithNegativeTTL enables negative entries with their own lifetime.
// Without this option SetNegative is a no-op.
func WithNegativeTTL[V any](ttl time.Duration) Option[V] {
	return func(c *LruCache[V]) {
		c.negative = true
		c.negTTL = ttl
	}
}

// WithTimeNow replaces the clock, tests only
func WithTimeNow[V any](now func() time.Time) Option[V] {
	return func(c *LruCache[V]) {
		c.timeNow = now
	}
}

type entryKind int

const (
	kindPositive entryKind = iota
	kindNegative
)

// entry keeps the key because eviction starts from list elements
type entry[V any] struct {
	key      string
	kind     entryKind
	value    V
	expireAt time.Time
}

// LruCache is a bounded key-value cache with TTL expiry, strict LRU
// eviction and optional negative entries ("we know this key resolves
// to nothing").
//
// Expiry is lazy: an expired entry is dropped when a Get finds it,
// there is no background sweep. A Get refreshes the recency position
// but never the expiry. A key may flip between positive and negative
// representation across Set/SetNegative calls, the most recent call
// always wins.
type LruCache[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	negTTL  time.Duration

	negative bool
	items    map[string]*list.Element
	lru      *list.List // Front is the most recently used
	timeNow  func() time.Time
	metrics  *metrics
}

func New[V any](maxSize int, ttl time.Duration, opts ...Option[V]) *LruCache[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	c := &LruCache[V]{
		maxSize: maxSize,
		ttl:     ttl,
		negTTL:  ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		timeNow: time.Now,
	}
	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}
	return c
}

// Get reports whether key holds an unexpired entry. For a negative
// entry hit is true, negative is true and value is the zero value.
// An expired entry found here is removed.
func (c *LruCache[V]) Get(key string) (value V, hit, negative bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		c.metricsGet(false)
		return
	}
	e := el.Value.(*entry[V])
	if !e.expireAt.After(c.timeNow()) {
		c.removeLocked(el)
		c.metricsGet(false)
		return
	}
	c.lru.MoveToFront(el)
	c.metricsGet(true)
	if e.kind == kindNegative {
		return value, true, true
	}
	return e.value, true, false
}

// Set inserts or fully overwrites key as a positive entry with a fresh
// TTL window. When the insertion of a new key overflows maxSize the
// least recently used entry is dropped and 1 is returned.
func (c *LruCache[V]) Set(key string, value V) (evicted int) {
	return c.put(key, value, kindPositive, c.ttl)
}

// SetNegative inserts or overwrites key as a negative entry.
// No-op when negative caching is disabled.
func (c *LruCache[V]) SetNegative(key string) {
	if !c.negative {
		return
	}
	var zero V
	c.put(key, zero, kindNegative, c.negTTL)
}

func (c *LruCache[V]) put(key string, value V, kind entryKind, ttl time.Duration) (evicted int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	expireAt := c.timeNow().Add(ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[V])
		e.kind = kind
		e.value = value
		e.expireAt = expireAt
		c.lru.MoveToFront(el)
		return 0
	}
	el := c.lru.PushFront(&entry[V]{key: key, kind: kind, value: value, expireAt: expireAt})
	c.items[key] = el
	if len(c.items) > c.maxSize {
		if back := c.lru.Back(); back != nil {
			c.removeLocked(back)
			c.metricsEvicted()
			return 1
		}
	}
	return 0
}

// Delete removes key if present
func (c *LruCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
}

// Len returns current cache size, expired but not yet dropped entries included
func (c *LruCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LruCache[V]) removeLocked(el *list.Element) {
	e := el.Value.(*entry[V])
	delete(c.items, e.key)
	c.lru.Remove(el)
}

func (c *LruCache[V]) metricsGet(hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.hit.Inc()
	} else {
		c.metrics.miss.Inc()
	}
}

func (c *LruCache[V]) metricsEvicted() {
	if c.metrics == nil {
		return
	}
	c.metrics.evicted.Inc()
}
