package cache

import (
	"container/list"
	"sync"
)

// Computed is a bounded LRU of derived values. Keys are compared with ==, so
// a key made of pointers caches by identity: the same pointers hit, a new
// pointer misses even when it points at equal data.
//
// Computed is safe for concurrent use. Values are computed while holding the
// lock, so two callers asking for the same missing key compute it once.
type Computed[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[K]*list.Element
}

type computedEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewComputed returns a cache holding at most capacity values. A capacity
// below one is raised to one.
func NewComputed[K comparable, V any](capacity int) *Computed[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Computed[K, V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[K]*list.Element),
	}
}

// Get returns the value stored under key.
func (c *Computed[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*computedEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// GetOrCompute returns the value stored under key, computing and storing it
// with fn on a miss. hit reports whether fn was skipped.
func (c *Computed[K, V]) GetOrCompute(key K, fn func() V) (value V, hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*computedEntry[K, V]).value, true
	}
	value = fn()
	c.items[key] = c.order.PushFront(&computedEntry[K, V]{key: key, value: value})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*computedEntry[K, V]).key)
	}
	return value, false
}

// Len returns the number of cached values.
func (c *Computed[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every cached value.
func (c *Computed[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.items)
}
