package cache

import (
	"container/list"
	"sync"
)

// LRU is a bounded least-recently-used map. OnEvict, when set, is called
// outside the lock for every entry pushed out by capacity.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	queue    *list.List
	mutex    sync.Mutex
	onEvict  func(key K, value V)
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU creates a new LRU cache with specified capacity
func NewLRU[K comparable, V any](capacity int, onEvict func(key K, value V)) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		queue:    list.New(),
		onEvict:  onEvict,
	}
}

// GetOrCreate returns the value for key, creating and storing it with
// create when absent. The boolean reports whether the value was created.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	c.mutex.Lock()
	if element, exists := c.items[key]; exists {
		c.queue.MoveToFront(element)
		value := element.Value.(*entry[K, V]).value
		c.mutex.Unlock()
		return value, false
	}

	value := create()
	c.items[key] = c.queue.PushFront(&entry[K, V]{key: key, value: value})
	var evicted []*entry[K, V]
	for c.queue.Len() > c.capacity {
		evicted = append(evicted, c.removeOldest())
	}
	c.mutex.Unlock()

	c.notify(evicted)
	return value, true
}

// Len returns the number of items in the cache
func (c *LRU[K, V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.queue.Len()
}

// Each calls fn for every entry from most to least recently used,
// without changing recency.
func (c *LRU[K, V]) Each(fn func(key K, value V)) {
	c.mutex.Lock()
	snapshot := make([]entry[K, V], 0, c.queue.Len())
	for e := c.queue.Front(); e != nil; e = e.Next() {
		snapshot = append(snapshot, *e.Value.(*entry[K, V]))
	}
	c.mutex.Unlock()

	for _, item := range snapshot {
		fn(item.key, item.value)
	}
}

// removeOldest drops the least recently used item. Caller holds the lock.
func (c *LRU[K, V]) removeOldest() *entry[K, V] {
	element := c.queue.Back()
	if element == nil {
		return nil
	}
	c.queue.Remove(element)
	item := element.Value.(*entry[K, V])
	delete(c.items, item.key)
	return item
}

func (c *LRU[K, V]) notify(evicted []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, item := range evicted {
		if item != nil {
			c.onEvict(item.key, item.value)
		}
	}
}
