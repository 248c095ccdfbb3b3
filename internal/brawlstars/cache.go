package brawlstars

import (
	"container/list"
	"sync"
	"time"
)

const (
	// DefaultCacheSize is the default number of responses to cache.
	DefaultCacheSize = 16000

	// DefaultCacheTTL is how long a cached response stays valid.
	DefaultCacheTTL = 5 * time.Minute
)

// Cache is a thread-safe LRU cache of decoded responses keyed by request URL.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	lru      *list.List
	now      func() time.Time
}

type cacheItem struct {
	key     string
	payload Payload
	stored  time.Time
}

// NewCache creates a new LRU cache.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
		now:      time.Now,
	}
}

// Get returns the payload cached for key. Expired entries are dropped and
// reported as absent.
func (c *Cache) Get(key string) (Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		return Payload{}, false
	}

	item := elem.Value.(*cacheItem)
	if c.now().Sub(item.stored) > c.ttl {
		c.lru.Remove(elem)
		delete(c.items, key)
		return Payload{}, false
	}

	c.lru.MoveToFront(elem)
	return item.payload, true
}

// Set stores payload under key with a fresh TTL.
func (c *Cache) Set(key string, payload Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		item := elem.Value.(*cacheItem)
		item.payload = payload
		item.stored = c.now()
		c.lru.MoveToFront(elem)
		return
	}

	// Make room before inserting so the bound is never exceeded.
	if c.lru.Len() >= c.capacity {
		c.evictOldest()
	}

	elem := c.lru.PushFront(&cacheItem{
		key:     key,
		payload: payload,
		stored:  c.now(),
	})
	c.items[key] = elem
}

// evictOldest removes the least recently used entry.
// Must be called with lock held.
func (c *Cache) evictOldest() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}

	c.lru.Remove(elem)
	delete(c.items, elem.Value.(*cacheItem).key)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru = list.New()
}

// Len returns the number of entries in the cache, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}
