package rangecache

import (
	"container/list"
	"fmt"

	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
)

/*
Cache is a fixed-capacity LRU store of range sums keyed by (left, right).

================================================================================
LAYOUT
================================================================================

1. Hash Map (map[Key]*list.Element)
   - O(1) lookup from query bounds to the list element holding the sum.

2. Doubly Linked List (*list.List)
   - Recency order. Front is most recently used, back is the next victim.
   - Every Get hit and every Put moves the element to the front.

================================================================================
INVALIDATION
================================================================================

The cache cannot see the array it summarises. Whoever writes array[idx]
must call InvalidateIndex(idx) right after, which drops every range that
covers idx. Forgetting that call leaves stale sums in place; nothing in
the cache can detect it.

================================================================================
CONCURRENCY
================================================================================

There is no locking. A Cache belongs to a single benchmark loop that
issues operations one after another. Sharing one across goroutines is a
data race.

FIELDS

data       -> Key → list element
lru        -> recency list, each element holds an *entry
capacity   -> maximum resident entries, fixed at construction
stats      -> hit/miss/eviction/invalidation counters
registerer -> where WithMetrics asked collectors to be registered
metrics    -> optional Prometheus mirror of stats
onEvict    -> optional capacity-eviction callback
logger     -> optional debug logger
*/
type Cache struct {
	data     map[Key]*list.Element
	lru      *list.List
	capacity int
	stats    Stats

	registerer prometheus.Registerer
	component  string
	metrics    *cacheMetrics

	onEvict EvictCallback
	logger  *log.Logger
}

/*
New builds a cache that holds at most capacity entries.

A capacity below one is a configuration error and is reported at once,
wrapped around ErrInvalidCapacity. The cache never degrades to an
unbounded or always-empty mode.

Options are applied before any collector is registered, so a failing
WithMetrics registration is also returned here.
*/
func New(capacity int, opts ...Option) (*Cache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("rangecache: %w: got %d", ErrInvalidCapacity, capacity)
	}

	c := &Cache{
		data:     make(map[Key]*list.Element, capacity),
		lru:      list.New(),
		capacity: capacity,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.registerer != nil {
		m, err := newCacheMetrics(c.registerer, c.component, capacity)
		if err != nil {
			return nil, fmt.Errorf("rangecache: register metrics: %w", err)
		}
		c.metrics = m
	}

	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(capacity int, opts ...Option) *Cache {
	c, err := New(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

/*
Get looks up the sum cached for key.

RETURNS:
- (sum, true) -> key is resident; it becomes the most recently used entry
- (0, false)  -> key is absent

The boolean is the only "not found" signal. A zero or negative sum is a
perfectly valid cached value.

Exactly one of Hits or Misses is incremented per call.
*/
func (c *Cache) Get(key Key) (int64, bool) {
	elem, found := c.data[key]
	if !found {
		c.stats.Misses++
		c.metrics.recordMiss()
		return 0, false
	}

	c.lru.MoveToFront(elem)
	c.stats.Hits++
	c.metrics.recordHit()
	return elem.Value.(*entry).sum, true
}

/*
Put stores sum under key and marks it most recently used.

If key is already resident its value is overwritten in place and
occupancy is unchanged. Otherwise a new entry is pushed to the front and,
if that takes occupancy past capacity, the entry at the back (the one
untouched longest) is evicted.
*/
func (c *Cache) Put(key Key, sum int64) {
	if elem, found := c.data[key]; found {
		elem.Value.(*entry).sum = sum
		c.lru.MoveToFront(elem)
		return
	}

	c.data[key] = c.lru.PushFront(&entry{key: key, sum: sum})

	if c.lru.Len() > c.capacity {
		c.evictOldest()
	}
	c.metrics.updateSize(c.lru.Len())
}

// Peek returns the cached sum without touching recency or counters.
func (c *Cache) Peek(key Key) (int64, bool) {
	elem, found := c.data[key]
	if !found {
		return 0, false
	}
	return elem.Value.(*entry).sum, true
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Cap returns the capacity the cache was built with.
func (c *Cache) Cap() int {
	return c.capacity
}

// Keys returns the resident keys from most to least recently used.
func (c *Cache) Keys() []Key {
	keys := make([]Key, 0, c.lru.Len())
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry).key)
	}
	return keys
}

func (c *Cache) Stats() Stats {
	return c.stats
}
