package rangecache

import "container/list"

func (c *Cache) evictOldest() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	e := c.removeElement(elem)
	c.stats.Evictions++
	c.metrics.recordEviction()

	if c.logger != nil {
		c.logger.Debug().Int("left", e.key.Left).Int("right", e.key.Right).Msg("evicted least recently used range")
	}
	if c.onEvict != nil {
		c.onEvict(e.key, e.sum)
	}
}

/*
InvalidateIndex drops every cached range that covers idx and returns how
many were dropped.

ALGORITHM:
- Walk the whole recency list from the back.
- Remove each element whose key satisfies Left <= idx <= Right.

Cost is O(n) in the number of resident entries, which is bounded by the
capacity. Survivors keep their values and their relative order, and the
hit/miss counters are left alone. A second call with the same idx and no
Put in between finds nothing to remove.
*/
func (c *Cache) InvalidateIndex(idx int) int {
	removed := 0
	for elem := c.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry).key.Contains(idx) {
			c.removeElement(elem)
			removed++
		}
		elem = prev
	}

	if removed == 0 {
		return 0
	}

	c.stats.Invalidations += uint64(removed)
	c.metrics.recordInvalidations(removed)
	c.metrics.updateSize(c.lru.Len())

	if c.logger != nil {
		c.logger.Debug().Int("index", idx).Int("removed", removed).Msg("invalidated cached ranges")
	}
	return removed
}

func (c *Cache) removeElement(e *list.Element) *entry {
	c.lru.Remove(e)
	item := e.Value.(*entry)
	delete(c.data, item.key)
	return item
}
