package rangecache

/*
Stats is a point-in-time snapshot of cache activity.

  - Hits          → Get calls that found the key
  - Misses        → Get calls that did not
  - Evictions     → entries dropped to stay within capacity
  - Invalidations → entries dropped by InvalidateIndex

Hits and Misses only ever grow, and every Get bumps exactly one of them,
so Hits + Misses is the number of lookups performed. Invalidation never
touches either counter.
*/
type Stats struct {
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Invalidations uint64
}

// Lookups returns the total number of Get calls.
func (s Stats) Lookups() uint64 {
	return s.Hits + s.Misses
}

// HitRate returns Hits / Lookups in [0, 1], or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Lookups()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
