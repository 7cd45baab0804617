package rangecache

import "fmt"

/*
Key identifies a cached range-sum result by its inclusive bounds.

Keys compare by structural equality, so Key can be used directly as a
map key. No normalisation is applied: (3, 7) and (7, 3) are different
keys, and a key with Left > Right is stored as an opaque value that
covers no index at all.
*/
type Key struct {
	Left  int
	Right int
}

// Contains reports whether idx lies inside the inclusive range [Left, Right].
func (k Key) Contains(idx int) bool {
	return k.Left <= idx && idx <= k.Right
}

func (k Key) String() string {
	return fmt.Sprintf("[%d,%d]", k.Left, k.Right)
}

/*
entry is the value stored in each element of the recency list.

The key is kept alongside the sum so that an element taken from the back
of the list (eviction) or found during a scan (invalidation) can be
removed from the lookup map without a reverse search.
*/
type entry struct {
	key Key
	sum int64
}
