package rangecache

import (
	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
)

/*
Option configures a Cache at construction time.

	cache, err := rangecache.New(1000,
	    rangecache.WithMetrics(prometheus.DefaultRegisterer, "bench"),
	    rangecache.WithLogger(logger),
	)

Each Option mutates the Cache before New returns it. Capacity is not an
option: it is required and cannot change afterwards.
*/
type Option func(*Cache)

// EvictCallback receives the key and sum of an entry dropped for capacity.
type EvictCallback func(key Key, sum int64)

/*
WithMetrics mirrors cache counters to Prometheus collectors registered on
reg, labelled with component. A nil registerer leaves metrics disabled.
If registration fails (for example a duplicate component label on the
same registry) New returns the error.
*/
func WithMetrics(reg prometheus.Registerer, component string) Option {
	return func(c *Cache) {
		if reg == nil {
			return
		}
		c.registerer = reg
		c.component = component
	}
}

// WithEvictionCallback is invoked for capacity evictions only, never for
// entries removed by InvalidateIndex.
func WithEvictionCallback(fn EvictCallback) Option {
	return func(c *Cache) {
		c.onEvict = fn
	}
}

// WithLogger enables debug logging of evictions and invalidations.
func WithLogger(logger *log.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}
