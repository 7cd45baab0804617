package rangecache

import "github.com/prometheus/client_golang/prometheus"

// cacheMetrics mirrors Stats to Prometheus. A nil *cacheMetrics is valid
// and every record method on it is a no-op.
type cacheMetrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	evictions     prometheus.Counter
	invalidations prometheus.Counter
	size          prometheus.Gauge
	capacity      prometheus.Gauge
}

func newCacheMetrics(reg prometheus.Registerer, component string, capacity int) (*cacheMetrics, error) {
	labels := prometheus.Labels{"component": component}
	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rangecache",
			Name:        "hits_total",
			ConstLabels: labels,
			Help:        "Total number of range lookups served from the cache",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rangecache",
			Name:        "misses_total",
			ConstLabels: labels,
			Help:        "Total number of range lookups not found in the cache",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rangecache",
			Name:        "evictions_total",
			ConstLabels: labels,
			Help:        "Total number of entries evicted to respect capacity",
		}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rangecache",
			Name:        "invalidations_total",
			ConstLabels: labels,
			Help:        "Total number of entries removed by index invalidation",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "rangecache",
			Name:        "size",
			ConstLabels: labels,
			Help:        "Current number of resident entries",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "rangecache",
			Name:        "capacity",
			ConstLabels: labels,
			Help:        "Configured maximum number of entries",
		}),
	}

	for _, col := range []prometheus.Collector{m.hits, m.misses, m.evictions, m.invalidations, m.size, m.capacity} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	m.capacity.Set(float64(capacity))
	return m, nil
}

func (m *cacheMetrics) recordHit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *cacheMetrics) recordMiss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *cacheMetrics) recordEviction() {
	if m != nil {
		m.evictions.Inc()
	}
}

func (m *cacheMetrics) recordInvalidations(n int) {
	if m != nil {
		m.invalidations.Add(float64(n))
	}
}

func (m *cacheMetrics) updateSize(size int) {
	if m != nil {
		m.size.Set(float64(size))
	}
}
