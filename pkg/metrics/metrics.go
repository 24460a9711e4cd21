// Package metrics provides Prometheus instrumentation for object pools.
//
// Metrics are registered once at package load via promauto and labeled by
// pool name, so any number of pools can share the collectors. Recording is
// lock-free; each pool event maps to a single counter increment or gauge
// update and is cheap enough for hot checkout/return paths.
//
// Example:
//
//	collector := metrics.NewCollector("buffer-pool")
//	collector.RecordHit()
//	collector.SetObjectsInPool(12)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutsTotal tracks pool checkouts partitioned by outcome.
	// Labels: pool (pool name), outcome (hit/miss)
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectpool_checkouts_total",
			Help: "Total number of pool checkouts by outcome",
		},
		[]string{"pool", "outcome"},
	)

	// ReturnsTotal tracks objects returned to a pool.
	// Labels: pool
	ReturnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectpool_returns_total",
			Help: "Total number of objects returned to the pool",
		},
		[]string{"pool"},
	)

	// OverflowsTotal tracks returns rejected because the pool was full.
	// Labels: pool
	OverflowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectpool_overflows_total",
			Help: "Total number of returns destroyed because the pool was at capacity",
		},
		[]string{"pool"},
	)

	// RejectionsTotal tracks objects destroyed by reset or validation failure.
	// Labels: pool
	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectpool_rejections_total",
			Help: "Total number of objects rejected by reset or validation hooks",
		},
		[]string{"pool"},
	)

	// EvictionsTotal tracks idle objects destroyed by timed sweeps.
	// Labels: pool
	EvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectpool_evictions_total",
			Help: "Total number of idle objects evicted by background sweeps",
		},
		[]string{"pool"},
	)

	// ObjectsCreated tracks factory invocations.
	// Labels: pool
	ObjectsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectpool_objects_created_total",
			Help: "Total number of objects constructed by the pool factory",
		},
		[]string{"pool"},
	)

	// ObjectsDestroyed tracks permanent object destruction.
	// Labels: pool
	ObjectsDestroyed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "objectpool_objects_destroyed_total",
			Help: "Total number of objects permanently destroyed",
		},
		[]string{"pool"},
	)

	// ObjectsInPool reports the current number of idle objects per pool.
	// Labels: pool
	ObjectsInPool = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "objectpool_objects_in_pool",
			Help: "Current number of idle objects held by the pool",
		},
		[]string{"pool"},
	)
)

// Collector records pool events against the shared Prometheus collectors
// under a fixed pool name. A nil *Collector is valid and records nothing,
// so pools can hold one unconditionally.
type Collector struct {
	name string
}

// NewCollector creates a collector for the named pool.
func NewCollector(name string) *Collector {
	return &Collector{name: name}
}

// RecordHit records a checkout served from the pool.
func (c *Collector) RecordHit() {
	if c == nil {
		return
	}
	CheckoutsTotal.WithLabelValues(c.name, "hit").Inc()
}

// RecordMiss records a checkout that required constructing a new object.
func (c *Collector) RecordMiss() {
	if c == nil {
		return
	}
	CheckoutsTotal.WithLabelValues(c.name, "miss").Inc()
}

// RecordReturn records an object returned to the pool.
func (c *Collector) RecordReturn() {
	if c == nil {
		return
	}
	ReturnsTotal.WithLabelValues(c.name).Inc()
}

// RecordOverflow records a return destroyed because the pool was full.
func (c *Collector) RecordOverflow() {
	if c == nil {
		return
	}
	OverflowsTotal.WithLabelValues(c.name).Inc()
}

// RecordRejection records an object destroyed by a failed reset or validation.
func (c *Collector) RecordRejection() {
	if c == nil {
		return
	}
	RejectionsTotal.WithLabelValues(c.name).Inc()
}

// RecordEviction records idle objects destroyed by a background sweep.
func (c *Collector) RecordEviction(count int) {
	if c == nil || count <= 0 {
		return
	}
	EvictionsTotal.WithLabelValues(c.name).Add(float64(count))
}

// RecordCreated records a factory construction.
func (c *Collector) RecordCreated() {
	if c == nil {
		return
	}
	ObjectsCreated.WithLabelValues(c.name).Inc()
}

// RecordDestroyed records a permanent destruction.
func (c *Collector) RecordDestroyed() {
	if c == nil {
		return
	}
	ObjectsDestroyed.WithLabelValues(c.name).Inc()
}

// SetObjectsInPool updates the idle-object gauge.
func (c *Collector) SetObjectsInPool(n int) {
	if c == nil {
		return
	}
	ObjectsInPool.WithLabelValues(c.name).Set(float64(n))
}
