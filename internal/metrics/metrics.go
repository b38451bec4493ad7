// Package metrics instruments the solver with Prometheus collectors: solve
// duration and outcome by status, backtrack counts, and snapshot cache hit
// ratio. The core never serves these over HTTP itself — the HTTP-facing
// surface is explicitly out of scope — but a caller embedding this module
// can register the Collector's Registry with its own exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector wraps the Prometheus collectors used by the solver.
type Collector struct {
	registry *prometheus.Registry

	solveDuration *prometheus.HistogramVec
	outcomeTotal  *prometheus.CounterVec
	backtrackTot  prometheus.Histogram

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	cacheRatio  prometheus.Gauge

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewCollector registers and returns a fresh Collector.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	solveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_solve_duration_seconds",
		Help:    "Duration of a single department solve",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	outcomeTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_solve_outcomes_total",
		Help: "Count of solve outcomes by status",
	}, []string{"status"})

	backtrackTot := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_solve_backtracks",
		Help:    "Number of backtracks performed per solve",
		Buckets: []float64{0, 1, 10, 100, 1000, 10000, 100000},
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_snapshot_cache_hits_total",
		Help: "Total snapshot cache hits",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_snapshot_cache_misses_total",
		Help: "Total snapshot cache misses",
	})
	cacheRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_snapshot_cache_hit_ratio",
		Help: "Ratio of snapshot cache hits to total lookups",
	})

	registry.MustRegister(solveDuration, outcomeTotal, backtrackTot, cacheHits, cacheMisses, cacheRatio)

	return &Collector{
		registry:      registry,
		solveDuration: solveDuration,
		outcomeTotal:  outcomeTotal,
		backtrackTot:  backtrackTot,
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
		cacheRatio:    cacheRatio,
	}
}

// Registry exposes the underlying registry for embedding callers that want
// to mount it behind their own metrics endpoint.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveSolve records a completed solve's duration and outcome.
func (c *Collector) ObserveSolve(status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.solveDuration.WithLabelValues(status).Observe(duration.Seconds())
	c.outcomeTotal.WithLabelValues(status).Inc()
}

// ObserveBacktracks records how many backtracks one solve performed.
func (c *Collector) ObserveBacktracks(count int) {
	if c == nil {
		return
	}
	c.backtrackTot.Observe(float64(count))
}

// RecordCacheOperation updates cache hit/miss counters and the hit ratio gauge.
func (c *Collector) RecordCacheOperation(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.cacheHits.Inc()
		c.cacheHitCount++
	} else {
		c.cacheMisses.Inc()
		c.cacheMissCount++
	}
	total := c.cacheHitCount + c.cacheMissCount
	if total > 0 {
		c.cacheRatio.Set(float64(c.cacheHitCount) / float64(total))
	}
}
