// Package metrics records solver runs as Prometheus metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "isle"
	subsystem = "solver"
)

// Collector holds the solver metrics in a private registry.
type Collector struct {
	registry *prometheus.Registry

	enumerationDuration prometheus.Histogram
	presets             prometheus.Gauge
	cacheLookups        *prometheus.CounterVec

	searchDuration *prometheus.HistogramVec
	searchesTotal  *prometheus.CounterVec
	candidates     *prometheus.CounterVec
	improvements   *prometheus.CounterVec
	bestCost       *prometheus.GaugeVec
}

// NewCollector creates and registers every solver metric.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		enumerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "enumeration_duration_seconds",
			Help:      "Preset enumeration duration distribution",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		presets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "presets",
			Help:      "Number of distinct presets in the last enumeration",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "preset_cache_lookups_total",
			Help:      "Preset cache lookups by result",
		}, []string{"result"}),

		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "search_duration_seconds",
			Help:      "Strategy search duration distribution by workshop count",
			Buckets:   []float64{0.001, 0.01, 0.1, 1, 10, 60, 300, 1800},
		}, []string{"workshops"}),
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "searches_total",
			Help:      "Strategy searches by workshop count and status",
		}, []string{"workshops", "status"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "candidates_total",
			Help:      "Preset combinations examined",
		}, []string{"workshops"}),
		improvements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "improvements_total",
			Help:      "Times the best strategy changed during a search",
		}, []string{"workshops"}),
		bestCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "best_cost",
			Help:      "Primary cost of the best strategy of the last search",
		}, []string{"workshops"}),
	}

	c.registry.MustRegister(
		c.enumerationDuration,
		c.presets,
		c.cacheLookups,
		c.searchDuration,
		c.searchesTotal,
		c.candidates,
		c.improvements,
		c.bestCost,
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordEnumeration records one preset enumeration.
func (c *Collector) RecordEnumeration(presets int, elapsed time.Duration) {
	c.enumerationDuration.Observe(elapsed.Seconds())
	c.presets.Set(float64(presets))
}

// RecordCacheLookup records a preset cache hit or miss.
func (c *Collector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// SearchRun is the outcome of one strategy search.
type SearchRun struct {
	Workshops    int
	Candidates   int64
	Improvements int
	Elapsed      time.Duration
	Complete     bool

	// Found is false when no strategy exists; BestCost is then ignored.
	Found    bool
	BestCost int64
}

// RecordSearch records a finished or aborted search.
func (c *Collector) RecordSearch(run SearchRun) {
	k := strconv.Itoa(run.Workshops)
	status := "complete"
	if !run.Complete {
		status = "aborted"
	}

	c.searchDuration.WithLabelValues(k).Observe(run.Elapsed.Seconds())
	c.searchesTotal.WithLabelValues(k, status).Inc()
	c.candidates.WithLabelValues(k).Add(float64(run.Candidates))
	c.improvements.WithLabelValues(k).Add(float64(run.Improvements))
	if run.Found {
		c.bestCost.WithLabelValues(k).Set(float64(run.BestCost))
	}
}

// WriteTextfile writes every metric in the text exposition format, for the
// node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
