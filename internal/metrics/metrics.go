// Package metrics exposes the service's Prometheus instruments on a
// dedicated registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Sync row outcomes.
const (
	RowImported = "imported"
	RowRejected = "rejected"
)

// Metrics holds every instrument. All recording methods are safe on a nil
// *Metrics, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	layoutsComputed prometheus.Counter
	hoverOnlyLabels prometheus.Counter
	layoutDuration  prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	syncRows        *prometheus.CounterVec
	syncRuns        *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New creates the instruments under namespace and registers them, together
// with the Go runtime and process collectors, on a fresh registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		layoutsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "layouts_computed_total",
			Help:      "Chart layouts computed (cache misses included, cache hits excluded).",
		}),
		hoverOnlyLabels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "hover_only_labels_total",
			Help:      "Labels demoted to hover-only because they overlapped another label.",
		}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "layout_duration_seconds",
			Help:      "Time spent building a chart layout.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Chart layout cache lookups by result.",
		}, []string{"result"}),
		syncRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "rows_total",
			Help:      "Rows received from record sources by outcome.",
		}, []string{"source", "outcome"}),
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Source sync runs by status.",
		}, []string{"source", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		m.layoutsComputed,
		m.hoverOnlyLabels,
		m.layoutDuration,
		m.cacheLookups,
		m.syncRows,
		m.syncRuns,
		m.httpRequests,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveLayout records one computed layout.
func (m *Metrics) ObserveLayout(elapsed time.Duration, hoverOnly int) {
	if m == nil {
		return
	}
	m.layoutsComputed.Inc()
	m.hoverOnlyLabels.Add(float64(hoverOnly))
	m.layoutDuration.Observe(elapsed.Seconds())
}

// CacheLookup records a cache lookup with one of CacheHit, CacheMiss or CacheError.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// SyncRows records n rows from source with RowImported or RowRejected.
func (m *Metrics) SyncRows(source, outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.syncRows.WithLabelValues(source, outcome).Add(float64(n))
}

// SyncRun records the end of one source sync.
func (m *Metrics) SyncRun(source string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.syncRuns.WithLabelValues(source, status).Inc()
}

// HTTPRequest records one served request. route is the matched route
// pattern, not the raw path, to keep cardinality bounded.
func (m *Metrics) HTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
