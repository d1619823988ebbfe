// Package metrics exposes Prometheus metrics for the dashboard pipeline and
// HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	loadDuration        prometheus.Histogram
	recordsLoaded       prometheus.Counter
	loadErrors          *prometheus.CounterVec
	aggregationDuration prometheus.Histogram
	agents              prometheus.Gauge
	undefinedPct        prometheus.Counter
	alerts              *prometheus.GaugeVec
	rendersTotal        prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New creates a Metrics with its own registry. Tests use it to avoid
// sharing counters.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		loadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "loader",
			Name:      "duration_seconds",
			Help:      "Time taken to read and parse the CSV export",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		recordsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "loader",
			Name:      "records_total",
			Help:      "Total interval records successfully parsed",
		}),
		loadErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "loader",
			Name:      "errors_total",
			Help:      "Failed loads by error kind",
		}, []string{"kind"}),
		aggregationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "aggregator",
			Name:      "duration_seconds",
			Help:      "Time taken to aggregate records into dashboard views",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		agents: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "agents",
			Help:      "Distinct agents in the most recent render",
		}),
		undefinedPct: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "aggregator",
			Name:      "undefined_productivity_total",
			Help:      "Agent summaries with zero logged-in time",
		}),
		alerts: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dashboard",
			Name:      "alerts",
			Help:      "Alerts in the most recent render by severity",
		}, []string{"severity"}),
		rendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "dashboard",
			Name:      "renders_total",
			Help:      "Completed pipeline runs",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Registry returns the registry the collectors live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordLoad records a successful load
func (m *Metrics) RecordLoad(duration time.Duration, records int) {
	m.loadDuration.Observe(duration.Seconds())
	m.recordsLoaded.Add(float64(records))
}

// RecordLoadError counts a failed load by kind
func (m *Metrics) RecordLoadError(kind string) {
	m.loadErrors.WithLabelValues(kind).Inc()
}

// RecordAggregation records one aggregation pass
func (m *Metrics) RecordAggregation(duration time.Duration, agents, undefined int) {
	m.aggregationDuration.Observe(duration.Seconds())
	m.agents.Set(float64(agents))
	m.undefinedPct.Add(float64(undefined))
	m.rendersTotal.Inc()
}

// SetAlerts replaces the alert gauges with the latest counts
func (m *Metrics) SetAlerts(counts map[string]int) {
	m.alerts.Reset()
	for severity, n := range counts {
		m.alerts.WithLabelValues(severity).Set(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(route string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
