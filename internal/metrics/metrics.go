// Package metrics exposes dashboard metrics in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/me/vertexdash/internal/table"
)

const namespace = "vertexdash"

// Metrics holds the dashboard collectors. It satisfies table.Observer and
// backend.Observer.
type Metrics struct {
	registry *prometheus.Registry

	tableFetches   *prometheus.CounterVec
	tableDuration  *prometheus.HistogramVec
	backendCalls   *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	activeSessions prometheus.Gauge
	loginThrottled prometheus.Counter
}

// New creates a Metrics with its own registry, including Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		tableFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_fetches_total",
			Help:      "Table page fetches by table and outcome (ok, error, stale).",
		}, []string{"table", "outcome"}),
		tableDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "table_fetch_duration_seconds",
			Help:      "Time spent fetching a table page.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Sales backend calls by operation and status code (0 for transport errors).",
		}, []string{"op", "status"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Sales backend call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Dashboard HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_sessions",
			Help:      "Sessions holding live tables in memory.",
		}),
		loginThrottled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_throttled_total",
			Help:      "Login attempts rejected by the rate limiter.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.tableFetches,
		m.tableDuration,
		m.backendCalls,
		m.backendLatency,
		m.httpRequests,
		m.activeSessions,
		m.loginThrottled,
	)
	return m
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFetch implements table.Observer.
func (m *Metrics) ObserveFetch(name string, outcome table.Outcome, elapsed time.Duration) {
	m.tableFetches.WithLabelValues(name, string(outcome)).Inc()
	m.tableDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// ObserveBackend implements backend.Observer.
func (m *Metrics) ObserveBackend(op string, status int, elapsed time.Duration) {
	m.backendCalls.WithLabelValues(op, strconv.Itoa(status)).Inc()
	m.backendLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveRequest counts one served dashboard request.
func (m *Metrics) ObserveRequest(method string, status int) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// SetTableSessions reports how many sessions hold tables.
func (m *Metrics) SetTableSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// LoginThrottled counts one rejected login attempt.
func (m *Metrics) LoginThrottled() {
	m.loginThrottled.Inc()
}
