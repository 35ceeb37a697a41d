// Package observability holds the Prometheus instruments shared by every adapter.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weatherhub"

// Metrics holds the counters and histograms recorded by the protocol adapters.
type Metrics struct {
	// labels: protocol={rest,graphql,mcp}, operation, outcome={ok,not_found,bad_request,error}
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec // labels: protocol

	GraphQLCache   *prometheus.CounterVec // labels: result={hit,miss}
	StationsLoaded prometheus.Gauge
}

// NewMetrics creates the metrics and registers them with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.Requests, m.RequestDuration, m.GraphQLCache, m.StationsLoaded)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests may build as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled by protocol, operation and outcome.",
		}, []string{"protocol", "operation", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent answering a request.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"protocol"}),
		GraphQLCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graphql_cache_total",
			Help:      "Graph response cache lookups by result.",
		}, []string{"result"}),
		StationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stations_loaded",
			Help:      "Stations served by the directory.",
		}),
	}
}

// Observe records one request. A nil receiver records nothing.
func (m *Metrics) Observe(protocol, operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(protocol, operation, outcome).Inc()
	m.RequestDuration.WithLabelValues(protocol).Observe(seconds)
}

func (m *Metrics) CacheResult(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.GraphQLCache.WithLabelValues(result).Inc()
}
