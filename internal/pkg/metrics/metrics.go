// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restaurant"

// Metrics groups every collector of the service. Collectors are registered on
// the Registry passed to New, so tests can use a private registry.
type Metrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	NotificationsSent   *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec
	PendingEvents       prometheus.Gauge

	gatherer prometheus.Gatherer
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "events_sent_total",
			Help:      "Order events delivered to the broker.",
		}, []string{"type"}),
		NotificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "events_failed_total",
			Help:      "Order event deliveries that failed and were kept for retry.",
		}, []string{"type"}),
		PendingEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "pending_events",
			Help:      "Order events waiting for the retry job.",
		}),
		gatherer: registry,
	}

	registry.MustRegister(
		m.Requests,
		m.LatencyMS,
		m.NotificationsSent,
		m.NotificationsFailed,
		m.PendingEvents,
	)
	return m
}

// Handler serves the collectors registered on this Metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
