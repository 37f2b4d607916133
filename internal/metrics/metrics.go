package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the handler and the generation service
const (
	OutcomeSuccess           = "success"
	OutcomeValidationError   = "validation_error"
	OutcomeParseError        = "parse_error"
	OutcomeUpstreamHTTPError = "upstream_http_error"
	OutcomeProtocolError     = "protocol_error"
	OutcomeNetworkError      = "network_error"
	OutcomeInternalError     = "internal_error"
)

// Metrics contains Prometheus metrics for the chat relay
type Metrics struct {
	registry *prometheus.Registry

	invocations        *prometheus.CounterVec
	downstreamDuration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chat_relay_invocations_total",
				Help: "Total number of handled chat invocations by outcome",
			},
			[]string{"outcome"},
		),

		downstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chat_relay_downstream_duration_seconds",
				Help:    "Duration of calls to the generation service in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"outcome"},
		),
	}
}

// RecordInvocation counts one handled invocation
func (m *Metrics) RecordInvocation(outcome string) {
	m.invocations.WithLabelValues(outcome).Inc()
}

// ObserveDownstream records the latency of one downstream call
func (m *Metrics) ObserveDownstream(outcome string, elapsed time.Duration) {
	m.downstreamDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
