package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vibin/chat-relay/internal/core/domain"
	"github.com/vibin/chat-relay/internal/core/ports"
)

// Compile-time interface assertion.
var _ ports.MetricsPort = (*Metrics)(nil)

// Metrics owns the Prometheus registry and every collector the relay
// exposes. It is injected into the router and the HTTP handler at
// construction time; nothing reads it through a global.
type Metrics struct {
	registry *prometheus.Registry
	start    time.Time

	// CBOpen is 1 while the primary provider's circuit is open, 0 otherwise
	CBOpen prometheus.Gauge
	// CBFailures is the number of failures within the sliding window
	CBFailures prometheus.Gauge
	// CBOpenedCount is the lifetime number of open transitions
	CBOpenedCount prometheus.Gauge
	// CBLastOpened is the unix time (seconds) the circuit last opened
	CBLastOpened prometheus.Gauge

	// AdapterLatency observes provider call durations by adapter and model
	AdapterLatency *prometheus.HistogramVec
	// AdapterErrors counts provider call failures by adapter and model
	AdapterErrors *prometheus.CounterVec

	// Requests counts inbound HTTP requests
	Requests prometheus.Counter
}

// New creates a Metrics instance backed by its own registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		start:    time.Now(),
		CBOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "openai_cb_open",
			Help: "1 if the OpenAI circuit is open, 0 otherwise",
		}),
		CBFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "openai_cb_failures",
			Help: "Number of failures in the sliding window",
		}),
		CBOpenedCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "openai_cb_opened_count",
			Help: "Number of times the circuit opened",
		}),
		CBLastOpened: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "openai_cb_last_opened_ts",
			Help: "Last time the circuit opened (unix seconds)",
		}),
		AdapterLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "nlp_adapter_latency_seconds",
			Help: "Latency of NLP adapter calls in seconds",
		}, []string{"adapter", "model"}),
		AdapterErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nlp_adapter_errors_total",
			Help: "Total errors from NLP adapters",
		}, []string{"adapter", "model"}),
		Requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Cumulative number of HTTP requests",
		}),
	}

	reg.MustRegister(
		m.CBOpen,
		m.CBFailures,
		m.CBOpenedCount,
		m.CBLastOpened,
		m.AdapterLatency,
		m.AdapterErrors,
		m.Requests,
		collectors.NewGoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Seconds since the process started",
		}, func() float64 {
			return time.Since(m.start).Seconds()
		}),
	)

	return m
}

// Handler returns the /metrics exposition handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveBreaker updates the breaker gauges from a state snapshot
func (m *Metrics) ObserveBreaker(state domain.BreakerState, now time.Time, cooldown time.Duration) {
	if state.IsOpen(now) {
		m.CBOpen.Set(1)
	} else {
		m.CBOpen.Set(0)
	}
	m.CBFailures.Set(float64(len(state.Failures)))
	m.CBOpenedCount.Set(float64(state.OpenedCount))
	if state.OpenedCount > 0 {
		m.CBLastOpened.Set(float64(state.OpenUntil.Add(-cooldown).Unix()))
	} else {
		m.CBLastOpened.Set(0)
	}
}

// ObserveAdapter records one provider call outcome
func (m *Metrics) ObserveAdapter(adapter, model string, elapsed time.Duration, err error) {
	m.AdapterLatency.WithLabelValues(adapter, model).Observe(elapsed.Seconds())
	if err != nil {
		m.AdapterErrors.WithLabelValues(adapter, model).Inc()
	}
}
