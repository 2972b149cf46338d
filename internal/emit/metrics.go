package emit

import (
	"github.com/prometheus/client_golang/prometheus"

	"pcapkit/internal/warning"
)

// Metrics counts emission outcomes per category.
type Metrics struct {
	Emitted        *prometheus.CounterVec
	Suppressed     *prometheus.CounterVec
	FormatFailures *prometheus.CounterVec
	RouteFailures  prometheus.Counter
}

// NewMetrics creates the counters and registers them on reg when non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Emitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pcapkit_warnings_emitted_total",
				Help: "Warnings written to the diagnostic channel",
			},
			[]string{"category"},
		),
		Suppressed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pcapkit_warnings_suppressed_total",
				Help: "Warnings hidden by a rule or by deduplication",
			},
			[]string{"category", "reason"},
		),
		FormatFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pcapkit_warnings_format_failures_total",
				Help: "Warnings whose arguments did not match their placeholders",
			},
			[]string{"category"},
		),
		RouteFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pcapkit_warnings_route_failures_total",
				Help: "Rendered warnings the diagnostic channel failed to accept",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Emitted, m.Suppressed, m.FormatFailures, m.RouteFailures)
	}
	return m
}

func (m *Metrics) emitted(cat warning.Category) {
	if m == nil {
		return
	}
	m.Emitted.WithLabelValues(cat.Name()).Inc()
}

func (m *Metrics) suppressed(cat warning.Category, reason string) {
	if m == nil {
		return
	}
	m.Suppressed.WithLabelValues(cat.Name(), reason).Inc()
}

func (m *Metrics) formatFailed(cat warning.Category) {
	if m == nil {
		return
	}
	m.FormatFailures.WithLabelValues(cat.Name()).Inc()
}

func (m *Metrics) routeFailed() {
	if m == nil {
		return
	}
	m.RouteFailures.Inc()
}
