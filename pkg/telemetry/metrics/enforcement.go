package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/themisto/pkg/config"
)

// EnforcementMetrics tracks the enforcement gateway.
//
// Metrics:
//   - themisto_authz_enforcements_total: enforcement calls by action api and outcome
//   - themisto_authz_evaluation_duration_seconds: engine evaluation duration
//   - themisto_authz_decisions_total: raw engine decisions by code
//   - themisto_authz_engine_swaps_total: engine configure/reload swaps
//   - themisto_authz_composition_failures_total: policy compositions degraded to Indeterminate
//   - themisto_authz_registered_contexts: request contexts currently registered
type EnforcementMetrics struct {
	enforcementsTotal   *prometheus.CounterVec
	evaluationDuration  prometheus.Histogram
	decisionsTotal      *prometheus.CounterVec
	engineSwapsTotal    prometheus.Counter
	compositionFailures prometheus.Counter
	registeredContexts  prometheus.Gauge
}

// NewEnforcementMetrics creates and registers enforcement metrics with the
// provided registry.
func NewEnforcementMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EnforcementMetrics {
	em := &EnforcementMetrics{
		enforcementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "enforcements_total",
				Help:      "Total number of enforcement calls",
			},
			[]string{"api", "outcome"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of decision engine evaluations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 15), // 100µs to ~1.6s
			},
		),

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "decisions_total",
				Help:      "Raw decision results returned by the engine",
			},
			[]string{"decision"},
		),

		engineSwapsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "engine_swaps_total",
				Help:      "Total number of decision engine configure and reload swaps",
			},
		),

		compositionFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "composition_failures_total",
				Help:      "Policy compositions that degraded to an Indeterminate decision",
			},
		),

		registeredContexts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registered_contexts",
				Help:      "Request contexts currently registered for in-flight evaluations",
			},
		),
	}

	registry.MustRegister(
		em.enforcementsTotal,
		em.evaluationDuration,
		em.decisionsTotal,
		em.engineSwapsTotal,
		em.compositionFailures,
		em.registeredContexts,
	)

	return em
}

// RecordEnforcement records one enforcement call. Nil receivers are no-ops
// so callers need not guard against disabled metrics.
func (m *EnforcementMetrics) RecordEnforcement(api, outcome string) {
	if m == nil {
		return
	}
	m.enforcementsTotal.WithLabelValues(api, outcome).Inc()
}

// RecordEvaluation records one engine evaluation and its duration.
func (m *EnforcementMetrics) RecordEvaluation(d time.Duration) {
	if m == nil {
		return
	}
	m.evaluationDuration.Observe(d.Seconds())
}

// RecordDecision records one raw engine decision code.
func (m *EnforcementMetrics) RecordDecision(decision string) {
	if m == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(decision).Inc()
}

// RecordEngineSwap records a configure or reload swap.
func (m *EnforcementMetrics) RecordEngineSwap() {
	if m == nil {
		return
	}
	m.engineSwapsTotal.Inc()
}

// RecordCompositionFailure records a policy composition degraded to
// Indeterminate.
func (m *EnforcementMetrics) RecordCompositionFailure() {
	if m == nil {
		return
	}
	m.compositionFailures.Inc()
}

// SetRegisteredContexts sets the registry population gauge.
func (m *EnforcementMetrics) SetRegisteredContexts(n int) {
	if m == nil {
		return
	}
	m.registeredContexts.Set(float64(n))
}
