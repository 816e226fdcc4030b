package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mercator-hq/themisto/pkg/config"
)

// Collector owns the Prometheus registry and the metric groups of the
// enforcement runtime.
type Collector struct {
	registry    *prometheus.Registry
	Enforcement *EnforcementMetrics
}

// NewCollector creates a collector with its own registry, Go runtime and
// process collectors, and the enforcement metric group.
func NewCollector(cfg *config.MetricsConfig) *Collector {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		registry:    registry,
		Enforcement: NewEnforcementMetrics(cfg, registry),
	}
}

// Registry returns the underlying registry, for tests and custom metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the HTTP handler for the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
