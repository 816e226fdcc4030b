// Package metrics exposes Prometheus instrumentation for the enforcement
// runtime: enforcement outcomes and latency, engine lifecycle events, policy
// composition health, and the /metrics HTTP handler.
package metrics
