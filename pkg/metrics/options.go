// Package metrics provides Prometheus metrics for the point chart service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultLatencyBuckets are the millisecond buckets of the compute and HTTP
// duration histograms.
var DefaultLatencyBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000} //nolint:gochecknoglobals // read-only defaults

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace replaces the "pointchart" namespace. Empty keeps the default.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithMetricsEnabled turns recording on or off. Families are registered either way
// so scrapes keep a stable shape.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithLatencyBuckets sets the millisecond buckets shared by the compute and HTTP
// duration histograms. Lists that are empty or not strictly increasing are ignored.
func WithLatencyBuckets(ms []float64) Option {
	return func(m *Manager) {
		if !ValidBuckets(ms) {
			return
		}
		m.latencyBuckets = append([]float64(nil), ms...)
	}
}

// WithPrometheusRegistry registers every family on registry.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// ValidBuckets reports whether ms is a non-empty, positive, strictly increasing
// bucket list.
func ValidBuckets(ms []float64) bool {
	if len(ms) == 0 || ms[0] <= 0 {
		return false
	}
	for i := 1; i < len(ms); i++ {
		if ms[i] <= ms[i-1] {
			return false
		}
	}
	return true
}
