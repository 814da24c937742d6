package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the migration engine's prometheus instruments. Each instance
// carries its own registry so tests can construct services without colliding
// registrations.
type Metrics struct {
	registry *prometheus.Registry

	migrationOutcomes *prometheus.CounterVec
	validationIssues  *prometheus.CounterVec
	migrationDuration *prometheus.HistogramVec
}

// NewMetrics creates the instrument set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		migrationOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "migration_records_total",
			Help: "Per-record migration outcomes by source platform",
		}, []string{"platform", "outcome"}),
		validationIssues: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "validation_issues_total",
			Help: "Structural validation issues by source platform and issue type",
		}, []string{"platform", "issue_type"}),
		migrationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "migration_duration_seconds",
			Help:    "Duration of migration invocations by source platform",
			Buckets: prometheus.DefBuckets,
		}, []string{"platform"}),
	}
}

// Registry exposes the underlying registry for the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOutcome counts one terminal per-record outcome (success, warning or
// failure).
func (m *Metrics) RecordOutcome(platform, outcome string) {
	m.migrationOutcomes.WithLabelValues(platform, outcome).Inc()
}

// RecordValidationIssue counts one structural validation issue.
func (m *Metrics) RecordValidationIssue(platform, issueType string) {
	m.validationIssues.WithLabelValues(platform, issueType).Inc()
}

// ObserveMigrationDuration records the wall time of one invocation.
func (m *Metrics) ObserveMigrationDuration(platform string, seconds float64) {
	m.migrationDuration.WithLabelValues(platform).Observe(seconds)
}
