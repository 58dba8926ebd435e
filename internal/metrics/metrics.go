package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AutomationMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_automation_mutations_total",
			Help: "Total number of automation mutations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	RunsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_runs_recorded_total",
			Help: "Total number of audit run records created by status.",
		},
		[]string{"status"},
	)

	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_cache_requests_total",
			Help: "Total number of query cache lookups by entity kind and result.",
		},
		[]string{"kind", "result"},
	)

	CacheInvalidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_cache_invalidations_total",
			Help: "Total number of query cache entries invalidated by entity kind.",
		},
		[]string{"kind"},
	)

	BulkActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_bulk_actions_total",
			Help: "Total number of bulk actions by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
)

// Register registers all custom almanac metrics with the default
// Prometheus registry.
func Register() {
	prometheus.MustRegister(
		AutomationMutationsTotal,
		RunsRecordedTotal,
		CacheRequestsTotal,
		CacheInvalidationsTotal,
		BulkActionsTotal,
	)
}
