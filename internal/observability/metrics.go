package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// InteractionsTotal counts interaction operations by action and outcome.
	InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_interactions_total",
		Help: "Total number of interaction operations by action and outcome",
	}, []string{"action", "outcome"})

	// FollowMutationsTotal counts follow-graph mutations by action.
	FollowMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_follow_mutations_total",
		Help: "Total number of follow graph mutations by action",
	}, []string{"action"})

	// DuplicatePublishesTotal counts submissions absorbed by the publish guard.
	DuplicatePublishesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_duplicate_publishes_total",
		Help: "Total number of publish submissions suppressed as duplicates",
	})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
