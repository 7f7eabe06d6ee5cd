// Package observability defines the Prometheus metrics surface for the
// backfill controller and the HTTP endpoint that exposes it.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every metric the controller emits. Namespace/subsystem
// follow the pack's convention of grouping counters and gauges by the
// component that owns them.
type Metrics struct {
	AlterTableCyclesTotal   *prometheus.CounterVec
	BackfillJobsStarted     prometheus.Counter
	BackfillJobsCompleted   *prometheus.CounterVec
	BackfillJobsInFlight    prometheus.Gauge
	ShardRPCAttemptsTotal   *prometheus.CounterVec
	ShardRPCRetriesTotal    *prometheus.CounterVec
	SafeTimeElectionSeconds prometheus.Histogram
	BackfillChunkSeconds    *prometheus.HistogramVec
}

// New constructs a Metrics instance and registers every metric on
// registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		AlterTableCyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascade",
			Subsystem: "altertable",
			Name:      "cycles_total",
			Help:      "LaunchNextVersionIfNecessary invocations, by bucket taken (advance, delete, backfill, quiesce, noop).",
		}, []string{"bucket"}),
		BackfillJobsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cascade",
			Subsystem: "backfill",
			Name:      "jobs_started_total",
			Help:      "BackfillJobs launched.",
		}),
		BackfillJobsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascade",
			Subsystem: "backfill",
			Name:      "jobs_completed_total",
			Help:      "BackfillJobs reaching a terminal state, by outcome (complete, failed).",
		}, []string{"outcome"}),
		BackfillJobsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cascade",
			Subsystem: "backfill",
			Name:      "jobs_in_flight",
			Help:      "BackfillJobs currently registered in the single-builder registry.",
		}),
		ShardRPCAttemptsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascade",
			Subsystem: "shardrpc",
			Name:      "attempts_total",
			Help:      "Shard RPC tasks finished, by task type and final outcome (success, fatal_error, exhausted, aborted).",
		}, []string{"task", "outcome"}),
		ShardRPCRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascade",
			Subsystem: "shardrpc",
			Name:      "retries_total",
			Help:      "Shard RPC retry attempts, by task type.",
		}, []string{"task"}),
		SafeTimeElectionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cascade",
			Subsystem: "backfill",
			Name:      "safe_time_election_seconds",
			Help:      "Wall-clock time from LaunchComputeSafeTime to a persisted backfilling_timestamp.",
			Buckets:   prometheus.DefBuckets,
		}),
		BackfillChunkSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cascade",
			Subsystem: "backfill",
			Name:      "chunk_seconds",
			Help:      "Wall-clock time per BackfillChunk RPC, by shard.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"shard"}),
	}

	registry.MustRegister(
		m.AlterTableCyclesTotal,
		m.BackfillJobsStarted,
		m.BackfillJobsCompleted,
		m.BackfillJobsInFlight,
		m.ShardRPCAttemptsTotal,
		m.ShardRPCRetriesTotal,
		m.SafeTimeElectionSeconds,
		m.BackfillChunkSeconds,
	)
	return m
}

// Handler returns the HTTP handler that serves registry in the
// Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordShardRPCAttempt increments the attempts counter for task/outcome.
// Safe to call on a nil *Metrics, so callers that run without a wired
// registry (unit tests, one-off tooling) need no nil check of their own.
func (m *Metrics) RecordShardRPCAttempt(task, outcome string) {
	if m == nil {
		return
	}
	m.ShardRPCAttemptsTotal.WithLabelValues(task, outcome).Inc()
}

// RecordShardRPCRetry increments the retries counter for task. Nil-safe,
// see RecordShardRPCAttempt.
func (m *Metrics) RecordShardRPCRetry(task string) {
	if m == nil {
		return
	}
	m.ShardRPCRetriesTotal.WithLabelValues(task).Inc()
}
