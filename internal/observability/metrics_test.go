package observability

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersEveryMetric(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.BackfillJobsStarted.Inc()
	m.AlterTableCyclesTotal.WithLabelValues("advance").Inc()
	m.BackfillJobsCompleted.WithLabelValues("complete").Inc()
	m.BackfillJobsInFlight.Set(2)
	m.ShardRPCAttemptsTotal.WithLabelValues("get_safe_time", "success").Inc()
	m.ShardRPCRetriesTotal.WithLabelValues("backfill_chunk").Inc()
	m.SafeTimeElectionSeconds.Observe(0.5)
	m.BackfillChunkSeconds.WithLabelValues("s1").Observe(0.1)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) != 8 {
		t.Errorf("expected 8 registered metric families, got %d", len(families))
	}
}

func TestHandlerServesExpositionFormat(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	m.BackfillJobsStarted.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cascade_backfill_jobs_started_total") {
		t.Errorf("expected exposition body to contain the jobs_started_total metric, got: %s", rec.Body.String())
	}
}
