package backfill

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cascadedb/cascade/internal/catalogstore"
	"github.com/cascadedb/cascade/internal/clock"
	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/internal/shardrpc"
	"github.com/cascadedb/cascade/pkg/types"
)

func newTestStore(t *testing.T) *catalogstore.SQLiteStore {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "backfill_job_test_*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := catalogstore.NewSQLiteStore(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig(store catalogstore.Store, client shardrpc.Client) Config {
	return Config{
		Store:        store,
		Client:       client,
		Clock:        clock.NewMonotonicClock(),
		RPCConfig:    shardrpc.RetryConfig{Timeout: time.Second, MaxRetries: 3, MaxDelay: 10 * time.Millisecond},
		PollInterval: 5 * time.Millisecond,
		Broadcaster:  LoggingBroadcaster{},
	}
}

func waitForTerminal(t *testing.T, j *Job) Status {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := j.Status(); s != StatusRunning {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("job did not reach a terminal state in time")
	return StatusFailed
}

func TestJobEndToEndSuccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &catalogstore.BaseTableRow{
		TableID:       "t1",
		SchemaVersion: 1,
		Indexes:       []catalogstore.IndexDescriptor{{IndexID: "idx1", Permission: permission.DoBackfill}},
		State:         catalogstore.TableRunning,
	}, 1)
	store.UpdateShardItem(ctx, &catalogstore.ShardRow{TableID: "t1", ShardID: "s1"}, 1)
	store.UpdateShardItem(ctx, &catalogstore.ShardRow{TableID: "t1", ShardID: "s2"}, 1)

	client := shardrpc.NewFakeClient()
	client.SafeTimeByShard["s1"] = types.HybridTimestamp{Physical: 10}
	client.SafeTimeByShard["s2"] = types.HybridTimestamp{Physical: 20}
	client.ChunkResponses["s1"] = []shardrpc.ChunkResponse{{NextKey: types.Key("")}}
	client.ChunkResponses["s2"] = []shardrpc.ChunkResponse{{NextKey: types.Key("")}}

	job, err := NewJob(ctx, testConfig(store, client), "t1", "idx1", 1)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if err := job.Launch(ctx); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	if status := waitForTerminal(t, job); status != StatusComplete {
		t.Fatalf("job status = %s, want COMPLETE", status)
	}

	row, err := store.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	desc, ok := row.HasIndex("idx1")
	if !ok || desc.Permission != permission.ReadWriteAndDelete {
		t.Errorf("expected idx1 promoted to READ_WRITE_AND_DELETE, got %+v", row.Indexes)
	}
	if row.IsBackfilling || row.BackfillingTimestamp.IsValid() {
		t.Errorf("expected backfill state cleared, got %+v", row)
	}

	shards, err := store.FindShards(ctx, "t1")
	if err != nil {
		t.Fatalf("FindShards failed: %v", err)
	}
	for _, s := range shards {
		if _, started := s.Cursor("idx1"); started {
			t.Errorf("expected checkpoint cleared for shard %s", s.ShardID)
		}
	}
}

func TestJobAbortsOnSafeTimeFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &catalogstore.BaseTableRow{
		TableID:       "t1",
		SchemaVersion: 1,
		Indexes:       []catalogstore.IndexDescriptor{{IndexID: "idx1", Permission: permission.DoBackfill}},
		State:         catalogstore.TableRunning,
	}, 1)
	store.UpdateShardItem(ctx, &catalogstore.ShardRow{TableID: "t1", ShardID: "s1"}, 1)

	client := shardrpc.NewFakeClient()
	client.SafeTimeErrByShard["s1"] = errTestShardUnavailable()

	job, err := NewJob(ctx, testConfig(store, client), "t1", "idx1", 1)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if err := job.Launch(ctx); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	if status := waitForTerminal(t, job); status != StatusFailed {
		t.Fatalf("job status = %s, want FAILED", status)
	}

	row, err := store.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	desc, ok := row.HasIndex("idx1")
	if !ok || desc.Permission != permission.WriteAndDeleteWhileRemoving {
		t.Errorf("expected idx1 demoted to WRITE_AND_DELETE_WHILE_REMOVING, got %+v", row.Indexes)
	}
}

func TestJobResumesFromPersistedTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &catalogstore.BaseTableRow{
		TableID:              "t1",
		SchemaVersion:        1,
		Indexes:              []catalogstore.IndexDescriptor{{IndexID: "idx1", Permission: permission.DoBackfill}},
		State:                catalogstore.TableRunning,
		BackfillingTimestamp: types.HybridTimestamp{Physical: 99},
	}, 1)
	store.UpdateShardItem(ctx, &catalogstore.ShardRow{
		TableID:         "t1",
		ShardID:         "s1",
		BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("row50")},
	}, 1)

	client := shardrpc.NewFakeClient()
	client.ChunkResponses["s1"] = []shardrpc.ChunkResponse{{NextKey: types.Key("")}}

	job, err := NewJob(ctx, testConfig(store, client), "t1", "idx1", 1)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if !job.timestampChosen {
		t.Fatal("expected job to resume with timestampChosen=true from persisted value")
	}
	if job.readTimestamp.Physical != 99 {
		t.Errorf("readTimestamp = %+v, want Physical=99", job.readTimestamp)
	}

	if err := job.Launch(ctx); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if status := waitForTerminal(t, job); status != StatusComplete {
		t.Fatalf("job status = %s, want COMPLETE", status)
	}
}

// TestJobCompletesImmediatelyWithZeroShards covers the empty-base-table
// boundary case from §8: a table with no shards at all has nothing to
// elect a safe time against or scan, so the job must still elect a
// timestamp and promote the index straight to success instead of hanging
// in RUNNING waiting for shard completions that will never arrive.
func TestJobCompletesImmediatelyWithZeroShards(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &catalogstore.BaseTableRow{
		TableID:       "t1",
		SchemaVersion: 1,
		Indexes:       []catalogstore.IndexDescriptor{{IndexID: "idx1", Permission: permission.DoBackfill}},
		State:         catalogstore.TableRunning,
	}, 1)

	client := shardrpc.NewFakeClient()

	job, err := NewJob(ctx, testConfig(store, client), "t1", "idx1", 1)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	if err := job.Launch(ctx); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	if status := waitForTerminal(t, job); status != StatusComplete {
		t.Fatalf("job status = %s, want COMPLETE", status)
	}

	if ts, chosen := job.ReadTimestamp(); !chosen || !ts.IsValid() {
		t.Errorf("expected a timestamp to be elected for the zero-shard job, got chosen=%v ts=%+v", chosen, ts)
	}

	row, err := store.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	desc, ok := row.HasIndex("idx1")
	if !ok || desc.Permission != permission.ReadWriteAndDelete {
		t.Errorf("expected idx1 promoted to READ_WRITE_AND_DELETE, got %+v", row.Indexes)
	}
	if client.ChunkCalls() != 0 {
		t.Errorf("expected zero BackfillChunk calls for a zero-shard table, got %d", client.ChunkCalls())
	}
}

// errTestShardUnavailable returns a plain error that is not a
// CascadeError. The RPC task treats any error not marked retryable as
// permanent, so the GetSafeTime task fails on its first attempt.
func errTestShardUnavailable() error {
	return shardrpcTestError{}
}

type shardrpcTestError struct{}

func (shardrpcTestError) Error() string { return "shard unavailable (test)" }
