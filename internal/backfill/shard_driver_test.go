package backfill

import (
	"context"
	"testing"
	"time"

	"github.com/cascadedb/cascade/internal/catalogstore"
	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/internal/shardrpc"
	"github.com/cascadedb/cascade/pkg/types"
)

func newTestJob(t *testing.T, store catalogstore.Store, client shardrpc.Client) *Job {
	t.Helper()
	ctx := context.Background()
	if err := store.UpdateItem(ctx, &catalogstore.BaseTableRow{
		TableID:       "t1",
		SchemaVersion: 3,
		Indexes:       []catalogstore.IndexDescriptor{{IndexID: "idx1", Permission: permission.DoBackfill}},
		State:         catalogstore.TableRunning,
	}, 1); err != nil {
		t.Fatalf("seeding table row failed: %v", err)
	}
	job, err := NewJob(ctx, testConfig(store, client), "t1", "idx1", 1)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	return job
}

func TestShardDriverResumesFromCheckpoint(t *testing.T) {
	shard := &catalogstore.ShardRow{
		TableID:         "t1",
		ShardID:         "s1",
		BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("row50")},
	}
	store := newTestStore(t)
	job := newTestJob(t, store, shardrpc.NewFakeClient())

	d := NewShardDriver(job, shard, types.HybridTimestamp{Physical: 5})

	if d.done {
		t.Fatal("expected driver not done when checkpoint has a non-empty cursor")
	}
	if string(d.cursor) != "row50" {
		t.Errorf("cursor = %q, want %q", d.cursor, "row50")
	}
}

func TestShardDriverAlreadyDoneWhenCheckpointEmpty(t *testing.T) {
	shard := &catalogstore.ShardRow{
		TableID:         "t1",
		ShardID:         "s1",
		BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("")},
	}
	store := newTestStore(t)
	job := newTestJob(t, store, shardrpc.NewFakeClient())

	d := NewShardDriver(job, shard, types.HybridTimestamp{Physical: 5})

	if !d.done {
		t.Fatal("expected driver done when checkpoint cursor is present and empty")
	}
}

func TestShardDriverPersistsCheckpointBeforeNextChunk(t *testing.T) {
	shard := &catalogstore.ShardRow{TableID: "t1", ShardID: "s1"}
	store := newTestStore(t)
	client := shardrpc.NewFakeClient()
	client.ChunkResponses["s1"] = []shardrpc.ChunkResponse{
		{NextKey: types.Key("row10")},
		{NextKey: types.Key("")},
	}
	job := newTestJob(t, store, client)

	d := NewShardDriver(job, shard, types.HybridTimestamp{Physical: 5})
	ctx := context.Background()

	d.LaunchNextChunkOrDone(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		d.mu.Lock()
		done := d.done
		d.mu.Unlock()
		if done {
			break
		}
		time.Sleep(time.Millisecond)
	}

	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if !done {
		t.Fatal("expected shard driver to finish after consuming both chunk responses")
	}
	if client.ChunkCalls() != 2 {
		t.Errorf("ChunkCalls() = %d, want 2", client.ChunkCalls())
	}

	persisted, err := store.FindShards(ctx, "t1")
	if err != nil {
		t.Fatalf("FindShards failed: %v", err)
	}
	if len(persisted) != 1 {
		t.Fatalf("expected 1 persisted shard row, got %d", len(persisted))
	}
	cursor, started := persisted[0].Cursor("idx1")
	if !started || !cursor.Empty() {
		t.Errorf("expected persisted checkpoint to be present and empty, got cursor=%q started=%v", cursor, started)
	}
}
