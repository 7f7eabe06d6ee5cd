package catalogstore

import (
	"context"
	"os"
	"testing"

	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/pkg/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "catalogstore_test_*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := NewSQLiteStore(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUpdateAndFindTable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	row := &BaseTableRow{
		TableID:       "t1",
		SchemaVersion: 7,
		Schema:        []byte("schema-v7"),
		Indexes: []IndexDescriptor{
			{IndexID: "idx1", Permission: permission.DeleteOnly},
		},
		State: TableRunning,
	}

	if err := store.UpdateItem(ctx, row, 1); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	got, err := store.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected table to be found")
	}
	if got.SchemaVersion != 7 || string(got.Schema) != "schema-v7" {
		t.Errorf("got %+v", got)
	}
	if len(got.Indexes) != 1 || got.Indexes[0].Permission != permission.DeleteOnly {
		t.Errorf("got indexes %+v", got.Indexes)
	}
}

func TestFindTableMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)
	got, err := store.FindTable(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestUpdateItemRejectsStaleLeaderTerm(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	row := &BaseTableRow{TableID: "t1", SchemaVersion: 1, State: TableRunning}
	if err := store.UpdateItem(ctx, row, 5); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}

	row.SchemaVersion = 2
	err := store.UpdateItem(ctx, row, 3)
	if err == nil {
		t.Fatal("expected NotLeader error for stale term")
	}
}

func TestShardCheckpointRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shard := &ShardRow{
		TableID: "t1",
		ShardID: "s1",
		BackfilledUntil: map[types.IndexID]types.Key{
			"idx1": types.Key("k50"),
		},
	}
	if err := store.UpdateShardItem(ctx, shard, 1); err != nil {
		t.Fatalf("UpdateShardItem failed: %v", err)
	}

	shards, err := store.FindShards(ctx, "t1")
	if err != nil {
		t.Fatalf("FindShards failed: %v", err)
	}
	if len(shards) != 1 {
		t.Fatalf("expected 1 shard, got %d", len(shards))
	}
	cursor, started := shards[0].Cursor("idx1")
	if !started || string(cursor) != "k50" {
		t.Errorf("got cursor=%q started=%v", cursor, started)
	}
}

func TestShardDoneWhenCheckpointEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	shard := &ShardRow{
		TableID:         "t1",
		ShardID:         "s1",
		BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("")},
	}
	if err := store.UpdateShardItem(ctx, shard, 1); err != nil {
		t.Fatalf("UpdateShardItem failed: %v", err)
	}

	shards, err := store.FindShards(ctx, "t1")
	if err != nil {
		t.Fatalf("FindShards failed: %v", err)
	}
	if !shards[0].Done("idx1") {
		t.Error("expected shard to be reported done")
	}
}

func TestUpdateItemsBatchesAcrossShards(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rows := []*ShardRow{
		{TableID: "t1", ShardID: "s1", BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("")}},
		{TableID: "t1", ShardID: "s2", BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("")}},
	}
	if err := store.UpdateItems(ctx, rows, 1); err != nil {
		t.Fatalf("UpdateItems failed: %v", err)
	}

	shards, err := store.FindShards(ctx, "t1")
	if err != nil {
		t.Fatalf("FindShards failed: %v", err)
	}
	if len(shards) != 2 {
		t.Fatalf("expected 2 shards, got %d", len(shards))
	}
}

func TestListAlteringTables(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &BaseTableRow{TableID: "t1", State: TableAltering}, 1)
	store.UpdateItem(ctx, &BaseTableRow{TableID: "t2", State: TableRunning}, 1)

	ids, err := store.ListAlteringTables(ctx)
	if err != nil {
		t.Fatalf("ListAlteringTables failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "t1" {
		t.Errorf("got %v, want [t1]", ids)
	}
}
