package catalogstore

import (
	"context"
	"os"
	"testing"

	"github.com/cascadedb/cascade/pkg/types"
)

func newTestShardedStore(t *testing.T, shardCount int) *ShardedStore {
	t.Helper()
	dir, err := os.MkdirTemp("", "sharded_catalog_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	ss, err := NewShardedStore(dir, shardCount)
	if err != nil {
		t.Fatalf("failed to create sharded store: %v", err)
	}
	t.Cleanup(func() { ss.Close() })
	return ss
}

func TestShardedStoreRoutingIsStable(t *testing.T) {
	ss := newTestShardedStore(t, 4)

	first := ss.storeFor("table-abc")
	for i := 0; i < 10; i++ {
		if ss.storeFor("table-abc") != first {
			t.Fatal("storeFor must route the same table ID to the same backing store every time")
		}
	}
}

func TestShardedStoreUpdateAndFindTable(t *testing.T) {
	ss := newTestShardedStore(t, 4)
	ctx := context.Background()

	row := &BaseTableRow{TableID: "t1", SchemaVersion: 3, State: TableRunning}
	if err := ss.UpdateItem(ctx, row, 1); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	got, err := ss.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	if got == nil || got.SchemaVersion != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestShardedStoreListAlteringTablesMergesAcrossShards(t *testing.T) {
	ss := newTestShardedStore(t, 4)
	ctx := context.Background()

	tableIDs := []types.TableID{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}
	for _, id := range tableIDs {
		if err := ss.UpdateItem(ctx, &BaseTableRow{TableID: id, State: TableAltering}, 1); err != nil {
			t.Fatalf("UpdateItem(%s) failed: %v", id, err)
		}
	}

	got, err := ss.ListAlteringTables(ctx)
	if err != nil {
		t.Fatalf("ListAlteringTables failed: %v", err)
	}
	if len(got) != len(tableIDs) {
		t.Fatalf("expected %d altering tables across shards, got %d", len(tableIDs), len(got))
	}
}

func TestShardedStoreUpdateItemsGroupsByTable(t *testing.T) {
	ss := newTestShardedStore(t, 4)
	ctx := context.Background()

	rows := []*ShardRow{
		{TableID: "t1", ShardID: "s1", BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("")}},
		{TableID: "t2", ShardID: "s1", BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("")}},
	}
	if err := ss.UpdateItems(ctx, rows, 1); err != nil {
		t.Fatalf("UpdateItems failed: %v", err)
	}

	for _, tableID := range []types.TableID{"t1", "t2"} {
		shards, err := ss.FindShards(ctx, tableID)
		if err != nil {
			t.Fatalf("FindShards(%s) failed: %v", tableID, err)
		}
		if len(shards) != 1 {
			t.Errorf("table %s: expected 1 shard, got %d", tableID, len(shards))
		}
	}
}

func TestShardedStoreTotalTableCount(t *testing.T) {
	ss := newTestShardedStore(t, 4)
	ctx := context.Background()

	for _, id := range []types.TableID{"t1", "t2", "t3"} {
		if err := ss.UpdateItem(ctx, &BaseTableRow{TableID: id, State: TableRunning}, 1); err != nil {
			t.Fatalf("UpdateItem(%s) failed: %v", id, err)
		}
	}

	total, err := ss.TotalTableCount(ctx)
	if err != nil {
		t.Fatalf("TotalTableCount failed: %v", err)
	}
	if total != 3 {
		t.Errorf("got total %d, want 3", total)
	}
}
