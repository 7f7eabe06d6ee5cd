package catalogstore

import (
	"context"
	"testing"

	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/pkg/types"
)

func TestUpdateIndexPermissionBumpsVersionAndSnapshots(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &BaseTableRow{
		TableID:       "t1",
		SchemaVersion: 3,
		Schema:        []byte("v3-schema"),
		Indexes:       []IndexDescriptor{{IndexID: "idx1", Permission: permission.DeleteOnly}},
		State:         TableRunning,
	}, 1)

	row, err := UpdateIndexPermission(ctx, store, "t1", map[types.IndexID]permission.Permission{
		"idx1": permission.WriteAndDelete,
	}, 1)
	if err != nil {
		t.Fatalf("UpdateIndexPermission failed: %v", err)
	}
	if row.SchemaVersion != 4 {
		t.Errorf("schema version = %d, want 4", row.SchemaVersion)
	}
	if row.State != TableAltering {
		t.Errorf("state = %s, want ALTERING", row.State)
	}
	if string(row.FullyAppliedSchema) != "v3-schema" || row.FullyAppliedSchemaVersion != 3 {
		t.Errorf("fully applied snapshot not captured: %+v", row)
	}
	desc, ok := row.HasIndex("idx1")
	if !ok || desc.Permission != permission.WriteAndDelete {
		t.Errorf("index permission not updated: %+v", row.Indexes)
	}

	persisted, err := store.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	if persisted.SchemaVersion != 4 {
		t.Errorf("persisted schema version = %d, want 4", persisted.SchemaVersion)
	}
}

func TestClearAlteringStateRejectsStaleVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &BaseTableRow{TableID: "t1", SchemaVersion: 5, State: TableAltering}, 1)

	err := ClearAlteringState(ctx, store, "t1", 4, 1)
	if err == nil {
		t.Fatal("expected AlreadyPresent error for stale expected version")
	}
}

func TestClearAlteringStateFlipsToRunning(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &BaseTableRow{
		TableID:                   "t1",
		SchemaVersion:             5,
		State:                     TableAltering,
		FullyAppliedSchema:        []byte("old"),
		FullyAppliedSchemaVersion: 4,
	}, 1)

	if err := ClearAlteringState(ctx, store, "t1", 5, 1); err != nil {
		t.Fatalf("ClearAlteringState failed: %v", err)
	}

	row, err := store.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	if row.State != TableRunning {
		t.Errorf("state = %s, want RUNNING", row.State)
	}
	if row.FullyAppliedSchemaVersion != 0 || len(row.FullyAppliedSchema) != 0 {
		t.Errorf("fully applied snapshot not cleared: %+v", row)
	}
}

func TestClearBackfillCheckpointErasesCursorsAndTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.UpdateItem(ctx, &BaseTableRow{
		TableID:              "t1",
		State:                TableRunning,
		IsBackfilling:        true,
		BackfillingTimestamp: types.HybridTimestamp{Physical: 42},
	}, 1)
	store.UpdateShardItem(ctx, &ShardRow{
		TableID:         "t1",
		ShardID:         "s1",
		BackfilledUntil: map[types.IndexID]types.Key{"idx1": types.Key("row50")},
	}, 1)

	if err := ClearBackfillCheckpoint(ctx, store, "t1", "idx1", 1); err != nil {
		t.Fatalf("ClearBackfillCheckpoint failed: %v", err)
	}

	shards, err := store.FindShards(ctx, "t1")
	if err != nil {
		t.Fatalf("FindShards failed: %v", err)
	}
	if _, started := shards[0].Cursor("idx1"); started {
		t.Error("expected checkpoint to be erased")
	}

	row, err := store.FindTable(ctx, "t1")
	if err != nil {
		t.Fatalf("FindTable failed: %v", err)
	}
	if row.IsBackfilling || row.BackfillingTimestamp.IsValid() {
		t.Errorf("expected is_backfilling cleared and timestamp invalidated, got %+v", row)
	}
}
