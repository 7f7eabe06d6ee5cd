package catalogstore

import (
	"fmt"

	"context"

	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/pkg/types"
)

// UpdateIndexPermission rewrites the permission of every index named in
// mapping, snapshots the table's current schema and index list into the
// fully_applied_* fields, bumps schema_version by one, marks the table
// ALTERING, and persists the row. This is the single catalog mutation
// shared by the alter-table driver's advance step and a BackfillJob's
// terminal permission flip: the job needs no separate expected-version
// guard when it calls this, because it already owns the exclusive
// transition out of DO_BACKFILL.
func UpdateIndexPermission(ctx context.Context, store Store, tableID types.TableID, mapping map[types.IndexID]permission.Permission, leaderTerm int64) (*BaseTableRow, error) {
	row, err := store.FindTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, cascadeerrors.Internal(fmt.Sprintf("table %s not found", tableID), nil)
	}

	row.FullyAppliedSchema = row.Schema
	row.FullyAppliedSchemaVersion = row.SchemaVersion
	row.FullyAppliedIndexes = append([]IndexDescriptor(nil), row.Indexes...)

	for i, idx := range row.Indexes {
		if p, ok := mapping[idx.IndexID]; ok {
			row.Indexes[i].Permission = p
		}
	}
	row.SchemaVersion++
	row.State = TableAltering

	if err := store.UpdateItem(ctx, row, leaderTerm); err != nil {
		return nil, err
	}
	return row, nil
}

// ClearAlteringState verifies the table is still at expectedVersion, erases
// the fully_applied_* snapshot, and flips the table back to RUNNING. A
// version mismatch means somebody else already finished the work, reported
// as an AlreadyPresent error so the caller treats it as a benign race
// rather than a failure.
func ClearAlteringState(ctx context.Context, store Store, tableID types.TableID, expectedVersion int64, leaderTerm int64) error {
	row, err := store.FindTable(ctx, tableID)
	if err != nil {
		return err
	}
	if row == nil {
		return cascadeerrors.Internal(fmt.Sprintf("table %s not found", tableID), nil)
	}
	if row.SchemaVersion != expectedVersion {
		return cascadeerrors.AlreadyPresent(fmt.Sprintf("table %s already advanced past version %d", tableID, expectedVersion))
	}

	row.FullyAppliedSchema = nil
	row.FullyAppliedSchemaVersion = 0
	row.FullyAppliedIndexes = nil
	row.FullyAppliedIndexInfo = nil
	row.State = TableRunning

	return store.UpdateItem(ctx, row, leaderTerm)
}

// ClearBackfillCheckpoint erases backfilled_until[indexID] from every shard
// of tableID in a single batch, and erases the table's backfilling_timestamp
// and is_backfilling flag — the cleanup shared by both a successful and a
// failed BackfillJob termination (§4.3 step 5).
func ClearBackfillCheckpoint(ctx context.Context, store Store, tableID types.TableID, indexID types.IndexID, leaderTerm int64) error {
	shards, err := store.FindShards(ctx, tableID)
	if err != nil {
		return err
	}
	if len(shards) > 0 {
		for _, s := range shards {
			delete(s.BackfilledUntil, indexID)
		}
		if err := store.UpdateItems(ctx, shards, leaderTerm); err != nil {
			return err
		}
	}

	row, err := store.FindTable(ctx, tableID)
	if err != nil {
		return err
	}
	if row == nil {
		return cascadeerrors.Internal(fmt.Sprintf("table %s not found", tableID), nil)
	}
	row.BackfillingTimestamp = types.Invalid
	row.IsBackfilling = false
	return store.UpdateItem(ctx, row, leaderTerm)
}
