// Package altertable implements the alter-table driver (C2): the single
// entry point invoked whenever a base table's schema version is
// committed. It inspects every attached index and acts on exactly one
// priority bucket per call (every index in the advance bucket moves
// together), until the table settles back into RUNNING.
package altertable

import (
	"context"
	"time"

	"github.com/cascadedb/cascade/internal/backfill"
	"github.com/cascadedb/cascade/internal/catalogstore"
	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/pkg/types"
)

// IndexCatalogDeleter is the external contract for removing a fully
// unused index's catalog entry. Physical index deletion is a
// non-backfill catalog operation and is named here only by contract.
type IndexCatalogDeleter interface {
	DeleteIndexInfo(ctx context.Context, tableID types.TableID, indexID types.IndexID) error
}

// Driver is the alter-table entry point (C2).
type Driver struct {
	Store       catalogstore.Store
	Jobs        *backfill.Registry
	Broadcaster backfill.AlterTableBroadcaster
	Deleter     IndexCatalogDeleter

	// LeaderTerm fences every catalog write this driver issues; it is the
	// current master's term, independent of the schema version being
	// advanced.
	LeaderTerm int64

	// BackfillConfig configures every BackfillJob this driver starts.
	BackfillConfig backfill.Config

	// SlowdownRPCs is TEST_slowdown_backfill_alter_table_rpcs_ms: a sleep
	// injected immediately before and after a permission-update persist.
	// Zero at the default, so it never affects production behavior.
	SlowdownRPCs time.Duration
}

// LaunchNextVersionIfNecessary is the alter-table entry point, called
// after every base-table schema commit. It advances at most one index
// permission bucket per call: advance > delete > backfill > quiesce.
func (d *Driver) LaunchNextVersionIfNecessary(ctx context.Context, tableID types.TableID, expectedVersion int64) error {
	row, err := d.Store.FindTable(ctx, tableID)
	if err != nil {
		return err
	}
	if row == nil {
		return cascadeerrors.Internal("table not found: "+string(tableID), nil)
	}
	if row.SchemaVersion != expectedVersion {
		return nil
	}

	toAdvance := make(map[types.IndexID]permission.Permission)
	var toDelete, toBackfill []types.IndexID

	for _, idx := range row.Indexes {
		switch {
		case idx.Permission == permission.DoBackfill:
			toBackfill = append(toBackfill, idx.IndexID)
		case idx.Permission == permission.IndexUnused:
			toDelete = append(toDelete, idx.IndexID)
		case !permission.IsTerminal(idx.Permission):
			next, err := permission.Next(idx.Permission)
			if err != nil {
				return err
			}
			toAdvance[idx.IndexID] = next
		}
	}

	switch {
	case len(toAdvance) > 0:
		return d.advance(ctx, tableID, toAdvance)
	case len(toDelete) > 0:
		return d.deleteFirst(ctx, tableID, toDelete[0], expectedVersion)
	case len(toBackfill) > 0:
		return d.StartBackfill(ctx, tableID, toBackfill[0])
	default:
		return d.clearAlteringState(ctx, tableID, expectedVersion)
	}
}

func (d *Driver) advance(ctx context.Context, tableID types.TableID, mapping map[types.IndexID]permission.Permission) error {
	d.sleepForTest()
	row, err := catalogstore.UpdateIndexPermission(ctx, d.Store, tableID, mapping, d.LeaderTerm)
	d.sleepForTest()
	if err != nil {
		return err
	}
	return d.Broadcaster.SendAlterTableRequest(ctx, row.TableID)
}

func (d *Driver) deleteFirst(ctx context.Context, tableID types.TableID, indexID types.IndexID, expectedVersion int64) error {
	if d.Deleter != nil {
		if err := d.Deleter.DeleteIndexInfo(ctx, tableID, indexID); err != nil {
			return err
		}
	}
	return d.clearAlteringState(ctx, tableID, expectedVersion)
}

func (d *Driver) clearAlteringState(ctx context.Context, tableID types.TableID, expectedVersion int64) error {
	err := catalogstore.ClearAlteringState(ctx, d.Store, tableID, expectedVersion, d.LeaderTerm)
	if err != nil && cascadeerrors.GetCategory(err) == cascadeerrors.CategoryAlreadyPresent {
		return nil
	}
	return err
}

// StartBackfill enforces the single-builder invariant, then constructs and
// launches a BackfillJob for indexID. A duplicate call for a table already
// under construction *in this process* is reported as success, per §4.2's
// Already-Present handling. A table whose catalog row already carries
// is_backfilling=true but that has no live Job in the Registry is a
// fresh leader picking up after a failover, not a duplicate: is_backfilling
// only fences across masters, Registry is the in-process at-most-one
// guard, so this case reconstructs and launches a Job instead of no-oping
// (NewJob resumes from whatever backfilling_timestamp/checkpoints are
// already persisted).
func (d *Driver) StartBackfill(ctx context.Context, tableID types.TableID, indexID types.IndexID) error {
	row, err := d.Store.FindTable(ctx, tableID)
	if err != nil {
		return err
	}
	if row == nil {
		return cascadeerrors.Internal("table not found: "+string(tableID), nil)
	}

	if row.IsBackfilling {
		if _, live := d.Jobs.GetBackfillJob(tableID); live {
			return nil
		}
		return d.launchJob(ctx, tableID, indexID)
	}

	d.sleepForTest()
	row.FullyAppliedSchema = row.Schema
	row.FullyAppliedSchemaVersion = row.SchemaVersion
	row.FullyAppliedIndexes = append([]catalogstore.IndexDescriptor(nil), row.Indexes...)
	row.IsBackfilling = true
	if err := d.Store.UpdateItem(ctx, row, d.LeaderTerm); err != nil {
		return err
	}
	d.sleepForTest()

	return d.launchJob(ctx, tableID, indexID)
}

func (d *Driver) launchJob(ctx context.Context, tableID types.TableID, indexID types.IndexID) error {
	job, err := backfill.NewJob(ctx, d.BackfillConfig, tableID, indexID, d.LeaderTerm)
	if err != nil {
		return err
	}
	if !d.Jobs.Register(tableID, job) {
		return nil
	}
	return job.Launch(ctx)
}

func (d *Driver) sleepForTest() {
	if d.SlowdownRPCs > 0 {
		time.Sleep(d.SlowdownRPCs)
	}
}
