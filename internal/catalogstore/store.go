// Package catalogstore implements the persisted-state layout of §6: a
// BaseTable row (schema version, attached indexes and their permissions,
// the fully_applied_* snapshot, ALTERING/RUNNING lifecycle state,
// is_backfilling) and a Shard row (partition bounds, the per-index
// backfilled_until checkpoint map).
//
// The Store interface is the external catalog-store contract named in §6:
// UpdateItem/UpdateItems persist rows atomically and fail with NotLeader
// if the caller's leader term is stale; FindTable/FindShards look rows up
// by identity.
package catalogstore

import (
	"context"

	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/pkg/types"
)

// TableState is the BaseTable lifecycle state.
type TableState string

const (
	TableRunning  TableState = "RUNNING"
	TableAltering TableState = "ALTERING"
)

// IndexDescriptor is the identity and permission of one attached index, as
// stored on the BaseTable row.
type IndexDescriptor struct {
	IndexID    types.IndexID
	Permission permission.Permission
}

// BaseTableRow is the persisted record for one base table.
type BaseTableRow struct {
	TableID types.TableID

	SchemaVersion int64
	Schema        []byte // opaque, caller-defined encoding
	Indexes       []IndexDescriptor

	FullyAppliedSchema        []byte
	FullyAppliedSchemaVersion int64
	FullyAppliedIndexes       []IndexDescriptor
	FullyAppliedIndexInfo     []byte

	State TableState

	// BackfillingTimestamp is the elected read timestamp for the active
	// backfill job, if any. Absent (types.Invalid) means no job has
	// chosen one yet.
	BackfillingTimestamp types.HybridTimestamp
	IsBackfilling        bool
}

// HasIndex reports whether idx is attached to the table, returning its
// current descriptor.
func (r *BaseTableRow) HasIndex(idx types.IndexID) (IndexDescriptor, bool) {
	for _, d := range r.Indexes {
		if d.IndexID == idx {
			return d, true
		}
	}
	return IndexDescriptor{}, false
}

// ShardRow is the persisted record for one partition of a base table.
type ShardRow struct {
	TableID types.TableID
	ShardID types.ShardID

	PartitionStart types.Key
	PartitionEnd   types.Key

	// BackfilledUntil maps index ID to the resume cursor for that index's
	// backfill on this shard. A present-and-empty Key means the shard has
	// completed backfill for that index; an absent entry means not
	// started.
	BackfilledUntil map[types.IndexID]types.Key
}

// Cursor returns the resume cursor for idx, and whether the shard has
// started backfilling it at all.
func (r *ShardRow) Cursor(idx types.IndexID) (cursor types.Key, started bool) {
	cursor, started = r.BackfilledUntil[idx]
	return
}

// Done reports whether the shard has completed backfill for idx.
func (r *ShardRow) Done(idx types.IndexID) bool {
	cursor, started := r.BackfilledUntil[idx]
	return started && cursor.Empty()
}

// Store is the external catalog-store contract of §6.
type Store interface {
	// UpdateItem persists one BaseTableRow atomically. Fails with a
	// NotLeader CascadeError if leaderTerm is stale.
	UpdateItem(ctx context.Context, row *BaseTableRow, leaderTerm int64) error

	// UpdateShardItem persists one ShardRow atomically.
	UpdateShardItem(ctx context.Context, row *ShardRow, leaderTerm int64) error

	// UpdateItems persists many ShardRow mutations in a single batch, used
	// by BackfillJob's checkpoint-clearing step (§4.3 step 5).
	UpdateItems(ctx context.Context, rows []*ShardRow, leaderTerm int64) error

	// FindTable looks up a base table row by identifier.
	FindTable(ctx context.Context, id types.TableID) (*BaseTableRow, error)

	// FindShards returns every shard row belonging to a base table.
	FindShards(ctx context.Context, id types.TableID) ([]*ShardRow, error)

	// ListAlteringTables returns every base table currently in the
	// ALTERING state, for the reconciler's periodic re-invocation pass.
	ListAlteringTables(ctx context.Context) ([]types.TableID, error)

	Close() error
}
