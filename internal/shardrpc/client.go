package shardrpc

import (
	"context"

	"github.com/cascadedb/cascade/pkg/types"
)

// BackfillChunkRequest is the payload of one BackfillChunk attempt (§4.5).
type BackfillChunkRequest struct {
	Shard         types.ShardID
	ReadTimestamp types.HybridTimestamp
	SchemaVersion int64
	StartKey      types.Key
	IndexList     []types.IndexID
}

// Client is the external shard-RPC subsystem contract of §6: three
// asynchronous procedures (GetSafeTimeAsync, BackfillIndexAsync,
// BackfillDoneAsync in the spec's naming) expressed here as
// context-cancellable synchronous calls, since Go's idiom is to let the
// caller decide sync-vs-async by running the call in its own goroutine
// rather than threading a callback through the API.
type Client interface {
	// GetSafeTime asks shard's leader for the minimum hybrid timestamp
	// safe to read at, no earlier than minCutoff.
	GetSafeTime(ctx context.Context, shard types.ShardID, minCutoff types.HybridTimestamp) (types.HybridTimestamp, error)

	// BackfillChunk asks the shard leader to scan one chunk of its
	// partition and emit index entries, returning the next resume key or
	// an empty Key meaning the partition is exhausted.
	BackfillChunk(ctx context.Context, req BackfillChunkRequest) (nextKey types.Key, err error)

	// AllowCompactionGC tells an index-table shard leader that delete
	// markers may now be reclaimed by background compaction.
	AllowCompactionGC(ctx context.Context, shard types.ShardID) error
}
