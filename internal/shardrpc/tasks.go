package shardrpc

import (
	"context"

	"github.com/cascadedb/cascade/pkg/types"
)

// GetSafeTimeTask asks one shard leader for a read timestamp safe for the
// whole backfill job to use, then reports the result to a BackfillJob via
// OnComplete (the job's UpdateSafeTime, §4.3).
type GetSafeTimeTask struct {
	*Task
	client    Client
	shard     types.ShardID
	minCutoff types.HybridTimestamp

	// OnComplete is invoked exactly once, with the elected timestamp on
	// success or the zero value and a non-nil err on failure.
	OnComplete func(ht types.HybridTimestamp, err error)
}

// NewGetSafeTimeTask constructs a task for one shard. Call Run to start it.
func NewGetSafeTimeTask(client Client, shard types.ShardID, minCutoff types.HybridTimestamp, onComplete func(types.HybridTimestamp, error)) *GetSafeTimeTask {
	return &GetSafeTimeTask{
		Task:       newTask("get_safe_time"),
		client:     client,
		shard:      shard,
		minCutoff:  minCutoff,
		OnComplete: onComplete,
	}
}

// Run executes the task under cfg's retry policy and invokes OnComplete
// exactly once.
func (t *GetSafeTimeTask) Run(ctx context.Context, cfg RetryConfig) {
	var result types.HybridTimestamp
	err := t.run(ctx, cfg, func(attemptCtx context.Context) error {
		ht, err := t.client.GetSafeTime(attemptCtx, t.shard, t.minCutoff)
		if err != nil {
			return err
		}
		result = ht
		return nil
	})
	t.OnComplete(result, err)
}

// BackfillChunkTask asks one shard to scan and emit one chunk of index
// entries starting at startKey, then reports the next resume cursor to a
// ShardBackfill via OnComplete (its Done, §4.4).
type BackfillChunkTask struct {
	*Task
	client Client
	req    BackfillChunkRequest

	// OnComplete is invoked exactly once with the next resume key (empty
	// meaning "partition exhausted") on success, or a non-nil err.
	OnComplete func(nextKey types.Key, err error)
}

// NewBackfillChunkTask constructs a task for one chunk of one shard.
func NewBackfillChunkTask(client Client, req BackfillChunkRequest, onComplete func(types.Key, error)) *BackfillChunkTask {
	return &BackfillChunkTask{
		Task:       newTask("backfill_chunk"),
		client:     client,
		req:        req,
		OnComplete: onComplete,
	}
}

// Run executes the task under cfg's retry policy and invokes OnComplete
// exactly once.
func (t *BackfillChunkTask) Run(ctx context.Context, cfg RetryConfig) {
	var nextKey types.Key
	err := t.run(ctx, cfg, func(attemptCtx context.Context) error {
		k, err := t.client.BackfillChunk(attemptCtx, t.req)
		if err != nil {
			return err
		}
		nextKey = k
		return nil
	})
	t.OnComplete(nextKey, err)
}

// AllowCompactionGCTask tells one index-table shard leader that delete
// markers may be reclaimed. It is fire-and-forget from the job's
// perspective — failures are logged by the caller, not retried forever,
// since a missed GC signal only delays reclamation rather than corrupting
// anything.
type AllowCompactionGCTask struct {
	*Task
	client Client
	shard  types.ShardID

	OnComplete func(err error)
}

// NewAllowCompactionGCTask constructs a task for one index-table shard.
func NewAllowCompactionGCTask(client Client, shard types.ShardID, onComplete func(error)) *AllowCompactionGCTask {
	return &AllowCompactionGCTask{
		Task:       newTask("allow_compaction_gc"),
		client:     client,
		shard:      shard,
		OnComplete: onComplete,
	}
}

// Run executes the task under cfg's retry policy and invokes OnComplete
// exactly once.
func (t *AllowCompactionGCTask) Run(ctx context.Context, cfg RetryConfig) {
	err := t.run(ctx, cfg, func(attemptCtx context.Context) error {
		return t.client.AllowCompactionGC(attemptCtx, t.shard)
	})
	t.OnComplete(err)
}
