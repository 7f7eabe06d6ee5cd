package backfill

import (
	"context"
	"sync"

	"github.com/cascadedb/cascade/internal/catalogstore"
	"github.com/cascadedb/cascade/internal/shardrpc"
	"github.com/cascadedb/cascade/pkg/types"
)

// ShardDriver (C4) drives one shard's chunked backfill scan, persisting the
// resume cursor before each next chunk is issued so that a crash never
// loses or repeats a row, provided chunk RPCs are idempotent for the same
// (read_timestamp, start_key) pair.
type ShardDriver struct {
	job    *Job
	shard  *catalogstore.ShardRow
	readTS types.HybridTimestamp

	mu     sync.Mutex
	cursor types.Key
	done   bool
}

// NewShardDriver constructs a driver for shard, resuming from whatever
// checkpoint is already recorded for job's index (§4.4): absent means scan
// from the beginning, present-and-empty means already done.
func NewShardDriver(job *Job, shard *catalogstore.ShardRow, readTS types.HybridTimestamp) *ShardDriver {
	cursor, started := shard.Cursor(job.IndexID)
	return &ShardDriver{
		job:    job,
		shard:  shard,
		readTS: readTS,
		cursor: cursor,
		done:   started && cursor.Empty(),
	}
}

// LaunchNextChunkOrDone issues the next BackfillChunk RPC, or reports
// success to the job if this shard already finished.
func (d *ShardDriver) LaunchNextChunkOrDone(ctx context.Context) {
	d.mu.Lock()
	done := d.done
	cursor := d.cursor
	d.mu.Unlock()

	if done {
		d.job.Done(ctx, nil)
		return
	}

	req := shardrpc.BackfillChunkRequest{
		Shard:         d.shard.ShardID,
		ReadTimestamp: d.readTS,
		SchemaVersion: d.job.schemaVersion,
		StartKey:      cursor,
		IndexList:     []types.IndexID{d.job.IndexID},
	}
	task := shardrpc.NewBackfillChunkTask(d.job.client, req, func(nextKey types.Key, err error) {
		d.onChunkDone(ctx, nextKey, err)
	})
	task.Run(ctx, d.job.rpcCfg)
}

func (d *ShardDriver) onChunkDone(ctx context.Context, nextKey types.Key, err error) {
	if err != nil {
		d.job.Done(ctx, err)
		return
	}

	d.mu.Lock()
	d.cursor = nextKey
	if d.shard.BackfilledUntil == nil {
		d.shard.BackfilledUntil = make(map[types.IndexID]types.Key)
	}
	d.shard.BackfilledUntil[d.job.IndexID] = nextKey
	finished := nextKey.Empty()
	d.mu.Unlock()

	if err := d.job.store.UpdateShardItem(ctx, d.shard, d.job.leaderTerm); err != nil {
		d.job.Done(ctx, err)
		return
	}

	if finished {
		d.mu.Lock()
		d.done = true
		d.mu.Unlock()
	}

	d.LaunchNextChunkOrDone(ctx)
}
