// Package backfill implements the per-table backfill job (C3) and its
// per-shard drivers (C4): the orchestration that elects a safe read
// timestamp, fans out chunked scans to every shard, and promotes or
// demotes the index's permission once every shard finishes.
package backfill

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/cascadedb/cascade/internal/catalogstore"
	"github.com/cascadedb/cascade/internal/clock"
	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
	"github.com/cascadedb/cascade/internal/permission"
	"github.com/cascadedb/cascade/internal/shardrpc"
	"github.com/cascadedb/cascade/pkg/types"
)

// Status is the terminal-or-not state of a BackfillJob.
type Status string

const (
	StatusRunning  Status = "RUNNING"
	StatusComplete Status = "COMPLETE"
	StatusFailed   Status = "FAILED"
)

// Job is one table+index's backfill orchestration (C3). Constructing a Job
// captures the leader term and schema version current at that instant, and
// reads whatever backfilling_timestamp is already persisted on the base
// table so that a reconstructed Job (after a master failover) resumes
// instead of re-electing a read timestamp.
type Job struct {
	TableID types.TableID
	IndexID types.IndexID

	store        catalogstore.Store
	client       shardrpc.Client
	clk          clock.Clock
	rpcCfg       shardrpc.RetryConfig
	pollInterval time.Duration
	broadcaster  AlterTableBroadcaster

	leaderTerm    int64
	schemaVersion int64

	mu              sync.Mutex
	timestampChosen bool
	readTimestamp   types.HybridTimestamp
	done            bool
	status          Status
	numShards       int
	shardsPending   int
	shards          []*catalogstore.ShardRow
	drivers         map[types.ShardID]*ShardDriver

	// OnTerminal is invoked exactly once, when the job reaches COMPLETE or
	// FAILED, so a Registry can release the table's single-builder slot.
	OnTerminal func(status Status)
}

// Config bundles a Job's collaborators, grouped to keep NewJob's signature
// manageable as the set of dependencies grows.
type Config struct {
	Store        catalogstore.Store
	Client       shardrpc.Client
	Clock        clock.Clock
	RPCConfig    shardrpc.RetryConfig
	PollInterval time.Duration
	Broadcaster  AlterTableBroadcaster
}

// NewJob constructs a Job for tableID/indexID, capturing leaderTerm and
// reading the table's current schema version and any already-persisted
// backfilling_timestamp.
func NewJob(ctx context.Context, cfg Config, tableID types.TableID, indexID types.IndexID, leaderTerm int64) (*Job, error) {
	row, err := cfg.Store.FindTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, cascadeerrors.Internal(fmt.Sprintf("table %s not found", tableID), nil)
	}

	j := &Job{
		TableID:       tableID,
		IndexID:       indexID,
		store:         cfg.Store,
		client:        cfg.Client,
		clk:           cfg.Clock,
		rpcCfg:        cfg.RPCConfig,
		pollInterval:  cfg.PollInterval,
		broadcaster:   cfg.Broadcaster,
		leaderTerm:    leaderTerm,
		schemaVersion: row.SchemaVersion,
		status:        StatusRunning,
		drivers:       make(map[types.ShardID]*ShardDriver),
	}
	if row.BackfillingTimestamp.IsValid() {
		j.timestampChosen = true
		j.readTimestamp = row.BackfillingTimestamp
	}
	return j, nil
}

// Status reports the job's current terminal-or-not state.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// ReadTimestamp reports the elected read timestamp and whether the
// election has completed, for the GetBackfillJob observability contract
// of §6.
func (j *Job) ReadTimestamp() (types.HybridTimestamp, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.readTimestamp, j.timestampChosen
}

// NumShards reports the number of shards this job fanned out to.
func (j *Job) NumShards() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.numShards
}

// ShardsPending reports how many shards have not yet reported completion
// for whichever phase (safe-time election or chunked scan) is currently
// running.
func (j *Job) ShardsPending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.shardsPending
}

// Launch enumerates the table's shards and starts either safe-time
// election or the backfill scan itself, depending on whether a read
// timestamp was already persisted when this Job was constructed. A base
// table with zero shards has nothing to elect a timestamp against or scan,
// so it is driven straight to success (§8) rather than through either
// phase's per-shard fan-out, which would never report completion.
func (j *Job) Launch(ctx context.Context) error {
	shards, err := j.store.FindShards(ctx, j.TableID)
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.shards = shards
	j.numShards = len(shards)
	j.shardsPending = j.numShards
	alreadyChosen := j.timestampChosen
	j.mu.Unlock()

	if j.numShards == 0 {
		return j.completeWithNoShards(ctx, alreadyChosen)
	}

	if alreadyChosen {
		return j.LaunchBackfill(ctx)
	}
	return j.LaunchComputeSafeTime(ctx)
}

// completeWithNoShards handles the empty-base-table boundary case (§8): it
// elects max(min_cutoff, clock.Now()) if no timestamp was already
// persisted, then promotes the index directly, since there are zero
// BackfillChunk RPCs to wait for.
func (j *Job) completeWithNoShards(ctx context.Context, alreadyChosen bool) error {
	if !alreadyChosen {
		ts := j.clk.Now()
		j.mu.Lock()
		j.readTimestamp = j.readTimestamp.Max(ts)
		j.timestampChosen = true
		finalTS := j.readTimestamp
		j.mu.Unlock()

		if err := j.persistBackfillingTimestamp(ctx, finalTS); err != nil {
			return err
		}
	}
	j.AlterTableStateToSuccess(ctx)
	return nil
}

// LaunchComputeSafeTime fans out one GetSafeTime task per shard, each
// requiring a timestamp no earlier than now().
func (j *Job) LaunchComputeSafeTime(ctx context.Context) error {
	minCutoff := j.clk.Now()

	j.mu.Lock()
	shards := j.shards
	j.mu.Unlock()

	for _, shard := range shards {
		shard := shard
		go func() {
			task := shardrpc.NewGetSafeTimeTask(j.client, shard.ShardID, minCutoff, func(ht types.HybridTimestamp, err error) {
				j.UpdateSafeTime(ctx, ht, err)
			})
			task.Run(ctx, j.rpcCfg)
		}()
	}
	return nil
}

// UpdateSafeTime is the GetSafeTime task completion callback (§4.3).
func (j *Job) UpdateSafeTime(ctx context.Context, ht types.HybridTimestamp, taskErr error) {
	if taskErr != nil {
		j.mu.Lock()
		first := !j.timestampChosen
		j.timestampChosen = true
		j.mu.Unlock()

		if first {
			log.Printf("backfill: safe-time election failed for table %s index %s, aborting: %v", j.TableID, j.IndexID, taskErr)
			j.abortElection(ctx)
		}
		return
	}

	j.mu.Lock()
	j.readTimestamp = j.readTimestamp.Max(ht)
	j.shardsPending--
	shouldLaunch := j.shardsPending == 0 && !j.timestampChosen
	if shouldLaunch {
		j.timestampChosen = true
	}
	finalTS := j.readTimestamp
	j.mu.Unlock()

	if !shouldLaunch {
		return
	}

	if err := j.persistBackfillingTimestamp(ctx, finalTS); err != nil {
		log.Printf("backfill: failed to persist backfilling_timestamp for table %s: %v", j.TableID, err)
		return
	}
	if err := j.LaunchBackfill(ctx); err != nil {
		log.Printf("backfill: failed to launch backfill for table %s index %s: %v", j.TableID, j.IndexID, err)
	}
}

func (j *Job) persistBackfillingTimestamp(ctx context.Context, ts types.HybridTimestamp) error {
	row, err := j.store.FindTable(ctx, j.TableID)
	if err != nil {
		return err
	}
	if row == nil {
		return cascadeerrors.Internal(fmt.Sprintf("table %s not found", j.TableID), nil)
	}
	row.BackfillingTimestamp = ts
	return j.store.UpdateItem(ctx, row, j.leaderTerm)
}

// abortElection handles a safe-time election failure: the job never
// started scanning any shard, so there is no checkpoint to clear, but the
// index still must be driven to the removal path.
func (j *Job) abortElection(ctx context.Context) {
	mapping := map[types.IndexID]permission.Permission{j.IndexID: permission.WriteAndDeleteWhileRemoving}
	if _, err := catalogstore.UpdateIndexPermission(ctx, j.store, j.TableID, mapping, j.leaderTerm); err != nil {
		log.Printf("backfill: failed to demote index %s after safe-time election failure: %v", j.IndexID, err)
	}
	if j.broadcaster != nil {
		if err := j.broadcaster.SendAlterTableRequest(ctx, j.TableID); err != nil {
			log.Printf("backfill: alter-table broadcast failed for table %s: %v", j.TableID, err)
		}
	}
	j.finish(ctx, StatusFailed)
}

// LaunchBackfill resets the shard countdown and starts one ShardDriver per
// shard, each resuming from its persisted checkpoint.
func (j *Job) LaunchBackfill(ctx context.Context) error {
	j.mu.Lock()
	j.shardsPending = j.numShards
	shards := j.shards
	readTS := j.readTimestamp
	j.mu.Unlock()

	for _, shard := range shards {
		driver := NewShardDriver(j, shard, readTS)
		j.mu.Lock()
		j.drivers[shard.ShardID] = driver
		j.mu.Unlock()
		go driver.LaunchNextChunkOrDone(ctx)
	}
	return nil
}

// Done is called by each ShardDriver when it reaches a terminal state
// (§4.3).
func (j *Job) Done(ctx context.Context, shardErr error) {
	if shardErr != nil {
		j.mu.Lock()
		first := !j.done
		j.done = true
		j.mu.Unlock()

		if first {
			log.Printf("backfill: shard backfill failed for table %s index %s, aborting job: %v", j.TableID, j.IndexID, shardErr)
			j.AlterTableStateToAbort(ctx)
		}
		return
	}

	j.mu.Lock()
	j.shardsPending--
	shouldComplete := j.shardsPending == 0 && !j.done
	if shouldComplete {
		j.done = true
	}
	j.mu.Unlock()

	if shouldComplete {
		j.AlterTableStateToSuccess(ctx)
	}
}

// AlterTableStateToSuccess promotes the index to READ_WRITE_AND_DELETE,
// broadcasts the change, waits for the index table's own alter to settle
// before allowing delete-marker compaction, then clears every checkpoint
// and marks the job COMPLETE (§4.3).
func (j *Job) AlterTableStateToSuccess(ctx context.Context) {
	mapping := map[types.IndexID]permission.Permission{j.IndexID: permission.ReadWriteAndDelete}
	if _, err := catalogstore.UpdateIndexPermission(ctx, j.store, j.TableID, mapping, j.leaderTerm); err != nil {
		log.Printf("backfill: failed to promote index %s to READ_WRITE_AND_DELETE: %v", j.IndexID, err)
		j.finish(ctx, StatusFailed)
		return
	}
	if j.broadcaster != nil {
		if err := j.broadcaster.SendAlterTableRequest(ctx, j.TableID); err != nil {
			log.Printf("backfill: alter-table broadcast failed for table %s: %v", j.TableID, err)
		}
	}

	if err := j.allowCompactionsToGCDeleteMarkers(ctx); err != nil {
		log.Printf("backfill: AllowCompactionsToGCDeleteMarkers failed for index %s: %v", j.IndexID, err)
	}

	if err := catalogstore.ClearBackfillCheckpoint(ctx, j.store, j.TableID, j.IndexID, j.leaderTerm); err != nil {
		log.Printf("backfill: failed to clear backfill checkpoint for table %s index %s: %v", j.TableID, j.IndexID, err)
	}

	j.finish(ctx, StatusComplete)
}

// AlterTableStateToAbort is the mirror image of AlterTableStateToSuccess:
// the index is driven to the removal path instead of promoted, and no
// compaction-GC signal is sent (§4.3).
func (j *Job) AlterTableStateToAbort(ctx context.Context) {
	mapping := map[types.IndexID]permission.Permission{j.IndexID: permission.WriteAndDeleteWhileRemoving}
	if _, err := catalogstore.UpdateIndexPermission(ctx, j.store, j.TableID, mapping, j.leaderTerm); err != nil {
		log.Printf("backfill: failed to demote index %s after backfill failure: %v", j.IndexID, err)
	}
	if j.broadcaster != nil {
		if err := j.broadcaster.SendAlterTableRequest(ctx, j.TableID); err != nil {
			log.Printf("backfill: alter-table broadcast failed for table %s: %v", j.TableID, err)
		}
	}

	if err := catalogstore.ClearBackfillCheckpoint(ctx, j.store, j.TableID, j.IndexID, j.leaderTerm); err != nil {
		log.Printf("backfill: failed to clear backfill checkpoint for table %s index %s: %v", j.TableID, j.IndexID, err)
	}

	j.finish(ctx, StatusFailed)
}

// allowCompactionsToGCDeleteMarkers polls the index table (the secondary
// index has its own BaseTable row, identified by IndexID) until its state
// is RUNNING — meaning no alter is in flight on it — then clears its
// is_backfilling flag and tells every one of its shards that delete
// markers may be reclaimed. The poll respects ctx cancellation and aborts,
// without retrying, if the index table is concurrently deleted.
func (j *Job) allowCompactionsToGCDeleteMarkers(ctx context.Context) error {
	indexTableID := types.TableID(j.IndexID)

	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		row, err := j.store.FindTable(ctx, indexTableID)
		if err != nil {
			return err
		}
		if row == nil {
			log.Printf("backfill: index table %s deleted while waiting for alter-table completion, aborting GC wait", indexTableID)
			return nil
		}
		if row.State == catalogstore.TableRunning {
			row.IsBackfilling = false
			if err := j.store.UpdateItem(ctx, row, j.leaderTerm); err != nil {
				return err
			}
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	shards, err := j.store.FindShards(ctx, indexTableID)
	if err != nil {
		return err
	}
	for _, shard := range shards {
		done := make(chan error, 1)
		task := shardrpc.NewAllowCompactionGCTask(j.client, shard.ShardID, func(err error) { done <- err })
		task.Run(ctx, j.rpcCfg)
		if err := <-done; err != nil {
			log.Printf("backfill: AllowCompactionGC failed for shard %s: %v", shard.ShardID, err)
		}
	}
	return nil
}

func (j *Job) finish(ctx context.Context, status Status) {
	j.mu.Lock()
	j.status = status
	j.mu.Unlock()
	if j.OnTerminal != nil {
		j.OnTerminal(status)
	}
}
