// Package shardrpc implements the uniform RPC-task envelope used by every
// call the backfill controller makes to a shard leader: GetSafeTime,
// BackfillChunk, and AllowCompactionGC (§4.5). All three share the same
// retry/deadline/cancellation machinery; only the request, the response
// decoding, and the error classification differ.
package shardrpc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
	"github.com/cascadedb/cascade/internal/observability"
)

// Status is the lifecycle state of one RPC task, per §4.5.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusRunning   Status = "RUNNING"
	StatusComplete  Status = "COMPLETE"
	StatusFailed    Status = "FAILED"
	StatusAborted   Status = "ABORTED"
	StatusReplaced  Status = "REPLACED"
)

func isTerminal(s Status) bool {
	switch s {
	case StatusComplete, StatusFailed, StatusAborted, StatusReplaced:
		return true
	default:
		return false
	}
}

// errAborted is returned from the retry loop's operation func to stop
// retrying immediately once a task has been aborted out from under it.
var errAborted = errors.New("shardrpc: task aborted")

// Task is the common retry/state envelope wrapping one RPC attempt
// sequence. Concrete tasks (GetSafeTimeTask, BackfillChunkTask,
// AllowCompactionGCTask) embed it.
type Task struct {
	mu     sync.Mutex
	status Status

	// name identifies the task type for metrics labeling ("get_safe_time",
	// "backfill_chunk", "allow_compaction_gc").
	name string
}

func newTask(name string) *Task {
	return &Task{status: StatusScheduled, name: name}
}

// Status returns the task's current lifecycle state.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Abort atomically transitions the task from any non-terminal state to
// ABORTED. Terminal-state tasks are left alone; it reports whether the
// transition took effect.
func (t *Task) Abort() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if isTerminal(t.status) {
		return false
	}
	t.status = StatusAborted
	return true
}

func (t *Task) setRunning() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == StatusAborted {
		return
	}
	t.status = StatusRunning
}

func (t *Task) finish(s Status) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status == StatusAborted {
		return StatusAborted
	}
	t.status = s
	return s
}

// RetryConfig configures a task's retry/deadline ceilings, mirroring the
// index_backfill_rpc_* knobs of §6.
type RetryConfig struct {
	// Timeout is the per-attempt deadline (index_backfill_rpc_timeout_ms).
	Timeout time.Duration
	// MaxRetries is the retry ceiling (index_backfill_rpc_max_retries).
	MaxRetries uint64
	// MaxDelay caps the exponential backoff between retries
	// (index_backfill_rpc_max_delay_ms).
	MaxDelay time.Duration

	// Metrics records attempt/retry counters, if non-nil. Left nil, tasks
	// run without emitting metrics.
	Metrics *observability.Metrics
}

// run drives attempt to completion under t's retry/deadline/cancellation
// policy: each call gets its own Timeout-bounded context; errors classified
// non-retryable by internal/errors (or any of the four non-retryable
// classes an attempt func chooses to report that way) stop the retry loop
// immediately; everything else backs off exponentially, capped at
// cfg.MaxDelay, for at most cfg.MaxRetries retries after the first
// attempt. Returns the final error, or
// nil on success.
func (t *Task) run(ctx context.Context, cfg RetryConfig, attempt func(ctx context.Context) error) error {
	t.setRunning()

	eb := backoff.NewExponentialBackOff()
	eb.MaxInterval = cfg.MaxDelay
	eb.MaxElapsedTime = 0 // bounded by MaxRetries, not wall-clock elapsed time
	bo := backoff.WithContext(backoff.WithMaxRetries(eb, cfg.MaxRetries), ctx)

	operation := func() error {
		if t.Status() == StatusAborted {
			return backoff.Permanent(errAborted)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		err := attempt(attemptCtx)
		if err == nil {
			return nil
		}
		if !cascadeerrors.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, _ time.Duration) {
		cfg.Metrics.RecordShardRPCRetry(t.name)
	}

	err := backoff.RetryNotify(operation, bo, notify)

	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, errAborted):
		outcome = "aborted"
	case !cascadeerrors.IsRetryable(err):
		outcome = "fatal_error"
	default:
		outcome = "exhausted"
	}
	cfg.Metrics.RecordShardRPCAttempt(t.name, outcome)

	if err != nil {
		t.finish(StatusFailed)
		return err
	}
	t.finish(StatusComplete)
	return nil
}
