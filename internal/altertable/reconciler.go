package altertable

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cascadedb/cascade/pkg/types"
)

// Reconciler periodically re-invokes the driver for every table the
// catalog store reports as ALTERING, covering master failover: spec §4.2
// says "no recovery code is needed here" because the same alter-table
// callback is re-invoked, but something has to do the re-invoking once a
// new leader comes up with no in-flight schema commit to trigger it.
type Reconciler struct {
	Driver   *Driver
	Interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Start begins the reconciliation loop. It runs until ctx is cancelled or
// Stop is called.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true
	go r.run(ctx)
}

// Stop cancels the loop and waits for it to exit.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel := r.cancel
	done := r.done
	r.running = false
	r.mu.Unlock()

	cancel()
	<-done
}

func (r *Reconciler) run(ctx context.Context) {
	defer close(r.done)

	r.runOnce(ctx)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Reconciler) runOnce(ctx context.Context) {
	tableIDs, err := r.Driver.Store.ListAlteringTables(ctx)
	if err != nil {
		log.Printf("altertable: reconciler failed to list ALTERING tables: %v", err)
		return
	}

	for _, id := range tableIDs {
		if ctx.Err() != nil {
			return
		}
		r.reconcileTable(ctx, id)
	}
}

func (r *Reconciler) reconcileTable(ctx context.Context, tableID types.TableID) {
	row, err := r.Driver.Store.FindTable(ctx, tableID)
	if err != nil {
		log.Printf("altertable: reconciler failed to read table %s: %v", tableID, err)
		return
	}
	if row == nil {
		return
	}
	if err := r.Driver.LaunchNextVersionIfNecessary(ctx, tableID, row.SchemaVersion); err != nil {
		log.Printf("altertable: reconciler pass failed for table %s: %v", tableID, err)
	}
}
