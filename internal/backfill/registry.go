package backfill

import (
	"sync"

	"github.com/cascadedb/cascade/pkg/types"
)

// Registry is the in-process single-builder guard (§3-5, §8 property 5):
// at most one Job may be under construction for a given table at a time
// within this process. The cross-process guard is the catalog store's
// is_backfilling flag, which §4.2's StartBackfill persists just before it
// registers a job here; Registry catches a second goroutine in this same
// process that read the table before that flag was persisted and is
// racing to build the same table.
type Registry struct {
	mu   sync.Mutex
	jobs map[types.TableID]*Job
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[types.TableID]*Job)}
}

// GetBackfillJob returns the active Job for tableID, for observability
// (§6's GetBackfillJob contract).
func (r *Registry) GetBackfillJob(tableID types.TableID) (*Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[tableID]
	return j, ok
}

// Register adds job under tableID, reporting false without side effects if
// a job is already registered for that table.
func (r *Registry) Register(tableID types.TableID, job *Job) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[tableID]; exists {
		return false
	}
	r.jobs[tableID] = job
	job.OnTerminal = func(Status) { r.unregister(tableID) }
	return true
}

func (r *Registry) unregister(tableID types.TableID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, tableID)
}
