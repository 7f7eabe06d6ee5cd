package backfill

import (
	"context"
	"log"

	"github.com/cascadedb/cascade/pkg/types"
)

// AlterTableBroadcaster is the external alter-table broadcast contract of
// §6: fan out a best-effort notification to every shard leader that the
// table's schema has changed. A BackfillJob calls this after every
// permission flip it owns (§4.3 steps 2); the alter-table driver (C2)
// calls it after every advance step (§4.2) and shares this same interface
// rather than defining its own, since the two callers broadcast
// identically.
type AlterTableBroadcaster interface {
	SendAlterTableRequest(ctx context.Context, tableID types.TableID) error
}

// LoggingBroadcaster is a stub AlterTableBroadcaster for local development
// and tests: it logs the broadcast instead of calling out to shard
// leaders.
type LoggingBroadcaster struct{}

// SendAlterTableRequest logs the broadcast and always succeeds.
func (LoggingBroadcaster) SendAlterTableRequest(ctx context.Context, tableID types.TableID) error {
	log.Printf("backfill: alter-table broadcast for %s (stub broadcaster, no shard leaders notified)", tableID)
	return nil
}
