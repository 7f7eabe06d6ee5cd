package catalogstore

import (
	"context"
	"fmt"
	"log"
)

// migrationLeaderTerm is used for every write issued by MigrateToSharded.
// The destination store is freshly created and holds no rows yet, so the
// leader-term check in checkLeaderTerm always passes regardless of the
// value chosen here; 0 keeps it consistent with a brand-new leader term.
const migrationLeaderTerm = 0

// MigrateToSharded checks if an unsharded store has crossed the
// auto-migrate table-count threshold and, if so, migrates every base
// table and its shards into a new ShardedStore. Returns nil if the
// threshold was not crossed (caller keeps using source).
//
// This is an online migration: it reads every base table and its shards
// from source, re-registers them in the sharded store, then closes
// source. The original file is left on disk as a backup, not deleted.
func MigrateToSharded(source *SQLiteStore, baseDir string, shardCount int, threshold int64) (*ShardedStore, error) {
	if threshold <= 0 {
		return nil, nil
	}

	ctx := context.Background()
	count, err := source.TableCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalogstore: auto-shard check failed: %w", err)
	}
	if count < threshold {
		return nil, nil
	}

	log.Printf("catalogstore: table count (%d) exceeds auto-shard threshold (%d) — migrating to sharded store with %d shards",
		count, threshold, shardCount)

	sharded, err := NewShardedStore(baseDir, shardCount)
	if err != nil {
		return nil, fmt.Errorf("catalogstore: failed to create sharded store for migration: %w", err)
	}

	allIDs, err := source.allTableIDs(ctx)
	if err != nil {
		sharded.Close()
		return nil, fmt.Errorf("catalogstore: failed to enumerate tables for migration: %w", err)
	}

	migrated := 0
	for _, id := range allIDs {
		table, err := source.FindTable(ctx, id)
		if err != nil {
			sharded.Close()
			return nil, fmt.Errorf("catalogstore: migration failed reading table %s: %w", id, err)
		}
		if table == nil {
			continue
		}
		if err := sharded.UpdateItem(ctx, table, migrationLeaderTerm); err != nil {
			sharded.Close()
			return nil, fmt.Errorf("catalogstore: migration failed at table %s: %w", id, err)
		}

		shards, err := source.FindShards(ctx, id)
		if err != nil {
			sharded.Close()
			return nil, fmt.Errorf("catalogstore: migration failed reading shards for %s: %w", id, err)
		}
		if len(shards) > 0 {
			if err := sharded.UpdateItems(ctx, shards, migrationLeaderTerm); err != nil {
				sharded.Close()
				return nil, fmt.Errorf("catalogstore: migration failed writing shards for %s: %w", id, err)
			}
		}
		migrated++
	}

	log.Printf("catalogstore: migration complete — %d tables moved to %d shards", migrated, shardCount)

	source.Close()
	return sharded, nil
}
