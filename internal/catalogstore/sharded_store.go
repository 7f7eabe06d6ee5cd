// ShardedStore distributes base tables across multiple SQLite catalog
// files to overcome single-file I/O limits once a cluster is tracking
// many tables. Routing is by murmur3 hash of the table ID, so every row
// of a given table (and all of its shards) lands in the same backing
// file — this "catalog shard" is an implementation detail of the store
// and must not be confused with a base-table Shard (one partition of the
// user's table, defined in store.go).
package catalogstore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spaolacci/murmur3"

	"github.com/cascadedb/cascade/pkg/types"
)

// DefaultShardCount is the default number of catalog-store shard files.
const DefaultShardCount = 16

// ShardedStore implements Store by distributing base tables across N
// SQLiteStore instances.
type ShardedStore struct {
	stores     []*SQLiteStore
	shardCount uint32
	baseDir    string
}

// NewShardedStore opens (creating if absent) a sharded catalog store under
// baseDir, one file per shard named catalog_shard_NNNN.db.
func NewShardedStore(baseDir string, shardCount int) (*ShardedStore, error) {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}

	ss := &ShardedStore{
		stores:     make([]*SQLiteStore, shardCount),
		shardCount: uint32(shardCount),
		baseDir:    baseDir,
	}

	for i := 0; i < shardCount; i++ {
		path := filepath.Join(baseDir, fmt.Sprintf("catalog_shard_%04d.db", i))
		store, err := NewSQLiteStore(path)
		if err != nil {
			for j := 0; j < i; j++ {
				ss.stores[j].Close()
			}
			return nil, fmt.Errorf("catalogstore: failed to open shard %d: %w", i, err)
		}
		ss.stores[i] = store
	}

	return ss, nil
}

func (ss *ShardedStore) storeFor(id types.TableID) *SQLiteStore {
	h := murmur3.Sum32([]byte(id))
	return ss.stores[h%ss.shardCount]
}

func (ss *ShardedStore) Close() error {
	var firstErr error
	for _, s := range ss.stores {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (ss *ShardedStore) UpdateItem(ctx context.Context, row *BaseTableRow, leaderTerm int64) error {
	return ss.storeFor(row.TableID).UpdateItem(ctx, row, leaderTerm)
}

func (ss *ShardedStore) UpdateShardItem(ctx context.Context, row *ShardRow, leaderTerm int64) error {
	return ss.storeFor(row.TableID).UpdateShardItem(ctx, row, leaderTerm)
}

func (ss *ShardedStore) UpdateItems(ctx context.Context, rows []*ShardRow, leaderTerm int64) error {
	byTable := make(map[types.TableID][]*ShardRow)
	for _, r := range rows {
		byTable[r.TableID] = append(byTable[r.TableID], r)
	}
	for tableID, group := range byTable {
		if err := ss.storeFor(tableID).UpdateItems(ctx, group, leaderTerm); err != nil {
			return err
		}
	}
	return nil
}

func (ss *ShardedStore) FindTable(ctx context.Context, id types.TableID) (*BaseTableRow, error) {
	return ss.storeFor(id).FindTable(ctx, id)
}

func (ss *ShardedStore) FindShards(ctx context.Context, id types.TableID) ([]*ShardRow, error) {
	return ss.storeFor(id).FindShards(ctx, id)
}

// ListAlteringTables fans out to every backing shard concurrently and
// merges the results, the same goroutine-per-shard, buffered-channel
// pattern used for every cross-shard read in this store.
func (ss *ShardedStore) ListAlteringTables(ctx context.Context) ([]types.TableID, error) {
	type result struct {
		ids []types.TableID
		err error
	}
	ch := make(chan result, len(ss.stores))

	for _, store := range ss.stores {
		go func(s *SQLiteStore) {
			ids, err := s.ListAlteringTables(ctx)
			ch <- result{ids, err}
		}(store)
	}

	var all []types.TableID
	var firstErr error
	for range ss.stores {
		r := <-ch
		if r.err != nil && firstErr == nil {
			firstErr = r.err
			continue
		}
		all = append(all, r.ids...)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return all, nil
}

// TotalTableCount sums TableCount across every backing shard file.
func (ss *ShardedStore) TotalTableCount(ctx context.Context) (int64, error) {
	var total int64
	for _, s := range ss.stores {
		n, err := s.TableCount(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
