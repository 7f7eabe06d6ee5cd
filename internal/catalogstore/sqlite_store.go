package catalogstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang/snappy"
	_ "github.com/mattn/go-sqlite3"

	cascadeerrors "github.com/cascadedb/cascade/internal/errors"
	"github.com/cascadedb/cascade/pkg/types"
)

// SQLiteStore is the default Store implementation: one SQLite database
// file with a single write connection and a pooled read connection,
// mirroring the manifest catalog's WAL-mode dual-connection discipline.
type SQLiteStore struct {
	db     *sql.DB // single writer
	readDB *sql.DB // concurrent readers
	mu     sync.Mutex
}

// NewSQLiteStore opens (creating if absent) a catalog-store database at
// path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("catalogstore: failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	readDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&mode=ro")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("catalogstore: failed to open read database: %w", err)
	}
	readDB.SetMaxOpenConns(4)
	readDB.SetMaxIdleConns(4)
	readDB.SetConnMaxLifetime(5 * time.Minute)

	if _, err := readDB.Exec("PRAGMA read_uncommitted = true"); err != nil {
		readDB.Close()
		db.Close()
		return nil, fmt.Errorf("catalogstore: failed to set read_uncommitted pragma: %w", err)
	}

	s := &SQLiteStore{db: db, readDB: readDB}
	if err := s.initSchema(); err != nil {
		readDB.Close()
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stmt := range AllSchemaSQL() {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("catalogstore: failed to execute schema statement: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	readErr := s.readDB.Close()
	writeErr := s.db.Close()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}

func encodeIndexes(idx []IndexDescriptor) (string, error) {
	b, err := json.Marshal(idx)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeIndexes(s string) ([]IndexDescriptor, error) {
	if s == "" {
		return nil, nil
	}
	var idx []IndexDescriptor
	if err := json.Unmarshal([]byte(s), &idx); err != nil {
		return nil, err
	}
	return idx, nil
}

func encodeCheckpoints(m map[types.IndexID]types.Key) (string, error) {
	strMap := make(map[string]string, len(m))
	for k, v := range m {
		strMap[string(k)] = string(v)
	}
	b, err := json.Marshal(strMap)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCheckpoints(s string) (map[types.IndexID]types.Key, error) {
	out := make(map[types.IndexID]types.Key)
	if s == "" || s == "{}" {
		return out, nil
	}
	var strMap map[string]string
	if err := json.Unmarshal([]byte(s), &strMap); err != nil {
		return nil, err
	}
	for k, v := range strMap {
		out[types.IndexID(k)] = types.Key(v)
	}
	return out, nil
}

// checkLeaderTerm verifies, within an active write transaction, that the
// caller's leaderTerm is not stale relative to the row's stored term.
func (s *SQLiteStore) checkLeaderTerm(tx *sql.Tx, query string, leaderTerm int64, keys ...interface{}) error {
	var stored int64
	err := tx.QueryRow(query, keys...).Scan(&stored)
	if err == sql.ErrNoRows {
		return nil // new row, no prior term to violate
	}
	if err != nil {
		return cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "read leader term", err)
	}
	if leaderTerm < stored {
		return cascadeerrors.NotLeader(fmt.Sprintf("leader term %d is stale against stored term %d", leaderTerm, stored), nil)
	}
	return nil
}

// UpdateItem persists row atomically, failing with NotLeader if leaderTerm
// is behind the term already stored for this table.
func (s *SQLiteStore) UpdateItem(ctx context.Context, row *BaseTableRow, leaderTerm int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return cascadeerrors.IOFailure(cascadeerrors.CodeCatalogWriteFailed, "begin transaction", err)
	}
	defer tx.Rollback()

	if err := s.checkLeaderTerm(tx, `SELECT leader_term FROM base_tables WHERE table_id = ?`, leaderTerm, string(row.TableID)); err != nil {
		return err
	}

	indexesJSON, err := encodeIndexes(row.Indexes)
	if err != nil {
		return cascadeerrors.Internal("encode indexes", err)
	}
	fullyAppliedIndexesJSON, err := encodeIndexes(row.FullyAppliedIndexes)
	if err != nil {
		return cascadeerrors.Internal("encode fully applied indexes", err)
	}

	schemaBlob := snappy.Encode(nil, row.Schema)
	fullyAppliedSchemaBlob := snappy.Encode(nil, row.FullyAppliedSchema)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO base_tables (
			table_id, schema_version, schema, indexes,
			fully_applied_schema, fully_applied_schema_version, fully_applied_indexes, fully_applied_index_info,
			state, backfilling_timestamp_physical, backfilling_timestamp_logical, is_backfilling, leader_term
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(table_id) DO UPDATE SET
			schema_version = excluded.schema_version,
			schema = excluded.schema,
			indexes = excluded.indexes,
			fully_applied_schema = excluded.fully_applied_schema,
			fully_applied_schema_version = excluded.fully_applied_schema_version,
			fully_applied_indexes = excluded.fully_applied_indexes,
			fully_applied_index_info = excluded.fully_applied_index_info,
			state = excluded.state,
			backfilling_timestamp_physical = excluded.backfilling_timestamp_physical,
			backfilling_timestamp_logical = excluded.backfilling_timestamp_logical,
			is_backfilling = excluded.is_backfilling,
			leader_term = excluded.leader_term
	`,
		string(row.TableID), row.SchemaVersion, schemaBlob, indexesJSON,
		fullyAppliedSchemaBlob, row.FullyAppliedSchemaVersion, fullyAppliedIndexesJSON, row.FullyAppliedIndexInfo,
		string(row.State), row.BackfillingTimestamp.Physical, row.BackfillingTimestamp.Logical, row.IsBackfilling, leaderTerm,
	)
	if err != nil {
		return cascadeerrors.IOFailure(cascadeerrors.CodeCatalogWriteFailed, "upsert base table", err)
	}

	if err := tx.Commit(); err != nil {
		return cascadeerrors.IOFailure(cascadeerrors.CodeCatalogWriteFailed, "commit base table update", err)
	}
	return nil
}

// UpdateShardItem persists one shard row atomically.
func (s *SQLiteStore) UpdateShardItem(ctx context.Context, row *ShardRow, leaderTerm int64) error {
	return s.updateShards(ctx, []*ShardRow{row}, leaderTerm)
}

// UpdateItems persists many shard mutations in a single transaction, used
// by the checkpoint-clearing step at the end of a successful backfill.
func (s *SQLiteStore) UpdateItems(ctx context.Context, rows []*ShardRow, leaderTerm int64) error {
	return s.updateShards(ctx, rows, leaderTerm)
}

func (s *SQLiteStore) updateShards(ctx context.Context, rows []*ShardRow, leaderTerm int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return cascadeerrors.IOFailure(cascadeerrors.CodeCatalogWriteFailed, "begin transaction", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		if err := s.checkLeaderTerm(tx, `SELECT leader_term FROM shards WHERE table_id = ? AND shard_id = ?`, leaderTerm, string(row.TableID), string(row.ShardID)); err != nil {
			return err
		}

		checkpointsJSON, err := encodeCheckpoints(row.BackfilledUntil)
		if err != nil {
			return cascadeerrors.Internal("encode checkpoints", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO shards (table_id, shard_id, partition_start, partition_end, backfilled_until, leader_term)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(table_id, shard_id) DO UPDATE SET
				partition_start = excluded.partition_start,
				partition_end = excluded.partition_end,
				backfilled_until = excluded.backfilled_until,
				leader_term = excluded.leader_term
		`, string(row.TableID), string(row.ShardID), []byte(row.PartitionStart), []byte(row.PartitionEnd), checkpointsJSON, leaderTerm)
		if err != nil {
			return cascadeerrors.IOFailure(cascadeerrors.CodeCatalogWriteFailed, "upsert shard", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return cascadeerrors.IOFailure(cascadeerrors.CodeCatalogWriteFailed, "commit shard update", err)
	}
	return nil
}

// FindTable looks up a base table row by identifier.
func (s *SQLiteStore) FindTable(ctx context.Context, id types.TableID) (*BaseTableRow, error) {
	row := s.readDB.QueryRowContext(ctx, `
		SELECT schema_version, schema, indexes, fully_applied_schema, fully_applied_schema_version,
		       fully_applied_indexes, fully_applied_index_info, state,
		       backfilling_timestamp_physical, backfilling_timestamp_logical, is_backfilling
		FROM base_tables WHERE table_id = ?`, string(id))

	var (
		schemaVersion                         int64
		schemaBlob, fullyAppliedSchemaBlob    []byte
		indexesJSON, fullyAppliedIndexesJSON  string
		fullyAppliedSchemaVersion             int64
		fullyAppliedIndexInfo                 []byte
		state                                 string
		tsPhysical                            int64
		tsLogical                             int32
		isBackfilling                         bool
	)
	if err := row.Scan(&schemaVersion, &schemaBlob, &indexesJSON, &fullyAppliedSchemaBlob, &fullyAppliedSchemaVersion,
		&fullyAppliedIndexesJSON, &fullyAppliedIndexInfo, &state, &tsPhysical, &tsLogical, &isBackfilling); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "find table", err)
	}

	schema, err := snappy.Decode(nil, schemaBlob)
	if err != nil {
		return nil, cascadeerrors.Internal("decode schema", err)
	}
	fullyAppliedSchema, err := snappy.Decode(nil, fullyAppliedSchemaBlob)
	if err != nil {
		return nil, cascadeerrors.Internal("decode fully applied schema", err)
	}
	indexes, err := decodeIndexes(indexesJSON)
	if err != nil {
		return nil, cascadeerrors.Internal("decode indexes", err)
	}
	fullyAppliedIndexes, err := decodeIndexes(fullyAppliedIndexesJSON)
	if err != nil {
		return nil, cascadeerrors.Internal("decode fully applied indexes", err)
	}

	return &BaseTableRow{
		TableID:                   id,
		SchemaVersion:             schemaVersion,
		Schema:                    schema,
		Indexes:                   indexes,
		FullyAppliedSchema:        fullyAppliedSchema,
		FullyAppliedSchemaVersion: fullyAppliedSchemaVersion,
		FullyAppliedIndexes:       fullyAppliedIndexes,
		FullyAppliedIndexInfo:     fullyAppliedIndexInfo,
		State:                     TableState(state),
		BackfillingTimestamp:      types.HybridTimestamp{Physical: tsPhysical, Logical: tsLogical},
		IsBackfilling:             isBackfilling,
	}, nil
}

// FindShards returns every shard row belonging to a base table.
func (s *SQLiteStore) FindShards(ctx context.Context, id types.TableID) ([]*ShardRow, error) {
	rows, err := s.readDB.QueryContext(ctx, `
		SELECT shard_id, partition_start, partition_end, backfilled_until
		FROM shards WHERE table_id = ? ORDER BY shard_id`, string(id))
	if err != nil {
		return nil, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "find shards", err)
	}
	defer rows.Close()

	var out []*ShardRow
	for rows.Next() {
		var shardID string
		var partitionStart, partitionEnd []byte
		var checkpointsJSON string
		if err := rows.Scan(&shardID, &partitionStart, &partitionEnd, &checkpointsJSON); err != nil {
			return nil, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "scan shard row", err)
		}
		checkpoints, err := decodeCheckpoints(checkpointsJSON)
		if err != nil {
			return nil, cascadeerrors.Internal("decode checkpoints", err)
		}
		out = append(out, &ShardRow{
			TableID:         id,
			ShardID:         types.ShardID(shardID),
			PartitionStart:  types.Key(partitionStart),
			PartitionEnd:    types.Key(partitionEnd),
			BackfilledUntil: checkpoints,
		})
	}
	return out, rows.Err()
}

// ListAlteringTables returns every base table currently in the ALTERING
// state.
func (s *SQLiteStore) ListAlteringTables(ctx context.Context) ([]types.TableID, error) {
	rows, err := s.readDB.QueryContext(ctx, `SELECT table_id FROM base_tables WHERE state = ?`, string(TableAltering))
	if err != nil {
		return nil, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "list altering tables", err)
	}
	defer rows.Close()

	var out []types.TableID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "scan table id", err)
		}
		out = append(out, types.TableID(id))
	}
	return out, rows.Err()
}

// TableCount returns the number of base tables tracked by this store, used
// by the auto-migrate threshold check.
func (s *SQLiteStore) TableCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.readDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM base_tables`).Scan(&count)
	if err != nil {
		return 0, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "count tables", err)
	}
	return count, nil
}

// allTableIDs returns every table ID tracked by this store, used by
// MigrateToSharded to enumerate the full migration work list.
func (s *SQLiteStore) allTableIDs(ctx context.Context) ([]types.TableID, error) {
	rows, err := s.readDB.QueryContext(ctx, `SELECT table_id FROM base_tables`)
	if err != nil {
		return nil, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "list table ids", err)
	}
	defer rows.Close()

	var out []types.TableID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, cascadeerrors.IOFailure(cascadeerrors.CodeCatalogReadFailed, "scan table id", err)
		}
		out = append(out, types.TableID(id))
	}
	return out, rows.Err()
}
