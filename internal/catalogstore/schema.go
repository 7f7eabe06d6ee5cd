package catalogstore

// CreateBaseTablesTableSQL creates the base_tables table: one row per
// table undergoing (or that has undergone) an alter-table/backfill cycle.
const CreateBaseTablesTableSQL = `
CREATE TABLE IF NOT EXISTS base_tables (
    table_id TEXT PRIMARY KEY,
    schema_version INTEGER NOT NULL,
    schema BLOB,
    indexes TEXT NOT NULL,
    fully_applied_schema BLOB,
    fully_applied_schema_version INTEGER NOT NULL DEFAULT 0,
    fully_applied_indexes TEXT,
    fully_applied_index_info BLOB,
    state TEXT NOT NULL,
    backfilling_timestamp_physical INTEGER NOT NULL DEFAULT 0,
    backfilling_timestamp_logical INTEGER NOT NULL DEFAULT 0,
    is_backfilling INTEGER NOT NULL DEFAULT 0,
    leader_term INTEGER NOT NULL DEFAULT 0
)`

// CreateBaseTablesStateIndexSQL speeds up the reconciler's scan for
// ALTERING tables.
const CreateBaseTablesStateIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_base_tables_state ON base_tables(state)`

// CreateShardsTableSQL creates the shards table: one row per partition of
// a base table, carrying the per-index backfill checkpoint map.
const CreateShardsTableSQL = `
CREATE TABLE IF NOT EXISTS shards (
    table_id TEXT NOT NULL,
    shard_id TEXT NOT NULL,
    partition_start BLOB,
    partition_end BLOB,
    backfilled_until TEXT NOT NULL DEFAULT '{}',
    leader_term INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (table_id, shard_id)
)`

// CreateShardsTableIndexSQL speeds up FindShards.
const CreateShardsTableIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_shards_table ON shards(table_id)`

// AllSchemaSQL returns every statement needed to initialize a catalog
// store database.
func AllSchemaSQL() []string {
	return []string{
		CreateBaseTablesTableSQL,
		CreateBaseTablesStateIndexSQL,
		CreateShardsTableSQL,
		CreateShardsTableIndexSQL,
	}
}
