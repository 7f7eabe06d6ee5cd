// Package config provides unified configuration for the cascade master
// process: catalog-store location and sharding, RPC timeouts/retry
// ceilings, alter-table polling cadence, and test-only slowdown knobs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the unified configuration for the backfill controller.
type Config struct {
	// DataDir is the base directory for all local state (catalog store
	// files, backup staging).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	CatalogStore CatalogStoreConfig `json:"catalog_store" yaml:"catalog_store"`
	RPC          RPCConfig          `json:"rpc" yaml:"rpc"`
	AlterTable   AlterTableConfig   `json:"alter_table" yaml:"alter_table"`
	Backup       BackupConfig       `json:"backup" yaml:"backup"`
	Metrics      MetricsConfig      `json:"metrics" yaml:"metrics"`
	Test         TestConfig         `json:"test" yaml:"test"`
}

// CatalogStoreConfig controls where and how BaseTable/Shard rows persist.
type CatalogStoreConfig struct {
	// Path is the SQLite file path (unsharded) or directory (sharded).
	Path string `json:"path" yaml:"path"`

	// Sharded enables ShardedStore, splitting tables across ShardCount
	// SQLite files by murmur3 hash of the table ID.
	Sharded bool `json:"sharded" yaml:"sharded"`

	// ShardCount is the number of backing SQLite files when Sharded.
	ShardCount int `json:"shard_count" yaml:"shard_count"`

	// AutoMigrateThreshold is the table count at which an unsharded store
	// is migrated to a sharded one. Zero disables auto-migration.
	AutoMigrateThreshold int64 `json:"auto_migrate_threshold" yaml:"auto_migrate_threshold"`
}

// RPCConfig mirrors the index_backfill_rpc_* runtime knobs: the per-attempt
// deadline, the retry ceiling, and the maximum backoff delay for shard RPC
// tasks (GetSafeTime, BackfillChunk, AllowCompactionGC).
type RPCConfig struct {
	// TimeoutMS is index_backfill_rpc_timeout_ms (default 60000).
	TimeoutMS int `json:"timeout_ms" yaml:"timeout_ms"`

	// MaxRetries is index_backfill_rpc_max_retries (default 150).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxDelayMS is index_backfill_rpc_max_delay_ms (default 600000).
	MaxDelayMS int `json:"max_delay_ms" yaml:"max_delay_ms"`
}

// AlterTableConfig controls the alter-table driver's polling cadence.
type AlterTableConfig struct {
	// WaitForCompletionMS is
	// index_backfill_wait_for_alter_table_completion_ms (default 100).
	WaitForCompletionMS int `json:"wait_for_completion_ms" yaml:"wait_for_completion_ms"`

	// ReconcileInterval is how often the reconciler re-invokes the driver
	// for every ALTERING table, covering master failover.
	ReconcileInterval time.Duration `json:"reconcile_interval" yaml:"reconcile_interval"`
}

// BackupConfig controls periodic catalog-store snapshotting to object
// storage.
type BackupConfig struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Interval time.Duration `json:"interval" yaml:"interval"`

	// StorageType is "local" or "s3", mirroring the object-storage
	// abstraction's backends.
	StorageType string   `json:"storage_type" yaml:"storage_type"`
	LocalPath   string   `json:"local_path" yaml:"local_path"`
	S3          S3Config `json:"s3" yaml:"s3"`
	Prefix      string   `json:"prefix" yaml:"prefix"`
}

// S3Config holds S3 storage configuration for catalog-store backups.
type S3Config struct {
	Bucket   string `json:"bucket" yaml:"bucket"`
	Region   string `json:"region" yaml:"region"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// MetricsConfig controls the Prometheus metrics HTTP endpoint.
type MetricsConfig struct {
	Addr    string `json:"addr" yaml:"addr"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// TestConfig holds test-only behavior knobs, never touched in production.
type TestConfig struct {
	// SlowdownBackfillAlterTableRPCsMS is
	// TEST_slowdown_backfill_alter_table_rpcs_ms. Zero is a no-op.
	SlowdownBackfillAlterTableRPCsMS int `json:"slowdown_backfill_alter_table_rpcs_ms" yaml:"slowdown_backfill_alter_table_rpcs_ms"`
}

// DefaultConfig returns the default configuration for local development.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data/cascade",
		CatalogStore: CatalogStoreConfig{
			Path:                 "",
			Sharded:              false,
			ShardCount:           16,
			AutoMigrateThreshold: 0,
		},
		RPC: RPCConfig{
			TimeoutMS:  60000,
			MaxRetries: 150,
			MaxDelayMS: 600000,
		},
		AlterTable: AlterTableConfig{
			WaitForCompletionMS: 100,
			ReconcileInterval:   5 * time.Second,
		},
		Backup: BackupConfig{
			Enabled:     false,
			Interval:    30 * time.Minute,
			StorageType: "local",
		},
		Metrics: MetricsConfig{
			Addr:    ":9091",
			Enabled: true,
		},
		Test: TestConfig{
			SlowdownBackfillAlterTableRPCsMS: 0,
		},
	}
}

// Resolve resolves relative paths and sets defaults based on DataDir.
func (c *Config) Resolve() {
	if c.DataDir == "" {
		c.DataDir = "./data/cascade"
	}
	if c.CatalogStore.Path == "" {
		c.CatalogStore.Path = filepath.Join(c.DataDir, "catalog")
	}
	if c.Backup.LocalPath == "" {
		c.Backup.LocalPath = filepath.Join(c.DataDir, "backup")
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.CatalogStore.Sharded && c.CatalogStore.ShardCount < 1 {
		return fmt.Errorf("catalog_store.shard_count must be positive when sharded, got %d", c.CatalogStore.ShardCount)
	}
	if c.RPC.TimeoutMS <= 0 {
		return fmt.Errorf("rpc.timeout_ms must be positive, got %d", c.RPC.TimeoutMS)
	}
	if c.RPC.MaxRetries < 0 {
		return fmt.Errorf("rpc.max_retries must be non-negative, got %d", c.RPC.MaxRetries)
	}
	if c.RPC.MaxDelayMS <= 0 {
		return fmt.Errorf("rpc.max_delay_ms must be positive, got %d", c.RPC.MaxDelayMS)
	}
	if c.Backup.Enabled && c.Backup.StorageType != "local" && c.Backup.StorageType != "s3" {
		return fmt.Errorf("invalid backup.storage_type: %s (must be local or s3)", c.Backup.StorageType)
	}
	if c.Backup.Enabled && c.Backup.StorageType == "s3" && c.Backup.S3.Bucket == "" {
		return fmt.Errorf("backup.s3.bucket is required when backup.storage_type is s3")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv overlays environment variables onto cfg. Environment
// variables use the CASCADE_ prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("CASCADE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CASCADE_CATALOG_STORE_PATH"); v != "" {
		cfg.CatalogStore.Path = v
	}
	if v := os.Getenv("CASCADE_CATALOG_STORE_SHARDED"); v != "" {
		cfg.CatalogStore.Sharded = v == "true" || v == "1"
	}
	if v := os.Getenv("CASCADE_CATALOG_STORE_SHARD_COUNT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.CatalogStore.ShardCount)
	}
	if v := os.Getenv("CASCADE_RPC_TIMEOUT_MS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.RPC.TimeoutMS)
	}
	if v := os.Getenv("CASCADE_RPC_MAX_RETRIES"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.RPC.MaxRetries)
	}
	if v := os.Getenv("CASCADE_RPC_MAX_DELAY_MS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.RPC.MaxDelayMS)
	}
	if v := os.Getenv("CASCADE_ALTER_TABLE_WAIT_FOR_COMPLETION_MS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.AlterTable.WaitForCompletionMS)
	}
	if v := os.Getenv("CASCADE_ALTER_TABLE_RECONCILE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AlterTable.ReconcileInterval = d
		}
	}
	if v := os.Getenv("CASCADE_BACKUP_ENABLED"); v != "" {
		cfg.Backup.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("CASCADE_BACKUP_STORAGE_TYPE"); v != "" {
		cfg.Backup.StorageType = v
	}
	if v := os.Getenv("CASCADE_S3_BUCKET"); v != "" {
		cfg.Backup.S3.Bucket = v
	}
	if v := os.Getenv("CASCADE_S3_REGION"); v != "" {
		cfg.Backup.S3.Region = v
	}
	if v := os.Getenv("CASCADE_S3_ENDPOINT"); v != "" {
		cfg.Backup.S3.Endpoint = v
	}
	if v := os.Getenv("CASCADE_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("CASCADE_TEST_SLOWDOWN_BACKFILL_ALTER_TABLE_RPCS_MS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Test.SlowdownBackfillAlterTableRPCsMS)
	}
}

// EnsureDirectories creates all required local directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir}
	if !c.CatalogStore.Sharded {
		dirs = append(dirs, filepath.Dir(c.CatalogStore.Path))
	} else {
		dirs = append(dirs, c.CatalogStore.Path)
	}
	if c.Backup.StorageType == "local" {
		dirs = append(dirs, c.Backup.LocalPath)
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// RPCTimeout returns RPC.TimeoutMS as a time.Duration.
func (c *Config) RPCTimeout() time.Duration {
	return time.Duration(c.RPC.TimeoutMS) * time.Millisecond
}

// RPCMaxDelay returns RPC.MaxDelayMS as a time.Duration.
func (c *Config) RPCMaxDelay() time.Duration {
	return time.Duration(c.RPC.MaxDelayMS) * time.Millisecond
}

// AlterTableWaitForCompletion returns AlterTable.WaitForCompletionMS as a
// time.Duration.
func (c *Config) AlterTableWaitForCompletion() time.Duration {
	return time.Duration(c.AlterTable.WaitForCompletionMS) * time.Millisecond
}

// TestSlowdownBackfillAlterTableRPCs returns Test.SlowdownBackfillAlterTableRPCsMS
// as a time.Duration; zero at the default, so callers can sleep
// unconditionally without branching on whether the knob is set.
func (c *Config) TestSlowdownBackfillAlterTableRPCs() time.Duration {
	return time.Duration(c.Test.SlowdownBackfillAlterTableRPCsMS) * time.Millisecond
}
