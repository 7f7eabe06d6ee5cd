package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadRPCConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolve()
	cfg.RPC.TimeoutMS = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero rpc timeout")
	}
}

func TestValidateRequiresS3BucketWhenS3Backup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolve()
	cfg.Backup.Enabled = true
	cfg.Backup.StorageType = "s3"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when s3 backup has no bucket")
	}
	cfg.Backup.S3.Bucket = "cascade-backups"
	if err := cfg.Validate(); err != nil {
		t.Errorf("should validate once bucket is set: %v", err)
	}
}

func TestLoadFromEnvOverridesRPCKnobs(t *testing.T) {
	t.Setenv("CASCADE_RPC_MAX_RETRIES", "42")
	t.Setenv("CASCADE_CATALOG_STORE_SHARDED", "true")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	if cfg.RPC.MaxRetries != 42 {
		t.Errorf("got MaxRetries=%d, want 42", cfg.RPC.MaxRetries)
	}
	if !cfg.CatalogStore.Sharded {
		t.Error("expected catalog store sharded to be enabled from env")
	}
}

func TestResolveDefaultsCatalogStorePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/cascade"
	cfg.Resolve()
	if cfg.CatalogStore.Path != "/var/lib/cascade/catalog" {
		t.Errorf("got %q", cfg.CatalogStore.Path)
	}
}

// TestLoadFromEnvFileOverlay exercises the .env-file overlay path: knobs
// written to a .env.test fixture in a temp directory rather than passed on
// the command line, loaded with godotenv and then applied the same way a
// real deployment's environment would be.
func TestLoadFromEnvFileOverlay(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), ".env.test")
	contents := "CASCADE_RPC_MAX_RETRIES=7\nCASCADE_METRICS_ADDR=:9999\n"
	if err := os.WriteFile(fixture, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write env fixture: %v", err)
	}

	env, err := godotenv.Read(fixture)
	if err != nil {
		t.Fatalf("failed to read env fixture: %v", err)
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	if cfg.RPC.MaxRetries != 7 {
		t.Errorf("got MaxRetries=%d, want 7", cfg.RPC.MaxRetries)
	}
	if cfg.Metrics.Addr != ":9999" {
		t.Errorf("got Metrics.Addr=%q, want :9999", cfg.Metrics.Addr)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RPCTimeout().Milliseconds() != int64(cfg.RPC.TimeoutMS) {
		t.Error("RPCTimeout mismatch")
	}
	if cfg.TestSlowdownBackfillAlterTableRPCs() != 0 {
		t.Error("default slowdown knob should be zero")
	}
}
