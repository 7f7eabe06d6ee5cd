// Command cascade-master runs the index-backfill controller: the
// alter-table driver, the per-table backfill jobs it launches, the
// reconciliation loop that re-drives ALTERING tables after a failover,
// and the admin/metrics HTTP endpoints that expose LaunchNextVersionIfNecessary
// and GetBackfillJob to the surrounding catalog manager.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/cascadedb/cascade/internal/app"
	"github.com/cascadedb/cascade/internal/config"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML or JSON config file (optional; defaults are used if omitted)")
	dataDir := flag.String("data-dir", "", "override config.data_dir")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("cascade-master: %v", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("cascade-master: failed to construct app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := a.Start(ctx); err != nil {
		log.Fatalf("cascade-master: failed to start: %v", err)
	}

	<-ctx.Done()
	log.Printf("cascade-master: shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Stop(shutdownCtx); err != nil {
		log.Fatalf("cascade-master: shutdown error: %v", err)
	}
	log.Printf("cascade-master: shutdown complete")
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}
	config.LoadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
