// Package app provides the unified application lifecycle for the cascade
// backfill controller: it wires the catalog store, clock, shard-RPC
// client, job registry, alter-table driver and reconciler, metrics, and
// the admin HTTP surface into one process, and tears them down in
// reverse order on shutdown.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cascadedb/cascade/internal/altertable"
	adminhttp "github.com/cascadedb/cascade/internal/api/http"
	"github.com/cascadedb/cascade/internal/backfill"
	"github.com/cascadedb/cascade/internal/catalogstore"
	"github.com/cascadedb/cascade/internal/clock"
	"github.com/cascadedb/cascade/internal/config"
	"github.com/cascadedb/cascade/internal/observability"
	"github.com/cascadedb/cascade/internal/server"
	"github.com/cascadedb/cascade/internal/shardrpc"
	"github.com/cascadedb/cascade/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// App manages the cascade backfill controller's lifecycle.
type App struct {
	cfg *config.Config

	// Shared resources
	store       catalogstore.Store
	objStorage  storage.ObjectStorage
	clk         clock.Clock
	rpcClient   shardrpc.Client
	metrics     *observability.Metrics
	registry    *prometheus.Registry
	jobs        *backfill.Registry
	driver      *altertable.Driver
	reconciler  *altertable.Reconciler
	shutdown    *server.ShutdownManager

	// Service components
	adminServer   *http.Server
	metricsServer *http.Server

	// Lifecycle
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new App with the given configuration, opening the
// catalog store and every other shared resource but not yet starting
// background loops or listeners; call Start for that.
func New(cfg *config.Config) (*App, error) {
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{cfg: cfg}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to prepare data directories: %w", err)
	}

	store, err := openCatalogStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}
	a.store = store

	if cfg.Backup.Enabled {
		objStorage, err := openObjectStorage(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open backup storage: %w", err)
		}
		a.objStorage = objStorage
	}

	a.clk = clock.NewMonotonicClock()

	dial := func(target string) (*grpc.ClientConn, error) {
		return grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	a.rpcClient = shardrpc.NewGRPCClient(dial)

	registry := prometheus.NewRegistry()
	a.registry = registry
	a.metrics = observability.New(registry)

	a.jobs = backfill.NewRegistry()
	broadcaster := backfill.LoggingBroadcaster{}

	a.driver = &altertable.Driver{
		Store:       a.store,
		Jobs:        a.jobs,
		Broadcaster: broadcaster,
		LeaderTerm:  1,
		BackfillConfig: backfill.Config{
			Store:  a.store,
			Client: a.rpcClient,
			Clock:  a.clk,
			RPCConfig: shardrpc.RetryConfig{
				Timeout:    time.Duration(cfg.RPC.TimeoutMS) * time.Millisecond,
				MaxRetries: uint64(cfg.RPC.MaxRetries),
				MaxDelay:   time.Duration(cfg.RPC.MaxDelayMS) * time.Millisecond,
				Metrics:    a.metrics,
			},
			PollInterval: time.Duration(cfg.AlterTable.WaitForCompletionMS) * time.Millisecond,
			Broadcaster:  broadcaster,
		},
		SlowdownRPCs: time.Duration(cfg.Test.SlowdownBackfillAlterTableRPCsMS) * time.Millisecond,
	}

	a.reconciler = &altertable.Reconciler{
		Driver:   a.driver,
		Interval: cfg.AlterTable.ReconcileInterval,
	}

	a.shutdown = server.NewShutdownManager(server.DefaultShutdownConfig())
	a.shutdown.RegisterCloser(a.store)

	a.setupAdminServer()
	a.setupMetricsServer()

	return a, nil
}

func openCatalogStore(cfg *config.Config) (catalogstore.Store, error) {
	if cfg.CatalogStore.Sharded {
		return catalogstore.NewShardedStore(cfg.CatalogStore.Path, cfg.CatalogStore.ShardCount)
	}

	store, err := catalogstore.NewSQLiteStore(cfg.CatalogStore.Path)
	if err != nil {
		return nil, err
	}
	if cfg.CatalogStore.AutoMigrateThreshold <= 0 {
		return store, nil
	}

	sharded, err := catalogstore.MigrateToSharded(store, cfg.CatalogStore.Path, cfg.CatalogStore.ShardCount, cfg.CatalogStore.AutoMigrateThreshold)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate check failed: %w", err)
	}
	if sharded != nil {
		return sharded, nil
	}
	return store, nil
}

func openObjectStorage(cfg *config.Config) (storage.ObjectStorage, error) {
	switch cfg.Backup.StorageType {
	case "s3":
		s3Cfg := storage.DefaultS3Config()
		if cfg.Backup.S3.Region != "" {
			s3Cfg.Region = cfg.Backup.S3.Region
		}
		s3Cfg.Endpoint = cfg.Backup.S3.Endpoint
		return storage.NewS3Storage(context.Background(), cfg.Backup.S3.Bucket, s3Cfg)
	default:
		return storage.NewLocalStorage(cfg.Backup.LocalPath)
	}
}

func (a *App) setupAdminServer() {
	admin := adminhttp.NewAdminHandler(a.driver, a.jobs)
	mux := http.NewServeMux()
	mux.Handle("/v1/tables/", adminhttp.DefaultMiddleware()(admin))
	a.adminServer = &http.Server{Addr: ":9090", Handler: mux}
}

func (a *App) setupMetricsServer() {
	if !a.cfg.Metrics.Enabled {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler(a.registry))
	a.metricsServer = &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}
}

// Start begins serving the admin and metrics HTTP endpoints, the
// reconciliation loop, and (if enabled) the catalog-store backup loop.
// It returns once every component has started; shutdown happens via Stop
// (the ShutdownManager does not listen for signals here; cmd/cascade-master
// calls Stop when it receives one).
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return fmt.Errorf("app already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.running = true

	a.reconciler.Start(ctx)

	if a.cfg.Backup.Enabled && a.objStorage != nil {
		localFiles := func() []string {
			return catalogstore.LocalFilesForStore(a.cfg.CatalogStore.Path, a.cfg.CatalogStore.Sharded, a.cfg.CatalogStore.ShardCount)
		}
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			catalogstore.RunBackupLoop(ctx, a.objStorage, localFiles, a.cfg.Backup.Prefix, a.cfg.Backup.Interval)
		}()
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		log.Printf("app: admin server listening on %s", a.adminServer.Addr)
		if err := a.adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("app: admin server error: %v", err)
		}
	}()

	if a.metricsServer != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			log.Printf("app: metrics server listening on %s", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("app: metrics server error: %v", err)
			}
		}()
	}

	return nil
}

// Stop gracefully shuts down every running component: the reconciler, the
// backup loop, the HTTP servers, and finally the catalog store itself.
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	cancel := a.cancel
	a.mu.Unlock()

	a.reconciler.Stop()

	shutdownCtx, timeoutCancel := context.WithTimeout(ctx, 10*time.Second)
	defer timeoutCancel()
	if err := a.adminServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("app: admin server shutdown error: %v", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("app: metrics server shutdown error: %v", err)
		}
	}

	cancel()
	a.wg.Wait()

	return a.shutdown.Shutdown(ctx, "App.Stop")
}

// Registry returns the job registry, for GetBackfillJob callers embedding
// App directly rather than going through the admin HTTP surface.
func (a *App) Registry() *backfill.Registry {
	return a.jobs
}

// Driver returns the alter-table driver, for LaunchNextVersionIfNecessary
// callers embedding App directly.
func (a *App) Driver() *altertable.Driver {
	return a.driver
}
