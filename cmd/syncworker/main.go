package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/placementcell/go-talent/internal/common/store"
	"github.com/placementcell/go-talent/internal/common/throttle"
	"github.com/placementcell/go-talent/internal/config"
	"github.com/placementcell/go-talent/internal/platform"
	"github.com/placementcell/go-talent/internal/platform/codechef"
	"github.com/placementcell/go-talent/internal/platform/codeforces"
	"github.com/placementcell/go-talent/internal/platform/github"
	"github.com/placementcell/go-talent/internal/platform/leetcode"
	"github.com/placementcell/go-talent/internal/platform/linkedin"
	"github.com/placementcell/go-talent/internal/queue"
	"github.com/placementcell/go-talent/internal/syncer"
	"github.com/placementcell/go-talent/internal/worker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Profile Sync Worker Service")

	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg := config.Load()

	// Initialize Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Redis connected")

	// Initialize PostgreSQL stats store
	pgStore, err := store.NewPostgresStore(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	defer pgStore.Close()
	log.Println("PostgreSQL connected")

	// Initialize Elasticsearch profile indexer
	esIndexer, err := store.NewProfileIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
	if err != nil {
		log.Fatalf("Elasticsearch connection failed: %v", err)
	}
	log.Printf("Elasticsearch connected, index: %s", cfg.Elasticsearch.Index)

	if err := esIndexer.EnsureIndex(ctx); err != nil {
		log.Printf("Warning: Failed to ensure index: %v", err)
	}

	// Initialize components
	adapterCfg := platform.Config{
		UserAgent:    cfg.Fetcher.UserAgent,
		Timeout:      cfg.Fetcher.TimeoutMS,
		RequestDelay: cfg.Fetcher.RequestDelayMS,
	}
	registry := platform.NewRegistry(
		github.New(adapterCfg),
		leetcode.New(adapterCfg),
		codeforces.New(adapterCfg),
		codechef.New(adapterCfg),
		linkedin.New(),
	)
	profileSyncer := syncer.New(registry)
	consumer := queue.NewConsumer(rdb, cfg.Redis.SyncQueue, 5*time.Second)
	ledger := throttle.NewLedger(rdb, "sync", cfg.Redis.LedgerTTL)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start worker pool (consumes queue -> syncs platforms -> upserts + indexes)
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := worker.NewWorker(consumer, profileSyncer, pgStore, esIndexer, ledger, worker.Config{
			Concurrency: cfg.Worker.Concurrency,
			BatchSize:   cfg.Worker.BatchSize,
		})
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Worker error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutdown signal received, stopping...")
	cancel()

	// Wait for goroutines to finish
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Graceful shutdown complete")
	case <-time.After(30 * time.Second):
		log.Println("Shutdown timeout, forcing exit")
	}
}
