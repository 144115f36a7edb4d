package worker

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/placementcell/go-talent/internal/common/store"
	"github.com/placementcell/go-talent/internal/common/throttle"
	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/queue"
	"github.com/placementcell/go-talent/internal/syncer"
)

// Worker drains sync requests from the queue, resolves the platform
// profiles and persists the results (Postgres upsert + search index).
type Worker struct {
	consumer *queue.Consumer
	syncer   *syncer.Syncer
	store    store.Store
	indexer  *store.ProfileIndexer // optional
	ledger   *throttle.Ledger      // optional

	batchSize   int
	concurrency int
}

// Config holds worker configuration
type Config struct {
	Concurrency int
	BatchSize   int
}

// NewWorker creates a new worker
func NewWorker(
	consumer *queue.Consumer,
	sync *syncer.Syncer,
	st store.Store,
	indexer *store.ProfileIndexer,
	ledger *throttle.Ledger,
	cfg Config,
) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}

	return &Worker{
		consumer:    consumer,
		syncer:      sync,
		store:       st,
		indexer:     indexer,
		ledger:      ledger,
		batchSize:   cfg.BatchSize,
		concurrency: cfg.Concurrency,
	}
}

// Run starts the worker pool
func (w *Worker) Run(ctx context.Context) error {
	log.Printf("Starting sync worker pool with %d workers", w.concurrency)

	var wg sync.WaitGroup
	errChan := make(chan error, w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			if err := w.runSingle(ctx, workerID); err != nil {
				errChan <- fmt.Errorf("worker %d: %w", workerID, err)
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	case <-done:
		return nil
	}
}

func (w *Worker) runSingle(ctx context.Context, workerID int) error {
	log.Printf("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d stopping", workerID)
			return nil
		default:
		}

		reqs, err := w.consumer.ConsumeBatch(ctx, w.batchSize)
		if err != nil {
			log.Printf("Worker %d consume error: %v", workerID, err)
			continue
		}

		if len(reqs) == 0 {
			continue // Timeout from BRPOP, try again
		}

		log.Printf("Worker %d processing %d sync requests", workerID, len(reqs))

		for _, req := range reqs {
			w.process(ctx, workerID, req)
		}
	}
}

// process runs one sync request end to end. Unchanged profiles are
// skipped via the ledger; everything else is upserted and re-indexed.
func (w *Worker) process(ctx context.Context, workerID int, req *domain.SyncRequest) {
	report := w.syncer.SyncAll(ctx, req.CandidateID, req.Identities)

	var docs []store.ProfileDocument
	stored, skipped := 0, 0

	for p, stats := range report.Results {
		fingerprint := throttle.Fingerprint(stats)

		if w.ledger != nil {
			result, err := w.ledger.Check(ctx, req.CandidateID, p, stats.Username, fingerprint)
			if err != nil {
				log.Printf("Worker %d ledger check error for %s/%s: %v", workerID, p, stats.Username, err)
			} else if result == throttle.ResultUnchanged {
				skipped++
				continue
			}
		}

		if err := w.store.Upsert(ctx, req.CandidateID, stats); err != nil {
			log.Printf("Worker %d upsert error for %s/%s: %v", workerID, p, stats.Username, err)
			continue
		}
		stored++
		docs = append(docs, store.DocumentFor(req.CandidateID, stats))

		if w.ledger != nil {
			if err := w.ledger.Mark(ctx, req.CandidateID, p, stats.Username, fingerprint); err != nil {
				log.Printf("Worker %d ledger mark error for %s/%s: %v", workerID, p, stats.Username, err)
			}
		}
	}

	if w.indexer != nil && len(docs) > 0 {
		if err := w.indexer.BulkIndex(ctx, docs); err != nil {
			log.Printf("Worker %d index error for candidate %s: %v", workerID, req.CandidateID, err)
		}
	}

	log.Printf("Worker %d request %s: candidate %s - %d requested, %d synced, %d stored, %d unchanged, %d failed",
		workerID, req.ID, req.CandidateID,
		report.Requested, report.Succeeded(), stored, skipped, len(report.Errors))
	for _, e := range report.Errors {
		log.Printf("Worker %d request %s: [%s] %s", workerID, req.ID, e.Platform, e.Error)
	}
}
