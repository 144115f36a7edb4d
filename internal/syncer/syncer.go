package syncer

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
)

// Syncer resolves candidate handles into normalized platform stats.
// Adapters are selected from the registry; the syncer itself holds no
// per-request state and is safe for concurrent use.
type Syncer struct {
	registry *platform.Registry
}

// SyncError records one platform's failure inside a batch sync
type SyncError struct {
	Platform domain.Platform `json:"platform"`
	Error    string          `json:"error"`
}

// Report is the outcome of a batch sync. Every requested platform ends
// up either in Results or in Errors; the caller can tell a partial
// success from a total failure.
type Report struct {
	CandidateID string                                    `json:"candidate_id"`
	Requested   int                                       `json:"requested"`
	Results     map[domain.Platform]*domain.PlatformStats `json:"results"`
	Errors      []SyncError                               `json:"errors"`
}

// Succeeded returns how many platforms synced cleanly
func (r *Report) Succeeded() int {
	return len(r.Results)
}

// Complete reports whether every requested platform synced
func (r *Report) Complete() bool {
	return r.Requested > 0 && len(r.Errors) == 0
}

// Failed reports whether no requested platform synced
func (r *Report) Failed() bool {
	return r.Requested > 0 && len(r.Results) == 0
}

// New creates a syncer backed by the given adapter registry
func New(registry *platform.Registry) *Syncer {
	return &Syncer{registry: registry}
}

// SyncPlatform fetches and normalizes one platform profile
func (s *Syncer) SyncPlatform(ctx context.Context, p domain.Platform, handle string) (*domain.PlatformStats, error) {
	adapter, ok := s.registry.Get(p)
	if !ok {
		return nil, fmt.Errorf("no adapter registered for platform %q", p)
	}

	raw, err := adapter.Fetch(ctx, handle)
	if err != nil {
		return nil, err
	}

	stats, err := adapter.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize %s profile %q: %w", p, handle, err)
	}
	return stats, nil
}

// SyncAll fetches every linked platform for a candidate concurrently.
// Each platform is attempted independently: one failure is captured
// into the report and does not abort the others. All outcomes are
// collected before the report is returned.
func (s *Syncer) SyncAll(ctx context.Context, candidateID string, identities domain.Identities) *Report {
	handles := identities.ByPlatform()
	report := &Report{
		CandidateID: candidateID,
		Requested:   len(handles),
		Results:     make(map[domain.Platform]*domain.PlatformStats, len(handles)),
		Errors:      []SyncError{},
	}
	if len(handles) == 0 {
		return report
	}

	start := time.Now()
	var wg sync.WaitGroup
	var mu sync.Mutex

	for p, handle := range handles {
		wg.Add(1)
		go func(p domain.Platform, handle string) {
			defer wg.Done()

			stats, err := s.SyncPlatform(ctx, p, handle)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[%s] Sync failed for %q: %v", p, handle, err)
				report.Errors = append(report.Errors, SyncError{Platform: p, Error: err.Error()})
				return
			}
			report.Results[p] = stats
		}(p, handle)
	}
	wg.Wait()

	// Map iteration order is random; keep the error list deterministic
	sort.Slice(report.Errors, func(i, j int) bool {
		return report.Errors[i].Platform < report.Errors[j].Platform
	})

	log.Printf("Synced candidate %s: %d requested, %d succeeded, %d failed in %v",
		candidateID, report.Requested, report.Succeeded(), len(report.Errors), time.Since(start))
	return report
}
