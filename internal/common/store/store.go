package store

import (
	"context"

	"github.com/placementcell/go-talent/internal/domain"
)

// Store persists normalized platform stats. (candidateID, platform) is
// the sole row identity: re-syncing the same platform overwrites.
type Store interface {
	// Upsert writes one platform's stats for a candidate
	Upsert(ctx context.Context, candidateID string, stats *domain.PlatformStats) error
	// ListByCandidate returns every stored platform row for a candidate
	ListByCandidate(ctx context.Context, candidateID string) ([]*domain.PlatformStats, error)
}
