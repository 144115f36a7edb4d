package throttle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/placementcell/go-talent/internal/domain"
)

// Ledger tracks recently synced profiles in Redis. The worker uses it
// to skip re-writing rows whose normalized stats have not changed
// since the last sync; the upsert itself stays idempotent either way.
type Ledger struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewLedger creates a Redis-backed sync ledger
func NewLedger(client *redis.Client, prefix string, defaultTTL time.Duration) *Ledger {
	if prefix == "" {
		prefix = "sync"
	}
	if defaultTTL == 0 {
		defaultTTL = 7 * 24 * time.Hour
	}
	return &Ledger{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// Result represents the outcome of checking a profile against the ledger
type Result int

const (
	// ResultNew - this profile has never been synced
	ResultNew Result = iota
	// ResultUpdated - synced before, but the stats have changed
	ResultUpdated
	// ResultUnchanged - synced before with identical stats
	ResultUnchanged
)

// Check compares a profile's fingerprint against the stored one
func (l *Ledger) Check(ctx context.Context, candidateID string, p domain.Platform, handle, fingerprint string) (Result, error) {
	key := l.makeKey(candidateID, p, handle)

	stored, err := l.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ResultNew, nil
	}
	if err != nil {
		return ResultNew, fmt.Errorf("redis get: %w", err)
	}

	if stored != fingerprint {
		return ResultUpdated, nil
	}
	return ResultUnchanged, nil
}

// Mark records a profile's fingerprint with the default TTL
func (l *Ledger) Mark(ctx context.Context, candidateID string, p domain.Platform, handle, fingerprint string) error {
	key := l.makeKey(candidateID, p, handle)
	if err := l.client.Set(ctx, key, fingerprint, l.defaultTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// makeKey scopes entries to the candidate as well as the handle. Two
// candidates can link the same handle; each needs its own first sync.
func (l *Ledger) makeKey(candidateID string, p domain.Platform, handle string) string {
	return fmt.Sprintf("%s:%s:%s:%s", l.prefix, candidateID, p, handle)
}

// Fingerprint hashes the sync-relevant fields of normalized stats.
// SyncedAt is excluded so that two identical syncs compare equal.
func Fingerprint(stats *domain.PlatformStats) string {
	payload, err := json.Marshal(map[string]any{
		"username":        stats.Username,
		"profile_url":     stats.ProfileURL,
		"rating":          stats.Rating,
		"problems_solved": stats.ProblemsSolved,
		"metadata":        stats.Metadata,
	})
	if err != nil {
		return ""
	}
	h := sha256.Sum256(payload)
	return hex.EncodeToString(h[:16])
}
