package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/placementcell/go-talent/internal/domain"
)

func TestFingerprintIgnoresSyncTime(t *testing.T) {
	a := &domain.PlatformStats{
		Platform:       domain.PlatformLeetCode,
		Username:       "alice",
		ProfileURL:     "https://leetcode.com/u/alice",
		Rating:         1674,
		ProblemsSolved: 150,
		Metadata:       map[string]any{"solved_easy": 80},
		SyncedAt:       time.Now(),
	}
	b := *a
	b.SyncedAt = a.SyncedAt.Add(24 * time.Hour)

	assert.Equal(t, Fingerprint(a), Fingerprint(&b))
}

// Two candidates linking the same handle must not share a ledger
// entry; each candidate's first sync has to look new
func TestLedgerKeysScopedToCandidate(t *testing.T) {
	l := NewLedger(nil, "sync", 0)

	a := l.makeKey("cand-a", domain.PlatformGitHub, "octocat")
	b := l.makeKey("cand-b", domain.PlatformGitHub, "octocat")

	assert.Equal(t, "sync:cand-a:github:octocat", a)
	assert.Equal(t, "sync:cand-b:github:octocat", b)
	assert.NotEqual(t, a, b)
}

func TestFingerprintChangesWithStats(t *testing.T) {
	a := &domain.PlatformStats{
		Platform:       domain.PlatformLeetCode,
		Username:       "alice",
		Rating:         1674,
		ProblemsSolved: 150,
	}
	b := *a
	b.ProblemsSolved = 151

	assert.NotEqual(t, Fingerprint(a), Fingerprint(&b))
	assert.Len(t, Fingerprint(a), 32)
}
