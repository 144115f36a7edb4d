package domain

import (
	"time"

	"github.com/google/uuid"
)

// Platform identifies an external coding/profile platform
type Platform string

const (
	PlatformGitHub     Platform = "github"
	PlatformLeetCode   Platform = "leetcode"
	PlatformCodeforces Platform = "codeforces"
	PlatformCodeChef   Platform = "codechef"
	PlatformLinkedIn   Platform = "linkedin"
)

// AllPlatforms lists every supported platform in display order
var AllPlatforms = []Platform{
	PlatformGitHub,
	PlatformLeetCode,
	PlatformCodeforces,
	PlatformCodeChef,
	PlatformLinkedIn,
}

// RawProfile represents raw extracted platform data before normalization
type RawProfile struct {
	Platform  Platform       `json:"platform"`
	Handle    string         `json:"handle"`
	Data      map[string]any `json:"data"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// PlatformStats is the normalized shape shared by every platform.
// Rating and ProblemsSolved stay 0 where the platform has no such
// concept (GitHub, LinkedIn).
type PlatformStats struct {
	Platform       Platform       `json:"platform"`
	Username       string         `json:"username"`
	ProfileURL     string         `json:"profile_url"`
	Rating         int            `json:"rating"`
	ProblemsSolved int            `json:"problems_solved"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	SyncedAt       time.Time      `json:"synced_at"`
}

// Identities holds a candidate's handles, one per platform.
// Empty fields mean the candidate has not linked that platform.
type Identities struct {
	GitHub     string `json:"github,omitempty"`
	LeetCode   string `json:"leetcode,omitempty"`
	Codeforces string `json:"codeforces,omitempty"`
	CodeChef   string `json:"codechef,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
}

// ByPlatform returns the non-empty handles keyed by platform
func (i Identities) ByPlatform() map[Platform]string {
	out := make(map[Platform]string)
	if i.GitHub != "" {
		out[PlatformGitHub] = i.GitHub
	}
	if i.LeetCode != "" {
		out[PlatformLeetCode] = i.LeetCode
	}
	if i.Codeforces != "" {
		out[PlatformCodeforces] = i.Codeforces
	}
	if i.CodeChef != "" {
		out[PlatformCodeChef] = i.CodeChef
	}
	if i.LinkedIn != "" {
		out[PlatformLinkedIn] = i.LinkedIn
	}
	return out
}

// Count returns how many platforms have a handle set
func (i Identities) Count() int {
	return len(i.ByPlatform())
}

// SyncRequest asks the worker to refresh a candidate's platform profiles
type SyncRequest struct {
	ID          string     `json:"id"`
	CandidateID string     `json:"candidate_id"`
	Identities  Identities `json:"identities"`
	RequestedAt time.Time  `json:"requested_at"`
}

// NewSyncRequest builds a sync request with a fresh ID
func NewSyncRequest(candidateID string, identities Identities) *SyncRequest {
	return &SyncRequest{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		Identities:  identities,
		RequestedAt: time.Now(),
	}
}
