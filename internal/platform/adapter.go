package platform

import (
	"context"
	"sort"

	"github.com/placementcell/go-talent/internal/domain"
)

// Adapter is the common interface for all platform integrations.
// Implementations are stateless and safe for concurrent use; one exists
// per platform, selected from the Registry by platform name.
type Adapter interface {
	// Fetch retrieves the raw public profile for a handle
	Fetch(ctx context.Context, handle string) (*domain.RawProfile, error)
	// Normalize converts raw platform data to the shared stats shape
	Normalize(raw *domain.RawProfile) (*domain.PlatformStats, error)
	// Platform returns the platform identifier
	Platform() domain.Platform
}

// Config holds common configuration for adapters that talk HTTP
type Config struct {
	BaseURL      string
	UserAgent    string
	Timeout      int // milliseconds, 0 means adapter default
	RequestDelay int // milliseconds between scrape requests, 0 means none
}

// Registry holds one adapter per platform
type Registry struct {
	adapters map[domain.Platform]Adapter
}

// NewRegistry builds a registry from the given adapters. A later
// adapter for the same platform replaces an earlier one.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domain.Platform]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Platform()] = a
	}
	return r
}

// Get returns the adapter registered for a platform
func (r *Registry) Get(p domain.Platform) (Adapter, bool) {
	a, ok := r.adapters[p]
	return a, ok
}

// Platforms returns the registered platform names, sorted
func (r *Registry) Platforms() []domain.Platform {
	out := make([]domain.Platform, 0, len(r.adapters))
	for p := range r.adapters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
