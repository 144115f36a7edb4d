package linkedin

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
)

// LinkedIn exposes no public stats API, so this adapter only validates
// the supplied profile URL and normalizes it to the canonical
// https://www.linkedin.com/in/<username> form. Rating and solved
// counts stay 0.
type Adapter struct{}

// Accepted input shapes: full URL, bare domain+path, path-only, bare
// username. Anything else is rejected as InvalidFormat.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.)?linkedin\.com/in/([A-Za-z0-9\-_%.]+)/?$`),
	regexp.MustCompile(`^(?:www\.)?linkedin\.com/in/([A-Za-z0-9\-_%.]+)/?$`),
	regexp.MustCompile(`^/in/([A-Za-z0-9\-_%.]+)/?$`),
	regexp.MustCompile(`^([A-Za-z0-9\-_%.]+)$`),
}

// Verification is the outcome of validating a LinkedIn profile URL
type Verification struct {
	IsValid  bool   `json:"isValid"`
	Username string `json:"username,omitempty"`
	FullURL  string `json:"fullUrl,omitempty"`
}

// VerifyURL checks a raw profile reference against the accepted
// formats and canonicalizes it
func VerifyURL(input string) Verification {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Verification{}
	}
	for _, p := range patterns {
		if m := p.FindStringSubmatch(trimmed); m != nil {
			username := m[1]
			return Verification{
				IsValid:  true,
				Username: username,
				FullURL:  "https://www.linkedin.com/in/" + username,
			}
		}
	}
	return Verification{}
}

// New creates a LinkedIn adapter
func New() *Adapter {
	return &Adapter{}
}

// Platform returns the platform identifier
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformLinkedIn
}

// Fetch validates the handle; no network call is made
func (a *Adapter) Fetch(ctx context.Context, handle string) (*domain.RawProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := VerifyURL(handle)
	if !v.IsValid {
		return nil, fmt.Errorf("linkedin url %q: %w", handle, platform.ErrInvalidFormat)
	}

	return &domain.RawProfile{
		Platform: domain.PlatformLinkedIn,
		Handle:   handle,
		Data: map[string]any{
			"username":      v.Username,
			"canonical_url": v.FullURL,
		},
		FetchedAt: time.Now(),
	}, nil
}

// Normalize converts a validated LinkedIn reference into the shared
// stats shape
func (a *Adapter) Normalize(raw *domain.RawProfile) (*domain.PlatformStats, error) {
	username := platform.GetString(raw.Data, "username")
	profileURL := platform.GetString(raw.Data, "canonical_url")
	if profileURL == "" && username != "" {
		profileURL = "https://www.linkedin.com/in/" + username
	}

	return &domain.PlatformStats{
		Platform:   domain.PlatformLinkedIn,
		Username:   username,
		ProfileURL: profileURL,
		Metadata: map[string]any{
			"validated": true,
		},
		SyncedAt: time.Now(),
	}, nil
}
