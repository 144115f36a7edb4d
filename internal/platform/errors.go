package platform

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the three failure classes every adapter reports.
// Callers classify with errors.Is; adapters wrap these with platform
// and handle context.
var (
	// ErrNotFound - the platform confirmed no such handle exists
	ErrNotFound = errors.New("profile not found")
	// ErrTransient - network failure or upstream 5xx; safe to retry later
	ErrTransient = errors.New("transient platform error")
	// ErrInvalidFormat - the supplied handle/URL is malformed; needs user correction
	ErrInvalidFormat = errors.New("invalid handle format")
)

// StatusError maps an unexpected HTTP status to a failure class.
// 404 means the handle does not exist; everything else (rate limits,
// 5xx, upstream weirdness) is reported as transient.
func StatusError(status int) error {
	if status == http.StatusNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("unexpected status %d: %w", status, ErrTransient)
}
