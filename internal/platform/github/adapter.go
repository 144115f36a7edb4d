package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
)

const defaultBaseURL = "https://api.github.com"

// Adapter fetches public GitHub user profiles via the REST API.
// GitHub has no rating or problems-solved concept; those stay 0 and the
// metadata carries repo/follower counts instead.
type Adapter struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// userResponse is the subset of the GitHub users endpoint we keep
type userResponse struct {
	Login       string `json:"login"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at"`
}

// New creates a GitHub adapter
func New(cfg platform.Config) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := 15 * time.Second
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Millisecond
	}
	return &Adapter{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
	}
}

// Platform returns the platform identifier
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformGitHub
}

// Fetch retrieves the public profile for a GitHub username
func (a *Adapter) Fetch(ctx context.Context, handle string) (*domain.RawProfile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", a.baseURL, url.PathEscape(handle))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github user %q: %v: %w", handle, err, platform.ErrTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("github user %q: %w", handle, platform.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github user %q: %w", handle, platform.StatusError(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var user userResponse
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &domain.RawProfile{
		Platform: domain.PlatformGitHub,
		Handle:   handle,
		Data: map[string]any{
			"login":        user.Login,
			"html_url":     user.HTMLURL,
			"public_repos": user.PublicRepos,
			"followers":    user.Followers,
			"following":    user.Following,
			"created_at":   user.CreatedAt,
		},
		FetchedAt: time.Now(),
	}, nil
}

// Normalize converts raw GitHub data into the shared stats shape
func (a *Adapter) Normalize(raw *domain.RawProfile) (*domain.PlatformStats, error) {
	username := platform.GetString(raw.Data, "login")
	if username == "" {
		username = raw.Handle
	}
	profileURL := platform.GetString(raw.Data, "html_url")
	if profileURL == "" {
		profileURL = "https://github.com/" + username
	}

	return &domain.PlatformStats{
		Platform:   domain.PlatformGitHub,
		Username:   username,
		ProfileURL: profileURL,
		Metadata: map[string]any{
			"public_repos": platform.GetInt(raw.Data, "public_repos"),
			"followers":    platform.GetInt(raw.Data, "followers"),
			"following":    platform.GetInt(raw.Data, "following"),
			"created_at":   platform.GetString(raw.Data, "created_at"),
		},
		SyncedAt: time.Now(),
	}, nil
}
