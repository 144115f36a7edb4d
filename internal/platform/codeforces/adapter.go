package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
)

const defaultBaseURL = "https://codeforces.com"

// Adapter fetches Codeforces profiles via the public API.
// Two calls per sync: user.info for ratings, user.status for the full
// submission history that the solved-problem stats are derived from.
type Adapter struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

type apiEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type userInfo struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
	Rank      string `json:"rank"`
	MaxRank   string `json:"maxRank"`
}

// New creates a Codeforces adapter
func New(cfg platform.Config) *Adapter {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := 20 * time.Second
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
	return domain.PlatformCodeforces
}

// Fetch retrieves profile info and submission history for a handle
func (a *Adapter) Fetch(ctx context.Context, handle string) (*domain.RawProfile, error) {
	info, err := a.fetchInfo(ctx, handle)
	if err != nil {
		return nil, err
	}

	submissions, err := a.fetchSubmissions(ctx, handle)
	if err != nil {
		return nil, err
	}
	summary := summarizeSubmissions(submissions)

	return &domain.RawProfile{
		Platform: domain.PlatformCodeforces,
		Handle:   handle,
		Data: map[string]any{
			"handle":               info.Handle,
			"rating":               info.Rating,
			"max_rating":           info.MaxRating,
			"rank":                 info.Rank,
			"max_rank":             info.MaxRank,
			"submission_count":     len(submissions),
			"solved_count":         summary.SolvedCount,
			"verdicts":             summary.Verdicts,
			"languages":            summary.Languages,
			"difficulty_histogram": summary.DifficultyHistogram,
		},
		FetchedAt: time.Now(),
	}, nil
}

// Normalize converts raw Codeforces data into the shared stats shape
func (a *Adapter) Normalize(raw *domain.RawProfile) (*domain.PlatformStats, error) {
	username := platform.GetString(raw.Data, "handle")
	if username == "" {
		username = raw.Handle
	}

	metadata := map[string]any{
		"max_rating":       platform.GetInt(raw.Data, "max_rating"),
		"rank":             platform.GetString(raw.Data, "rank"),
		"max_rank":         platform.GetString(raw.Data, "max_rank"),
		"submission_count": platform.GetInt(raw.Data, "submission_count"),
	}
	if v := platform.GetMap(raw.Data, "verdicts"); v != nil {
		metadata["verdicts"] = v
	} else if v, ok := raw.Data["verdicts"]; ok {
		metadata["verdicts"] = v
	}
	if v, ok := raw.Data["languages"]; ok {
		metadata["languages"] = v
	}
	if v, ok := raw.Data["difficulty_histogram"]; ok {
		metadata["difficulty_histogram"] = v
	}

	return &domain.PlatformStats{
		Platform:       domain.PlatformCodeforces,
		Username:       username,
		ProfileURL:     "https://codeforces.com/profile/" + username,
		Rating:         platform.GetInt(raw.Data, "rating"),
		ProblemsSolved: platform.GetInt(raw.Data, "solved_count"),
		Metadata:       metadata,
		SyncedAt:       time.Now(),
	}, nil
}

func (a *Adapter) fetchInfo(ctx context.Context, handle string) (*userInfo, error) {
	endpoint := fmt.Sprintf("%s/api/user.info?handles=%s", a.baseURL, url.QueryEscape(handle))
	result, err := a.call(ctx, handle, endpoint)
	if err != nil {
		return nil, err
	}

	var users []userInfo
	if err := json.Unmarshal(result, &users); err != nil {
		return nil, fmt.Errorf("parse user.info: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("codeforces user %q: %w", handle, platform.ErrNotFound)
	}
	return &users[0], nil
}

func (a *Adapter) fetchSubmissions(ctx context.Context, handle string) ([]Submission, error) {
	endpoint := fmt.Sprintf("%s/api/user.status?handle=%s&from=1&count=10000", a.baseURL, url.QueryEscape(handle))
	result, err := a.call(ctx, handle, endpoint)
	if err != nil {
		return nil, err
	}

	var submissions []Submission
	if err := json.Unmarshal(result, &submissions); err != nil {
		return nil, fmt.Errorf("parse user.status: %w", err)
	}
	return submissions, nil
}

// call performs one API request and unwraps the status envelope.
// The API reports unknown handles as status FAILED with a "not found"
// comment rather than a 404.
func (a *Adapter) call(ctx context.Context, handle, endpoint string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("codeforces user %q: %v: %w", handle, err, platform.ErrTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("codeforces user %q: %w", handle, platform.StatusError(resp.StatusCode))
		}
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if envelope.Status != "OK" {
		if strings.Contains(strings.ToLower(envelope.Comment), "not found") {
			return nil, fmt.Errorf("codeforces user %q: %w", handle, platform.ErrNotFound)
		}
		return nil, fmt.Errorf("codeforces user %q: %s: %w", handle, envelope.Comment, platform.ErrTransient)
	}

	return envelope.Result, nil
}
