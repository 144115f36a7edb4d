package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
)

const defaultBaseURL = "https://leetcode.com"

// profileQuery fetches submission stats and contest rating in one call
const profileQuery = `
query userProfile($username: String!) {
  matchedUser(username: $username) {
    username
    profile { ranking }
    submitStatsGlobal {
      acSubmissionNum { difficulty count submissions }
      totalSubmissionNum { difficulty count submissions }
    }
  }
  userContestRanking(username: $username) {
    rating
    attendedContestsCount
  }
}`

// Adapter fetches LeetCode profiles through the public GraphQL endpoint
type Adapter struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

type submissionBucket struct {
	Difficulty  string `json:"difficulty"`
	Count       int    `json:"count"`
	Submissions int    `json:"submissions"`
}

type graphqlResponse struct {
	Data struct {
		MatchedUser *struct {
			Username string `json:"username"`
			Profile  struct {
				Ranking int `json:"ranking"`
			} `json:"profile"`
			SubmitStatsGlobal struct {
				AcSubmissionNum    []submissionBucket `json:"acSubmissionNum"`
				TotalSubmissionNum []submissionBucket `json:"totalSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
		UserContestRanking *struct {
			Rating                float64 `json:"rating"`
			AttendedContestsCount int     `json:"attendedContestsCount"`
		} `json:"userContestRanking"`
	} `json:"data"`
}

// New creates a LeetCode adapter
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
	return domain.PlatformLeetCode
}

// Fetch runs the profile query for a LeetCode username
func (a *Adapter) Fetch(ctx context.Context, handle string) (*domain.RawProfile, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     profileQuery,
		"variables": map[string]string{"username": handle},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", a.baseURL)
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leetcode user %q: %v: %w", handle, err, platform.ErrTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leetcode user %q: %w", handle, platform.StatusError(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var gql graphqlResponse
	if err := json.Unmarshal(body, &gql); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	// GraphQL returns 200 with a null matchedUser for unknown handles
	if gql.Data.MatchedUser == nil {
		return nil, fmt.Errorf("leetcode user %q: %w", handle, platform.ErrNotFound)
	}

	data := map[string]any{
		"username": gql.Data.MatchedUser.Username,
		"ranking":  gql.Data.MatchedUser.Profile.Ranking,
	}
	for _, b := range gql.Data.MatchedUser.SubmitStatsGlobal.AcSubmissionNum {
		key := strings.ToLower(b.Difficulty)
		data["accepted_"+key] = b.Count
		data["accepted_submissions_"+key] = b.Submissions
	}
	for _, b := range gql.Data.MatchedUser.SubmitStatsGlobal.TotalSubmissionNum {
		data["total_submissions_"+strings.ToLower(b.Difficulty)] = b.Submissions
	}
	if gql.Data.UserContestRanking != nil {
		data["contest_rating"] = gql.Data.UserContestRanking.Rating
		data["attended_contests"] = gql.Data.UserContestRanking.AttendedContestsCount
	}

	return &domain.RawProfile{
		Platform:  domain.PlatformLeetCode,
		Handle:    handle,
		Data:      data,
		FetchedAt: time.Now(),
	}, nil
}

// Normalize converts raw LeetCode data into the shared stats shape.
// ProblemsSolved sums the Easy/Medium/Hard buckets; the reported "All"
// bucket is kept in metadata so a mismatch is visible downstream.
func (a *Adapter) Normalize(raw *domain.RawProfile) (*domain.PlatformStats, error) {
	username := platform.GetString(raw.Data, "username")
	if username == "" {
		username = raw.Handle
	}

	easy := platform.GetInt(raw.Data, "accepted_easy")
	medium := platform.GetInt(raw.Data, "accepted_medium")
	hard := platform.GetInt(raw.Data, "accepted_hard")
	solved := easy + medium + hard

	accepted := platform.GetFloat(raw.Data, "accepted_submissions_all")
	submitted := platform.GetFloat(raw.Data, "total_submissions_all")
	acceptanceRate := 0.0
	if submitted > 0 {
		acceptanceRate = accepted / submitted * 100
	}

	rating := 0
	if contestRating := platform.GetFloat(raw.Data, "contest_rating"); contestRating > 0 {
		rating = int(math.Round(contestRating))
	}

	return &domain.PlatformStats{
		Platform:       domain.PlatformLeetCode,
		Username:       username,
		ProfileURL:     "https://leetcode.com/u/" + username,
		Rating:         rating,
		ProblemsSolved: solved,
		Metadata: map[string]any{
			"solved_easy":           easy,
			"solved_medium":         medium,
			"solved_hard":           hard,
			"solved_total_reported": platform.GetInt(raw.Data, "accepted_all"),
			"acceptance_rate":       math.Round(acceptanceRate*100) / 100,
			"ranking":               platform.GetInt(raw.Data, "ranking"),
			"attended_contests":     platform.GetInt(raw.Data, "attended_contests"),
		},
		SyncedAt: time.Now(),
	}, nil
}
