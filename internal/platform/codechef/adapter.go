package codechef

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/placementcell/go-talent/internal/common/cleaner"
	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/platform"
)

const defaultBaseURL = "https://www.codechef.com"

// CodeChef has no public profile API, so this adapter scrapes the
// profile page. Markup changes upstream surface as transient errors at
// this boundary; there is no hardening beyond that.
type Adapter struct {
	collector *colly.Collector
	baseURL   string
	cleaner   *cleaner.Cleaner
}

var (
	firstNumberPattern = regexp.MustCompile(`\d+`)
	// "Total Problems Solved: 123" on the problems-solved section
	solvedPattern = regexp.MustCompile(`Total Problems Solved:\s*(\d+)`)
)

// New creates a CodeChef adapter
func New(cfg platform.Config) *Adapter {
	c := colly.NewCollector(colly.AllowURLRevisit())
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	timeout := 20 * time.Second
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Millisecond
	}
	c.SetRequestTimeout(timeout)
	if cfg.RequestDelay > 0 {
		c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Delay:       time.Duration(cfg.RequestDelay) * time.Millisecond,
			RandomDelay: time.Duration(cfg.RequestDelay/2) * time.Millisecond,
		})
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		collector: c,
		baseURL:   baseURL,
		cleaner:   cleaner.NewTextCleaner(),
	}
}

// Platform returns the platform identifier
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformCodeChef
}

// Fetch scrapes the public profile page for a CodeChef handle
func (a *Adapter) Fetch(ctx context.Context, handle string) (*domain.RawProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profileURL := fmt.Sprintf("%s/users/%s", a.baseURL, handle)
	collector := a.collector.Clone()

	data := make(map[string]any)
	var fetchErr error
	found := false

	collector.OnHTML("body", func(e *colly.HTMLElement) {
		doc := e.DOM

		ratingText := strings.TrimSpace(doc.Find(".rating-number").First().Text())
		if ratingText == "" {
			// Unknown handles render the generic page without a rating widget
			return
		}
		found = true

		data["rating"] = parseFirstInt(ratingText)
		data["max_rating"] = parseFirstInt(doc.Find(".rating-header small").First().Text())
		data["stars"] = doc.Find(".rating-star span").Length()

		username := strings.TrimSpace(doc.Find(".user-details-container header h1").First().Text())
		if username == "" {
			username = handle
		}
		data["username"] = username

		solvedText := a.cleaner.CleanToText(sectionHTML(doc, ".rating-data-section.problems-solved"))
		if m := solvedPattern.FindStringSubmatch(solvedText); m != nil {
			data["solved_count"], _ = strconv.Atoi(m[1])
		}

		data["contests_attended"] = parseFirstInt(doc.Find(".contest-participated-count b").First().Text())
		data["contest_types"] = contestTypeCounts(doc)
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode == http.StatusNotFound {
			fetchErr = fmt.Errorf("codechef user %q: %w", handle, platform.ErrNotFound)
			return
		}
		fetchErr = fmt.Errorf("codechef user %q: %v: %w", handle, err, platform.ErrTransient)
	})

	if err := collector.Visit(profileURL); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("codechef user %q: %v: %w", handle, err, platform.ErrTransient)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if !found {
		return nil, fmt.Errorf("codechef user %q: %w", handle, platform.ErrNotFound)
	}

	return &domain.RawProfile{
		Platform:  domain.PlatformCodeChef,
		Handle:    handle,
		Data:      data,
		FetchedAt: time.Now(),
	}, nil
}

// Normalize converts scraped CodeChef data into the shared stats shape
func (a *Adapter) Normalize(raw *domain.RawProfile) (*domain.PlatformStats, error) {
	username := platform.GetString(raw.Data, "username")
	if username == "" {
		username = raw.Handle
	}
	rating := platform.GetInt(raw.Data, "rating")

	metadata := map[string]any{
		"tier":              TierForRating(rating),
		"max_rating":        platform.GetInt(raw.Data, "max_rating"),
		"stars":             platform.GetInt(raw.Data, "stars"),
		"contests_attended": platform.GetInt(raw.Data, "contests_attended"),
	}
	if v, ok := raw.Data["contest_types"]; ok {
		metadata["contest_types"] = v
	}

	return &domain.PlatformStats{
		Platform:       domain.PlatformCodeChef,
		Username:       username,
		ProfileURL:     "https://www.codechef.com/users/" + username,
		Rating:         rating,
		ProblemsSolved: platform.GetInt(raw.Data, "solved_count"),
		Metadata:       metadata,
		SyncedAt:       time.Now(),
	}, nil
}

// contestTypeCounts groups contest headings ("Starters 154 (Div 2)",
// "Cook-Off 2023", ...) by the series name before the first number
func contestTypeCounts(doc *goquery.Selection) map[string]int {
	counts := make(map[string]int)
	doc.Find(".rating-data-section .content h5").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if name == "" {
			return
		}
		if loc := firstNumberPattern.FindStringIndex(name); loc != nil {
			name = strings.TrimSpace(name[:loc[0]])
		}
		if name == "" {
			return
		}
		counts[name]++
	})
	return counts
}

func sectionHTML(doc *goquery.Selection, selector string) string {
	html, err := goquery.OuterHtml(doc.Find(selector).First())
	if err != nil {
		return ""
	}
	return html
}

func parseFirstInt(s string) int {
	m := firstNumberPattern.FindString(s)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}
