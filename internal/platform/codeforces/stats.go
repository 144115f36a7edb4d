package codeforces

import "fmt"

// Submission is one entry from the user.status endpoint
type Submission struct {
	ID                  int64   `json:"id"`
	Verdict             string  `json:"verdict"`
	ProgrammingLanguage string  `json:"programmingLanguage"`
	Problem             Problem `json:"problem"`
}

// Problem identifies a problem within a contest. (ContestID, Index) is
// the identity used for solved-problem deduplication.
type Problem struct {
	ContestID int    `json:"contestId"`
	Index     string `json:"index"`
	Rating    int    `json:"rating"`
}

func (p Problem) key() string {
	return fmt.Sprintf("%d-%s", p.ContestID, p.Index)
}

// submissionSummary aggregates a submission history
type submissionSummary struct {
	SolvedCount         int
	Verdicts            map[string]int
	Languages           map[string]int
	DifficultyHistogram map[string]int
}

// summarizeSubmissions derives solved count and distributions from the
// full submission list. A problem counts as solved once no matter how
// many accepted submissions it has.
func summarizeSubmissions(submissions []Submission) submissionSummary {
	summary := submissionSummary{
		Verdicts:            make(map[string]int),
		Languages:           make(map[string]int),
		DifficultyHistogram: make(map[string]int),
	}

	solved := make(map[string]struct{})
	for _, s := range submissions {
		if s.Verdict != "" {
			summary.Verdicts[s.Verdict]++
		}
		if s.ProgrammingLanguage != "" {
			summary.Languages[s.ProgrammingLanguage]++
		}
		if s.Verdict != "OK" {
			continue
		}
		key := s.Problem.key()
		if _, seen := solved[key]; seen {
			continue
		}
		solved[key] = struct{}{}
		if s.Problem.Rating > 0 {
			summary.DifficultyHistogram[difficultyBucket(s.Problem.Rating)]++
		}
	}
	summary.SolvedCount = len(solved)
	return summary
}

// difficultyBucket groups a problem rating into 100-point buckets,
// e.g. 1534 -> "1500"
func difficultyBucket(rating int) string {
	return fmt.Sprintf("%d", rating/100*100)
}
