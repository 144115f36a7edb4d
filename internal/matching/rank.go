package matching

import (
	"sort"

	"github.com/placementcell/go-talent/internal/domain"
)

// RankedJob pairs a job with its gated match result for one candidate
type RankedJob struct {
	Job    domain.JobRequirement `json:"job"`
	Result domain.MatchResult    `json:"result"`
}

// RankedCandidate pairs a candidate with its gated match result for one job
type RankedCandidate struct {
	Candidate domain.CandidateProfile `json:"candidate"`
	Result    domain.MatchResult      `json:"result"`
}

// RankJobs scores every job for a candidate with GatedMatch and returns
// them ordered by overall score, highest first. The sort is stable so
// equal scores keep the input order.
func RankJobs(candidate domain.CandidateProfile, jobs []domain.JobRequirement) []RankedJob {
	ranked := make([]RankedJob, 0, len(jobs))
	for _, job := range jobs {
		ranked = append(ranked, RankedJob{Job: job, Result: GatedMatch(candidate, job)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Overall > ranked[j].Result.Overall
	})
	return ranked
}

// RankCandidates scores every candidate for a job with GatedMatch and
// returns them ordered by overall score, highest first. Stable on ties.
func RankCandidates(job domain.JobRequirement, candidates []domain.CandidateProfile) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, RankedCandidate{Candidate: candidate, Result: GatedMatch(candidate, job)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Overall > ranked[j].Result.Overall
	})
	return ranked
}
