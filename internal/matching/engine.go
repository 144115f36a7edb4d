package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/placementcell/go-talent/internal/domain"
)

// Skill weight vs CGPA weight in the overall score
const (
	skillsWeight = 0.6
	cgpaWeight   = 0.4
)

// numberPattern extracts the first numeric token from an eligibility
// string, e.g. "CGPA > 8.0" -> 8.0
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// branchPattern detects whether an eligibility string mentions a branch
// requirement at all. Short abbreviations are word-bounded so that e.g.
// "it" inside "eligibility" does not count as a requirement.
var branchPattern = regexp.MustCompile(`(?i)\b(cse|ece|eee|it|ce|mech|civil|chemical|biotech|computer science|information technology|electronics|electrical|mechanical|aerospace)\b`)

// AdvisoryMatch scores a candidate against a job and reports every
// sub-score unconditionally. CGPA and branch gates are advisory flags;
// they do not change the overall score. Used by the per-job detail view.
func AdvisoryMatch(candidate domain.CandidateProfile, job domain.JobRequirement) domain.MatchResult {
	result, _ := evaluate(candidate, job)
	return result
}

// GatedMatch scores a candidate against a job like AdvisoryMatch but
// forces the overall score to 0 when the CGPA or branch gate fails.
// Used by the bulk recommendation path.
func GatedMatch(candidate domain.CandidateProfile, job domain.JobRequirement) domain.MatchResult {
	result, gated := evaluate(candidate, job)
	if gated {
		result.Overall = 0
	}
	return result
}

// evaluate computes the full breakdown. The overall score is taken from
// the unrounded sub-scores; the breakdown scores are rounded for display.
func evaluate(candidate domain.CandidateProfile, job domain.JobRequirement) (domain.MatchResult, bool) {
	required := splitSkills(job.SkillsRequired)
	skillsScore, matching, missing := scoreSkills(candidate.Skills, required)

	requiredCGPA := parseRequiredCGPA(job.Eligibility)
	cgpaScore, cgpaMeets := scoreCGPA(candidate.CGPA, requiredCGPA)

	branchMeets := branchEligible(candidate.Branch, job.Eligibility)

	result := domain.MatchResult{
		Overall: int(math.Round(skillsWeight*skillsScore + cgpaWeight*cgpaScore)),
		Skills: domain.SkillsBreakdown{
			Score:    int(math.Round(skillsScore)),
			Matching: matching,
			Missing:  missing,
			Total:    len(required),
		},
		CGPA: domain.CGPABreakdown{
			Score:    int(math.Round(cgpaScore)),
			Meets:    cgpaMeets,
			Required: requiredCGPA,
		},
		Branch: domain.BranchBreakdown{Meets: branchMeets},
	}
	return result, !cgpaMeets || !branchMeets
}

// splitSkills parses a comma-separated requirement string into
// lowercased, trimmed, deduplicated tokens in input order
func splitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, token := range strings.Split(s, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// scoreSkills intersects the candidate's skills with the required set.
// An empty requirement scores 0, not 100; recommendation callers rely
// on that to avoid ranking skill-less postings above real matches.
func scoreSkills(candidateSkills, required []string) (float64, []string, []string) {
	if len(required) == 0 {
		return 0, []string{}, []string{}
	}

	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matching := make([]string, 0, len(required))
	missing := make([]string, 0)
	for _, r := range required {
		if _, ok := have[r]; ok {
			matching = append(matching, r)
		} else {
			missing = append(missing, r)
		}
	}

	score := float64(len(matching)) / float64(len(required)) * 100
	return score, matching, missing
}

// parseRequiredCGPA extracts the minimum CGPA from an eligibility
// string. No numeric token means no requirement (0).
func parseRequiredCGPA(eligibility string) float64 {
	token := numberPattern.FindString(eligibility)
	if token == "" {
		return 0
	}
	required, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return required
}

// scoreCGPA returns 100 when the requirement is absent or met, else a
// partial-credit fraction of the requirement. An unset CGPA counts as 0
// inside the partial-credit formula only.
func scoreCGPA(cgpa, required float64) (float64, bool) {
	if required == 0 || cgpa >= required {
		return 100, true
	}
	if cgpa <= 0 {
		return 0, false
	}
	return cgpa / required * 100, false
}

// branchEligible applies the branch gate. The gate passes when the
// eligibility string names no branch at all, when the candidate has no
// branch on record, or when the eligibility string contains the
// candidate's branch. Deliberately a plain substring test; no aliasing.
func branchEligible(branch, eligibility string) bool {
	elig := strings.ToLower(eligibility)
	if !branchPattern.MatchString(elig) {
		return true
	}
	if strings.TrimSpace(branch) == "" {
		return true
	}
	return strings.Contains(elig, strings.ToLower(strings.TrimSpace(branch)))
}
