package domain

// CandidateProfile is the matching-engine view of a candidate.
// CGPA of 0 means "not provided"; an empty Branch means the same.
type CandidateProfile struct {
	Skills []string `json:"skills"`
	CGPA   float64  `json:"cgpa,omitempty"`
	Branch string   `json:"branch,omitempty"`
}

// JobRequirement is the matching-engine view of a job posting.
// SkillsRequired is a comma-separated list; Eligibility is free text
// that may embed a minimum CGPA and/or a required branch.
type JobRequirement struct {
	SkillsRequired string `json:"skills_required"`
	Eligibility    string `json:"eligibility,omitempty"`
}

// MatchResult is the full breakdown of one candidate against one job
type MatchResult struct {
	Overall int             `json:"overall"`
	Skills  SkillsBreakdown `json:"skills"`
	CGPA    CGPABreakdown   `json:"cgpa"`
	Branch  BranchBreakdown `json:"branch"`
}

// SkillsBreakdown reports the skill overlap between candidate and job
type SkillsBreakdown struct {
	Score    int      `json:"score"`
	Matching []string `json:"matching"`
	Missing  []string `json:"missing"`
	Total    int      `json:"total"`
}

// CGPABreakdown reports the CGPA gate and its partial-credit score
type CGPABreakdown struct {
	Score    int     `json:"score"`
	Meets    bool    `json:"meets"`
	Required float64 `json:"required"`
}

// BranchBreakdown reports the branch gate (pass/fail only)
type BranchBreakdown struct {
	Meets bool `json:"meets"`
}
