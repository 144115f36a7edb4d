package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placementcell/go-talent/internal/domain"
)

func TestAdvisoryMatch(t *testing.T) {
	testCases := []struct {
		name      string
		candidate domain.CandidateProfile
		job       domain.JobRequirement
		want      domain.MatchResult
	}{
		{
			name: "partial skill overlap with met CGPA",
			candidate: domain.CandidateProfile{
				Skills: []string{"Python", "SQL"},
				CGPA:   8.5,
			},
			job: domain.JobRequirement{
				SkillsRequired: "Python, SQL, PowerBI",
				Eligibility:    "CGPA > 8.0",
			},
			want: domain.MatchResult{
				Overall: 80,
				Skills: domain.SkillsBreakdown{
					Score:    67,
					Matching: []string{"python", "sql"},
					Missing:  []string{"powerbi"},
					Total:    3,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 8},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "all required skills present",
			candidate: domain.CandidateProfile{
				Skills: []string{"go", "Docker", "Kubernetes"},
				CGPA:   7,
			},
			job: domain.JobRequirement{
				SkillsRequired: "Go, Docker",
			},
			want: domain.MatchResult{
				Overall: 100,
				Skills: domain.SkillsBreakdown{
					Score:    100,
					Matching: []string{"go", "docker"},
					Missing:  []string{},
					Total:    2,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 0},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "empty requirement string scores zero",
			candidate: domain.CandidateProfile{
				Skills: []string{"Python"},
				CGPA:   9,
			},
			job: domain.JobRequirement{
				SkillsRequired: "",
				Eligibility:    "CGPA 8 required",
			},
			want: domain.MatchResult{
				Overall: 40,
				Skills: domain.SkillsBreakdown{
					Score:    0,
					Matching: []string{},
					Missing:  []string{},
					Total:    0,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 8},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "no parseable number means no CGPA requirement",
			candidate: domain.CandidateProfile{
				Skills: []string{"java"},
				CGPA:   0,
			},
			job: domain.JobRequirement{
				SkillsRequired: "Java",
				Eligibility:    "open to all branches",
			},
			want: domain.MatchResult{
				Overall: 100,
				Skills: domain.SkillsBreakdown{
					Score:    100,
					Matching: []string{"java"},
					Missing:  []string{},
					Total:    1,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 0},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "partial credit CGPA below requirement",
			candidate: domain.CandidateProfile{
				Skills: []string{"python"},
				CGPA:   6,
			},
			job: domain.JobRequirement{
				SkillsRequired: "Python",
				Eligibility:    "Minimum CGPA 8",
			},
			want: domain.MatchResult{
				Overall: 90,
				Skills: domain.SkillsBreakdown{
					Score:    100,
					Matching: []string{"python"},
					Missing:  []string{},
					Total:    1,
				},
				CGPA:   domain.CGPABreakdown{Score: 75, Meets: false, Required: 8},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "absent CGPA scores zero against a requirement",
			candidate: domain.CandidateProfile{
				Skills: []string{"c++"},
			},
			job: domain.JobRequirement{
				SkillsRequired: "C++",
				Eligibility:    "CGPA 7.5",
			},
			want: domain.MatchResult{
				Overall: 60,
				Skills: domain.SkillsBreakdown{
					Score:    100,
					Matching: []string{"c++"},
					Missing:  []string{},
					Total:    1,
				},
				CGPA:   domain.CGPABreakdown{Score: 0, Meets: false, Required: 7.5},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "branch mismatch is advisory only",
			candidate: domain.CandidateProfile{
				Skills: []string{"python"},
				CGPA:   9,
				Branch: "ECE",
			},
			job: domain.JobRequirement{
				SkillsRequired: "Python",
				Eligibility:    "CSE only, CGPA 7+",
			},
			want: domain.MatchResult{
				Overall: 100,
				Skills: domain.SkillsBreakdown{
					Score:    100,
					Matching: []string{"python"},
					Missing:  []string{},
					Total:    1,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 7},
				Branch: domain.BranchBreakdown{Meets: false},
			},
		},
		{
			name: "branch named in eligibility passes the gate",
			candidate: domain.CandidateProfile{
				Skills: []string{"python"},
				CGPA:   8,
				Branch: "CSE",
			},
			job: domain.JobRequirement{
				SkillsRequired: "Python",
				Eligibility:    "CSE/IT, CGPA 7",
			},
			want: domain.MatchResult{
				Overall: 100,
				Skills: domain.SkillsBreakdown{
					Score:    100,
					Matching: []string{"python"},
					Missing:  []string{},
					Total:    1,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 7},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "candidate without branch passes any branch requirement",
			candidate: domain.CandidateProfile{
				Skills: []string{"python"},
				CGPA:   8,
			},
			job: domain.JobRequirement{
				SkillsRequired: "Python",
				Eligibility:    "CSE students, CGPA 7",
			},
			want: domain.MatchResult{
				Overall: 100,
				Skills: domain.SkillsBreakdown{
					Score:    100,
					Matching: []string{"python"},
					Missing:  []string{},
					Total:    1,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 7},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
		{
			name: "duplicate and padded requirement tokens are deduplicated",
			candidate: domain.CandidateProfile{
				Skills: []string{"SQL"},
				CGPA:   8,
			},
			job: domain.JobRequirement{
				SkillsRequired: " SQL , sql,  Python ",
			},
			want: domain.MatchResult{
				Overall: 70,
				Skills: domain.SkillsBreakdown{
					Score:    50,
					Matching: []string{"sql"},
					Missing:  []string{"python"},
					Total:    2,
				},
				CGPA:   domain.CGPABreakdown{Score: 100, Meets: true, Required: 0},
				Branch: domain.BranchBreakdown{Meets: true},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AdvisoryMatch(tc.candidate, tc.job)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGatedMatch(t *testing.T) {
	testCases := []struct {
		name        string
		candidate   domain.CandidateProfile
		job         domain.JobRequirement
		wantOverall int
	}{
		{
			name:        "passing both gates keeps the weighted score",
			candidate:   domain.CandidateProfile{Skills: []string{"python", "sql"}, CGPA: 8.5},
			job:         domain.JobRequirement{SkillsRequired: "Python, SQL, PowerBI", Eligibility: "CGPA > 8.0"},
			wantOverall: 80,
		},
		{
			name:        "failing the CGPA gate zeroes the overall",
			candidate:   domain.CandidateProfile{Skills: []string{"python"}, CGPA: 6},
			job:         domain.JobRequirement{SkillsRequired: "Python", Eligibility: "Minimum CGPA 8"},
			wantOverall: 0,
		},
		{
			name:        "failing the branch gate zeroes the overall",
			candidate:   domain.CandidateProfile{Skills: []string{"python"}, CGPA: 9, Branch: "ECE"},
			job:         domain.JobRequirement{SkillsRequired: "Python", Eligibility: "CSE only, CGPA 7"},
			wantOverall: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := GatedMatch(tc.candidate, tc.job)
			assert.Equal(t, tc.wantOverall, got.Overall)

			// Sub-scores stay reported even when the gate zeroes the overall
			advisory := AdvisoryMatch(tc.candidate, tc.job)
			assert.Equal(t, advisory.Skills, got.Skills)
			assert.Equal(t, advisory.CGPA, got.CGPA)
			assert.Equal(t, advisory.Branch, got.Branch)
		})
	}
}

// Scores stay within 0-100 and the weighted identity holds for any
// well-typed input
func TestMatchScoreBounds(t *testing.T) {
	candidates := []domain.CandidateProfile{
		{},
		{Skills: []string{"python"}},
		{Skills: []string{"python", "sql", "go"}, CGPA: 3.2, Branch: "CSE"},
		{CGPA: 10, Branch: "Mechanical"},
	}
	jobs := []domain.JobRequirement{
		{},
		{SkillsRequired: "python"},
		{SkillsRequired: "python, rust, haskell", Eligibility: "CGPA 9.5, CSE only"},
		{SkillsRequired: ",,,", Eligibility: "no numbers here"},
	}

	for _, c := range candidates {
		for _, j := range jobs {
			got := AdvisoryMatch(c, j)

			assert.GreaterOrEqual(t, got.Overall, 0)
			assert.LessOrEqual(t, got.Overall, 100)
			assert.GreaterOrEqual(t, got.Skills.Score, 0)
			assert.LessOrEqual(t, got.Skills.Score, 100)
			assert.Len(t, got.Skills.Matching, got.Skills.Total-len(got.Skills.Missing))
		}
	}
}

func TestSplitSkills(t *testing.T) {
	assert.Nil(t, splitSkills(""))
	assert.Nil(t, splitSkills("  ,  , "))
	assert.Equal(t, []string{"python", "sql"}, splitSkills("Python, SQL"))
	assert.Equal(t, []string{"python"}, splitSkills("Python,python, PYTHON"))
}

func TestParseRequiredCGPA(t *testing.T) {
	assert.Equal(t, 8.0, parseRequiredCGPA("CGPA > 8.0"))
	assert.Equal(t, 7.5, parseRequiredCGPA("minimum 7.5 CGPA, CSE only"))
	assert.Equal(t, 0.0, parseRequiredCGPA("open to everyone"))
	assert.Equal(t, 0.0, parseRequiredCGPA(""))
}

func TestScoreCGPAPartialCredit(t *testing.T) {
	score, meets := scoreCGPA(6, 8)
	assert.False(t, meets)
	assert.InDelta(t, 75, score, 1e-9)

	score, meets = scoreCGPA(0, 8)
	assert.False(t, meets)
	assert.Equal(t, 0.0, score)

	score, meets = scoreCGPA(0, 0)
	assert.True(t, meets)
	assert.Equal(t, 100.0, score)
}

func TestOverallUsesUnroundedSubScores(t *testing.T) {
	// skills 2/3 = 66.67 raw; 0.6*66.67 + 0.4*100 = 80, not 0.6*67+0.4*100
	got := AdvisoryMatch(
		domain.CandidateProfile{Skills: []string{"python", "sql"}, CGPA: 9},
		domain.JobRequirement{SkillsRequired: "Python, SQL, PowerBI", Eligibility: "CGPA 8"},
	)
	want := int(math.Round(0.6*(2.0/3.0*100) + 0.4*100))
	assert.Equal(t, want, got.Overall)
}
