package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/placementcell/go-talent/internal/domain"
	"github.com/placementcell/go-talent/internal/matching"
)

// matchctl scores a candidate JSON file against a job JSON file and
// prints the breakdown. Useful for checking recommendation scores
// outside the platform.
func main() {
	log.SetFlags(log.LstdFlags)

	var (
		candidateFile = flag.String("candidate", "", "path to candidate JSON ({skills, cgpa, branch})")
		jobFile       = flag.String("job", "", "path to job JSON ({skills_required, eligibility})")
		gated         = flag.Bool("gated", false, "use the gated recommendation variant instead of the advisory one")
	)
	flag.Parse()

	if *candidateFile == "" || *jobFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	var candidate domain.CandidateProfile
	if err := readJSON(*candidateFile, &candidate); err != nil {
		log.Fatalf("Read candidate: %v", err)
	}

	var job domain.JobRequirement
	if err := readJSON(*jobFile, &job); err != nil {
		log.Fatalf("Read job: %v", err)
	}

	var result domain.MatchResult
	if *gated {
		result = matching.GatedMatch(candidate, job)
	} else {
		result = matching.AdvisoryMatch(candidate, job)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Marshal result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.WriteString("\n")
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
