package codechef

// Rating thresholds for CodeChef tier labels. Anything below the
// 1-star floor is Unrated.
var tiers = []struct {
	min   int
	label string
}{
	{2500, "Grandmaster"},
	{2200, "Master"},
	{2000, "Candidate Master"},
	{1800, "Expert"},
	{1600, "Specialist"},
	{1400, "Pupil"},
	{1200, "Newbie"},
}

// TierForRating maps a current rating to its tier label
func TierForRating(rating int) string {
	for _, t := range tiers {
		if rating >= t.min {
			return t.label
		}
	}
	return "Unrated"
}
