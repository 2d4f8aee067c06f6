package match

import (
	"sort"

	"github.com/connecthq/connect/internal/model"
)

// Rank attaches a match score and tier to each request and returns a new
// slice sorted by score, highest first. The sort is stable so requests
// with equal scores keep their fetch order. The input slice is not
// mutated; with a nil profile every score is 0 and the original order is
// preserved.
func Rank(profile *Profile, requests []model.Request) []model.Request {
	ranked := make([]model.Request, len(requests))
	copy(ranked, requests)

	for i := range ranked {
		score := Score(profile, ranked[i].Tags)
		ranked[i].MatchScore = score
		ranked[i].MatchTier = Tier(score)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	return ranked
}
