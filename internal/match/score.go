package match

import (
	"math"

	"github.com/connecthq/connect/internal/model"
)

// Weights for the scoring components
const (
	skillOverlapWeight      = 0.5
	interestAlignmentWeight = 0.3
	exactMatchBonusWeight   = 0.2
)

// Tier thresholds for presentation
const (
	highTierThreshold   = 70
	mediumTierThreshold = 40
)

// Profile is the slice of a viewer's profile the scorer reads. A nil
// Profile means no profile is loaded (anonymous viewer or fetch pending).
type Profile struct {
	Skills    []model.Tag
	Interests []model.Tag
}

// Score computes an integer compatibility score in [0, 100] between the
// viewer and a request's tags. It is a pure function: no I/O, no error
// conditions. Missing or empty tag lists on either side simply skip the
// affected components, and a nil profile scores 0.
func Score(profile *Profile, tags []model.Tag) int {
	if profile == nil {
		return 0
	}

	requestSlugs := normalizeAll(tags)
	skillSlugs := normalizeAll(profile.Skills)
	interestSlugs := normalizeAll(profile.Interests)
	skills := slugSet(skillSlugs)

	var total, totalWeight float64

	// Skill overlap: fraction of request tags covered by the viewer's skills.
	if len(requestSlugs) > 0 && len(skillSlugs) > 0 {
		overlap := countOverlap(requestSlugs, skills)
		component := float64(overlap) / float64(len(requestSlugs)) * 100
		total += component * skillOverlapWeight
		totalWeight += skillOverlapWeight
	}

	// Interest alignment: same computation over the viewer's interests.
	if len(requestSlugs) > 0 && len(interestSlugs) > 0 {
		overlap := countOverlap(requestSlugs, slugSet(interestSlugs))
		component := float64(overlap) / float64(len(requestSlugs)) * 100
		total += component * interestAlignmentWeight
		totalWeight += interestAlignmentWeight
	}

	// Exact-match bonus. The denominator is the viewer's skill count while
	// the numerator is the request-tag overlap, so small skill sets can
	// exceed 100 before the clamp.
	if len(requestSlugs) > 0 && len(skillSlugs) > 0 {
		exact := countOverlap(requestSlugs, skills)
		component := math.Min(float64(exact)/float64(len(skillSlugs))*100, 100)
		total += component * exactMatchBonusWeight
		totalWeight += exactMatchBonusWeight
	}

	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(total / totalWeight))
}

// Tier maps a score onto the badge tier shown next to a request.
func Tier(score int) string {
	switch {
	case score >= highTierThreshold:
		return "high"
	case score >= mediumTierThreshold:
		return "medium"
	default:
		return "low"
	}
}
