package match

import (
	"testing"

	"github.com/connecthq/connect/internal/model"
	"github.com/stretchr/testify/assert"
)

func tags(slugs ...string) []model.Tag {
	out := make([]model.Tag, 0, len(slugs))
	for _, s := range slugs {
		out = append(out, model.Tag{Label: s, Slug: s})
	}
	return out
}

func TestScore_NilProfile(t *testing.T) {
	assert.Equal(t, 0, Score(nil, tags("bio", "ml")))
}

func TestScore_EmptyProfile(t *testing.T) {
	profile := &Profile{}
	assert.Equal(t, 0, Score(profile, tags("bio", "ml")))
}

func TestScore_EmptyRequestTags(t *testing.T) {
	profile := &Profile{
		Skills:    tags("bio", "ml"),
		Interests: tags("ai"),
	}
	assert.Equal(t, 0, Score(profile, nil))
	assert.Equal(t, 0, Score(profile, []model.Tag{}))
}

func TestScore_SkillOverlapOnly(t *testing.T) {
	// Skills cover 1 of 2 request tags, no interests: the skill component
	// is (1/2)*100 = 50 with weight 0.5, the bonus is min(1/2*100,100) = 50
	// with weight 0.2, so the score is (50*0.5 + 50*0.2) / 0.7 = 50.
	profile := &Profile{Skills: tags("bio", "ml")}
	score := Score(profile, tags("bio", "ai"))
	assert.Equal(t, 50, score)
}

func TestScore_FullOverlapCeiling(t *testing.T) {
	// Request tags fully covered by the skills: skill component 100
	// (weight 0.5) and bonus 2/2*100 = 100 (weight 0.2) average to 100.
	profile := &Profile{Skills: tags("bio", "ai")}
	assert.Equal(t, 100, Score(profile, tags("bio", "ai")))
}

func TestScore_AllComponents(t *testing.T) {
	// Skills, interests, and tags all identical: every component is 100,
	// total weight 1.0, score 100.
	profile := &Profile{
		Skills:    tags("bio"),
		Interests: tags("bio"),
	}
	assert.Equal(t, 100, Score(profile, tags("bio")))
}

func TestScore_InterestsOnly(t *testing.T) {
	// No skills means the skill and bonus components are skipped; the
	// interest component alone decides the score.
	profile := &Profile{Interests: tags("bio", "ai")}
	assert.Equal(t, 50, Score(profile, tags("bio", "math")))
}

func TestScore_CaseInsensitive(t *testing.T) {
	profile := &Profile{Skills: []model.Tag{{Label: "Python", Slug: "python"}}}
	score := Score(profile, []model.Tag{{Label: "Python", Slug: "Python"}})
	assert.Equal(t, 100, score)
}

func TestScore_EmptySlugsNeverMatch(t *testing.T) {
	profile := &Profile{Skills: []model.Tag{{Label: "Mystery"}}}
	score := Score(profile, []model.Tag{{Label: "Unknown"}})
	assert.Equal(t, 0, score)
}

func TestScore_BonusClampedAt100(t *testing.T) {
	// The duplicated tag matches twice against a single skill, so the
	// bonus numerator (2) exceeds the skill count (1) and the component
	// clamps at 100 instead of 200.
	profile := &Profile{Skills: tags("bio")}
	score := Score(profile, tags("bio", "bio", "ai"))
	// skill: 2/3*100 = 66.67 (w 0.5), bonus: min(200, 100) (w 0.2)
	// (33.33 + 20) / 0.7 = 76.19 -> 76
	assert.Equal(t, 76, score)
}

func TestScore_Range(t *testing.T) {
	profiles := []*Profile{
		nil,
		{},
		{Skills: tags("a")},
		{Skills: tags("a", "b", "c"), Interests: tags("x")},
		{Skills: tags("a"), Interests: tags("a", "b")},
	}
	requestTags := [][]model.Tag{
		nil,
		tags("a"),
		tags("a", "b"),
		tags("x", "y", "z"),
		tags("a", "a", "a", "a"),
	}
	for _, p := range profiles {
		for _, rt := range requestTags {
			score := Score(p, rt)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	profile := &Profile{
		Skills:    tags("bio", "ml", "web"),
		Interests: tags("ai", "math"),
	}
	request := tags("bio", "ai", "design")
	first := Score(profile, request)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(profile, request))
	}
}

func TestScore_WeightedScenario(t *testing.T) {
	// Skills match 1/2 tags (component 50, weight 0.5), interests match
	// 2/2 (component 100, weight 0.3), bonus min(1/2*100,100)=50
	// (weight 0.2): (25 + 30 + 10) / 1.0 = 65.
	profile := &Profile{
		Skills:    tags("bio", "chem"),
		Interests: tags("bio", "ai"),
	}
	assert.Equal(t, 65, Score(profile, tags("bio", "ai")))
}

func TestTier(t *testing.T) {
	assert.Equal(t, "high", Tier(100))
	assert.Equal(t, "high", Tier(70))
	assert.Equal(t, "medium", Tier(69))
	assert.Equal(t, "medium", Tier(40))
	assert.Equal(t, "low", Tier(39))
	assert.Equal(t, "low", Tier(0))
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "python", NormalizeSlug(model.Tag{Slug: "Python"}))
	assert.Equal(t, "machine-learning", NormalizeSlug(model.Tag{Slug: " Machine-Learning "}))
	assert.Equal(t, "", NormalizeSlug(model.Tag{Label: "No Slug"}))
}
