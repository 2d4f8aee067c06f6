package match

import (
	"testing"

	"github.com/connecthq/connect/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRank_SortsDescending(t *testing.T) {
	profile := &Profile{Skills: tags("bio", "ml")}
	requests := []model.Request{
		{ID: 1, Title: "No overlap", Tags: tags("design")},
		{ID: 2, Title: "Full overlap", Tags: tags("bio", "ml")},
		{ID: 3, Title: "Partial overlap", Tags: tags("bio", "art")},
	}

	ranked := Rank(profile, requests)

	assert.Equal(t, []int{2, 3, 1}, []int{ranked[0].ID, ranked[1].ID, ranked[2].ID})
	assert.Equal(t, 100, ranked[0].MatchScore)
	assert.Equal(t, 0, ranked[2].MatchScore)
}

func TestRank_StableOnTies(t *testing.T) {
	profile := &Profile{Skills: tags("bio")}
	requests := []model.Request{
		{ID: 1, Tags: tags("bio", "x")},
		{ID: 2, Tags: tags("bio", "y")},
		{ID: 3, Tags: tags("bio", "z")},
	}

	ranked := Rank(profile, requests)

	assert.Equal(t, ranked[0].MatchScore, ranked[1].MatchScore)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestRank_NilProfileKeepsFetchOrder(t *testing.T) {
	requests := []model.Request{
		{ID: 4, Tags: tags("bio")},
		{ID: 5, Tags: tags("ml")},
		{ID: 6},
	}

	ranked := Rank(nil, requests)

	assert.Len(t, ranked, 3)
	for i, r := range ranked {
		assert.Equal(t, requests[i].ID, r.ID)
		assert.Equal(t, 0, r.MatchScore)
		assert.Equal(t, "low", r.MatchTier)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	profile := &Profile{Skills: tags("bio")}
	requests := []model.Request{
		{ID: 1, Tags: tags("x")},
		{ID: 2, Tags: tags("bio")},
	}

	_ = Rank(profile, requests)

	assert.Equal(t, 0, requests[0].MatchScore)
	assert.Equal(t, 0, requests[1].MatchScore)
	assert.Equal(t, 1, requests[0].ID)
	assert.Equal(t, 2, requests[1].ID)
}

func TestRank_Idempotent(t *testing.T) {
	profile := &Profile{
		Skills:    tags("bio", "ml"),
		Interests: tags("ai"),
	}
	requests := []model.Request{
		{ID: 1, Tags: tags("ai", "web")},
		{ID: 2, Tags: tags("bio", "ml")},
		{ID: 3, Tags: tags("design")},
		{ID: 4, Tags: tags("bio")},
	}

	first := Rank(profile, requests)
	second := Rank(profile, requests)

	assert.Equal(t, first, second)
}

func TestRank_EmptyInput(t *testing.T) {
	assert.Empty(t, Rank(&Profile{Skills: tags("bio")}, nil))
	assert.Empty(t, Rank(nil, []model.Request{}))
}

func TestRank_SetsTiers(t *testing.T) {
	profile := &Profile{Skills: tags("bio", "ml")}
	requests := []model.Request{
		{ID: 1, Tags: tags("bio", "ml")},        // 100 -> high
		{ID: 2, Tags: tags("bio", "x")},         // 64 -> medium
		{ID: 3, Tags: tags("a", "b", "c", "d")}, // 0 -> low
	}

	ranked := Rank(profile, requests)

	assert.Equal(t, "high", ranked[0].MatchTier)
	assert.Equal(t, "medium", ranked[1].MatchTier)
	assert.Equal(t, "low", ranked[2].MatchTier)
}
