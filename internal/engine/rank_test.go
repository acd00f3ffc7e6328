package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdeck/travelsearch/internal/model"
)

func TestRank_OrdersBestFirstAndAnnotates(t *testing.T) {
	in := []fare{
		{key: "mid", price: 200},
		{key: "cheap", price: 100},
		{key: "steep", price: 400},
	}

	out := rank[fare](fareDomain{}, in, model.PrefBalanced)

	require.Len(t, out, 3)
	assert.Equal(t, "cheap", out[0].key)
	assert.Equal(t, "mid", out[1].key)
	assert.Equal(t, "steep", out[2].key)

	for _, f := range out {
		assert.NotZero(t, f.score, "every ranked item carries its score")
	}
}

func TestRank_DeterministicForFixedInput(t *testing.T) {
	in := []fare{
		{key: "a", price: 100},
		{key: "b", price: 100}, // equal score: input order must hold
		{key: "c", price: 50},
	}

	first := rank[fare](fareDomain{}, in, model.PrefBalanced)
	second := rank[fare](fareDomain{}, in, model.PrefBalanced)

	assert.Equal(t, first, second)
	assert.Equal(t, "a", first[1].key)
	assert.Equal(t, "b", first[2].key)
}

func TestRank_PreferenceChangesScores(t *testing.T) {
	in := []fare{{key: "a", price: 100}}

	balanced := rank[fare](fareDomain{}, in, model.PrefBalanced)
	cheapest := rank[fare](fareDomain{}, in, model.PrefCheapest)

	assert.Greater(t, cheapest[0].score, balanced[0].score)
}

func TestRank_UnknownPreferenceMatchesBalanced(t *testing.T) {
	in := []fare{
		{key: "a", price: 100},
		{key: "b", price: 200},
	}

	balanced := rank[fare](fareDomain{}, in, model.PrefBalanced)
	unknown := rank[fare](fareDomain{}, in, model.Preference("window-seats-only"))

	assert.Equal(t, balanced, unknown)
}
