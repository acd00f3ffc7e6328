package hotels

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripdeck/travelsearch/internal/model"
)

func money(amount float64) *model.Money {
	return &model.Money{Amount: amount, Currency: "USD"}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hôtel Du Centre", "hotel du centre"},
		{"  HOTEL   du   Centre ", "hotel du centre"},
		{"São João Palace", "sao joao palace"},
		{"Grand Meridian", "grand meridian"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeName(tc.in), "input %q", tc.in)
	}
}

func TestKey_SameHotelAcrossProviders(t *testing.T) {
	d := Domain()
	a := Option{Provider: "gds", Name: "Hôtel Du Centre", Address: "12 Rue De La Paix"}
	b := Option{Provider: "ota", Name: "hotel du centre", Address: "12 rue de la paix"}

	assert.Equal(t, d.Key(a), d.Key(b))
}

func TestKey_FallsBackToCoordinates(t *testing.T) {
	d := Domain()
	a := Option{Name: "Grand Meridian", Location: model.GeoPoint{Lat: 48.85661, Lon: 2.35222}}
	b := Option{Name: "Grand Meridian", Location: model.GeoPoint{Lat: 48.85684, Lon: 2.35210}}
	far := Option{Name: "Grand Meridian", Location: model.GeoPoint{Lat: 48.90112, Lon: 2.35222}}

	// ~25m apart: same coarse bucket.
	assert.Equal(t, d.Key(a), d.Key(b))
	// A few km away: a different property with the same brand name.
	assert.NotEqual(t, d.Key(a), d.Key(far))
}

func TestPrefer_RatingThenPrice(t *testing.T) {
	d := Domain()

	t.Run("higher rating wins", func(t *testing.T) {
		better := Option{Rating: 4.5, Price: money(300)}
		worse := Option{Rating: 4.0, Price: money(100)}
		assert.True(t, d.Prefer(better, worse))
		assert.False(t, d.Prefer(worse, better))
	})

	t.Run("equal rating, cheaper wins", func(t *testing.T) {
		cheap := Option{Rating: 4.0, Price: money(120)}
		steep := Option{Rating: 4.0, Price: money(200)}
		assert.True(t, d.Prefer(cheap, steep))
	})

	t.Run("equal rating and price, closer to center wins", func(t *testing.T) {
		nearKM := 0.5
		farKM := 6.0
		near := Option{Rating: 4.0, Price: money(150), DistanceFromCenterKM: &nearKM}
		far := Option{Rating: 4.0, Price: money(150), DistanceFromCenterKM: &farKM}
		assert.True(t, d.Prefer(near, far))
	})
}

func TestScore_PreferenceBiases(t *testing.T) {
	d := Domain()
	budget := Option{Rating: 3.5, Price: money(80)}
	luxury := Option{Rating: 4.8, Price: money(450)}

	t.Run("cheapest lifts the cheaper stay", func(t *testing.T) {
		assert.InDelta(t, 0.6/80, d.Score(budget, model.PrefCheapest)-d.Score(budget, model.PrefBalanced), 1e-9)
	})

	t.Run("luxury rewards rating and price", func(t *testing.T) {
		luxDelta := d.Score(luxury, model.PrefLuxury) - d.Score(luxury, model.PrefBalanced)
		budgetDelta := d.Score(budget, model.PrefLuxury) - d.Score(budget, model.PrefBalanced)
		assert.Greater(t, luxDelta, budgetDelta)
	})

	t.Run("high-rating scales with rating only", func(t *testing.T) {
		assert.InDelta(t, 0.4*(4.8/5), d.Score(luxury, model.PrefHighRating)-d.Score(luxury, model.PrefBalanced), 1e-9)
	})

	t.Run("balanced equals unrecognized", func(t *testing.T) {
		assert.Equal(t, d.Score(luxury, model.PrefBalanced), d.Score(luxury, model.Preference("ocean-view")))
	})
}

func TestScore_ProximityFalloff(t *testing.T) {
	d := Domain()
	at := func(km float64) Option {
		return Option{Rating: 4.0, Price: money(150), DistanceFromCenterKM: &km}
	}

	center := d.Score(at(0), model.PrefBalanced)
	mid := d.Score(at(5), model.PrefBalanced)
	edge := d.Score(at(10), model.PrefBalanced)
	beyond := d.Score(at(25), model.PrefBalanced)

	assert.Greater(t, center, mid)
	assert.Greater(t, mid, edge)
	assert.Equal(t, edge, beyond, "no proximity term past the falloff radius")
}
