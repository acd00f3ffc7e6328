package flights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripdeck/travelsearch/internal/model"
)

func money(amount float64) *model.Money {
	return &model.Money{Amount: amount, Currency: "USD"}
}

func TestKey_SameFlightFromDifferentProviders(t *testing.T) {
	a := Option{
		Provider:      "gds-a",
		CarrierCode:   "dl",
		FlightNumber:  "402",
		DepartureDate: "2026-09-14",
		Origin:        "jfk",
		Destination:   "cdg",
		Price:         money(410),
	}
	b := Option{
		Provider:      "ota-b",
		CarrierCode:   " DL ",
		FlightNumber:  "402",
		DepartureDate: "2026-09-14",
		Origin:        "JFK",
		Destination:   "CDG",
		Price:         money(385),
	}

	d := Domain()
	assert.Equal(t, d.Key(a), d.Key(b), "provider identity must not affect the key")
	assert.Equal(t, "DL|402|2026-09-14|JFK|CDG", d.Key(a))
}

func TestKey_DifferentDatesDiffer(t *testing.T) {
	d := Domain()
	a := Option{CarrierCode: "DL", FlightNumber: "402", DepartureDate: "2026-09-14", Origin: "JFK", Destination: "CDG"}
	b := a
	b.DepartureDate = "2026-09-15"
	assert.NotEqual(t, d.Key(a), d.Key(b))
}

func TestPrefer_CheaperListingWins(t *testing.T) {
	d := Domain()
	cheap := Option{Price: money(300), Stops: 1}
	steep := Option{Price: money(450), Stops: 0}

	assert.True(t, d.Prefer(cheap, steep))
	assert.False(t, d.Prefer(steep, cheap))
}

func TestPrefer_UnknownPriceFallsBackToScore(t *testing.T) {
	d := Domain()
	nonstop := Option{Stops: 0, Duration: "PT6H"}
	twoStop := Option{Stops: 2, Duration: "PT11H"}

	assert.True(t, d.Prefer(nonstop, twoStop))
}

func TestScore_PreferenceBiases(t *testing.T) {
	d := Domain()
	nonstop := Option{Price: money(400), Stops: 0, Duration: "PT6H"}
	oneStop := Option{Price: money(250), Stops: 1, Duration: "PT9H"}

	t.Run("cheapest lifts the cheaper fare", func(t *testing.T) {
		delta := d.Score(oneStop, model.PrefCheapest) - d.Score(oneStop, model.PrefBalanced)
		assert.InDelta(t, 0.5/250, delta, 1e-9)
	})

	t.Run("non-stop lifts only direct flights", func(t *testing.T) {
		assert.InDelta(t, 0.3, d.Score(nonstop, model.PrefNonStop)-d.Score(nonstop, model.PrefBalanced), 1e-9)
		assert.InDelta(t, 0, d.Score(oneStop, model.PrefNonStop)-d.Score(oneStop, model.PrefBalanced), 1e-9)
	})

	t.Run("comfort rewards fewer stops", func(t *testing.T) {
		comfortNonstop := d.Score(nonstop, model.PrefComfort) - d.Score(nonstop, model.PrefBalanced)
		comfortOneStop := d.Score(oneStop, model.PrefComfort) - d.Score(oneStop, model.PrefBalanced)
		assert.Greater(t, comfortNonstop, comfortOneStop)
	})

	t.Run("balanced equals unrecognized", func(t *testing.T) {
		assert.Equal(t, d.Score(nonstop, model.PrefBalanced), d.Score(nonstop, model.Preference("aisle-seat")))
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		assert.Equal(t,
			d.Score(nonstop, model.PrefNonStop),
			d.Score(nonstop, model.Preference("  Non-Stop ")),
		)
	})
}

func TestAnnotate_SetsScore(t *testing.T) {
	d := Domain()
	o := d.Annotate(Option{}, 0.42)
	assert.Equal(t, 0.42, o.Score)
}

func TestDurationHours(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"PT5H30M", 5.5},
		{"PT6H", 6},
		{"5h 30m", 5.5},
		{"2h", 2},
		{"PT45M", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.InDelta(t, tc.want, durationHours(tc.in), 1e-9)
		})
	}
}
