package flights

import (
	"math"
	"strconv"
	"strings"

	"github.com/tripdeck/travelsearch/internal/model"
)

// Base score weights. Design constants, not user-tunable.
const (
	weightPrice      = 0.60
	weightDirectness = 0.25
	weightDuration   = 0.15
)

// adapter implements engine.Domain for flight options.
type adapter struct{}

// Domain returns the flight domain adapter for the aggregation engine.
func Domain() adapter { return adapter{} }

// Key builds the real-world flight identity:
// (carrier, flight number, departure date, origin, destination).
func (adapter) Key(o Option) string {
	return strings.Join([]string{
		strings.ToUpper(strings.TrimSpace(o.CarrierCode)),
		strings.TrimSpace(o.FlightNumber),
		o.DepartureDate,
		strings.ToUpper(strings.TrimSpace(o.Origin)),
		strings.ToUpper(strings.TrimSpace(o.Destination)),
	}, "|")
}

// Prefer keeps the strictly cheaper listing when both prices are known;
// with equal or unknown prices the higher pre-bias score wins.
func (adapter) Prefer(candidate, incumbent Option) bool {
	if candidate.Price != nil && incumbent.Price != nil &&
		candidate.Price.Amount != incumbent.Price.Amount {
		return candidate.Price.Amount < incumbent.Price.Amount
	}
	return baseScore(candidate) > baseScore(incumbent)
}

// Score is the neutral base score plus the preference bias.
func (adapter) Score(o Option, pref model.Preference) float64 {
	return applyBias(baseScore(o), o, pref)
}

func (adapter) Annotate(o Option, score float64) Option {
	o.Score = score
	return o
}

// baseScore combines price (cheaper is better), directness (non-stop
// strongly favored) and a rough duration term. Higher is better.
func baseScore(o Option) float64 {
	price := 0.0
	if o.Price != nil && o.Price.Amount > 0 {
		price = 1.0 / o.Price.Amount
	}

	directness := 0.5 / math.Max(float64(o.Stops), 1)
	if o.Stops == 0 {
		directness = 1.0
	}

	duration := 0.0
	if h := durationHours(o.Duration); h > 0 {
		duration = 1.0 / h
	}

	return weightPrice*price + weightDirectness*directness + weightDuration*duration
}

func applyBias(score float64, o Option, pref model.Preference) float64 {
	switch pref.Normalize() {
	case model.PrefCheapest:
		if o.Price != nil && o.Price.Amount > 0 {
			score += 0.5 / o.Price.Amount
		}
	case model.PrefNonStop:
		if o.Stops == 0 {
			score += 0.3
		}
	case model.PrefComfort:
		// Penalize many stops; higher price loosely tracks comfort.
		score += 0.2 * math.Max(0, float64(2-o.Stops))
		if o.Price != nil && o.Price.Amount > 0 {
			score += 0.2 / math.Pow(o.Price.Amount, 0.3)
		}
	}
	// Balanced or unrecognized: no bias.
	return score
}

// durationHours extracts a rough hour count from either an ISO 8601
// duration ("PT5H30M") or a loose human form ("5h 30m"). Returns 0 when no
// hour figure can be found.
func durationHours(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	h := strings.Index(s, "h")
	if h < 0 {
		return 0
	}

	// Trailing numeric run before the 'h'.
	start := h
	for start > 0 {
		c := s[start-1]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		start--
	}
	if start == h {
		return 0
	}
	hours, err := strconv.ParseFloat(s[start:h], 64)
	if err != nil {
		return 0
	}

	// Optional minutes between 'h' and a following 'm'.
	if m := strings.Index(s[h:], "m"); m > 0 {
		minPart := strings.TrimSpace(s[h+1 : h+m])
		if mins, err := strconv.ParseFloat(minPart, 64); err == nil && mins > 0 {
			hours += mins / 60.0
		}
	}
	return hours
}
