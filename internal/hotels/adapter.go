package hotels

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tripdeck/travelsearch/internal/model"
)

// Base score weights. Design constants, not user-tunable.
const (
	weightRating    = 0.50
	weightPrice     = 0.30
	weightProximity = 0.20
)

// proximityFalloffKM is where the distance-from-center bonus reaches zero.
const proximityFalloffKM = 10.0

// adapter implements engine.Domain for hotel options.
type adapter struct{}

// Domain returns the hotel domain adapter for the aggregation engine.
func Domain() adapter { return adapter{} }

// Key prefers normalized (name, address); when the address is missing it
// falls back to a coarse geographic bucket so near-identical listings from
// different providers still group together.
func (adapter) Key(o Option) string {
	name := normalizeName(o.Name)
	address := normalizeName(o.Address)

	if name != "" && address != "" {
		return name + "|" + address
	}
	return fmt.Sprintf("%s|%.3f|%.3f", name, o.Location.Lat, o.Location.Lon)
}

// Prefer keeps the strictly higher-rated listing; with equal ratings the
// strictly cheaper known price wins, then the higher pre-bias score.
func (adapter) Prefer(candidate, incumbent Option) bool {
	if candidate.Rating != incumbent.Rating {
		return candidate.Rating > incumbent.Rating
	}
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

// baseScore combines rating, price (cheaper is better) and proximity to
// center (linear falloff, nothing beyond ~10km). Higher is better.
func baseScore(o Option) float64 {
	rating := o.Rating / 5.0

	price := 0.0
	if o.Price != nil && o.Price.Amount > 0 {
		price = 1.0 / o.Price.Amount
	}

	proximity := 0.0
	if o.DistanceFromCenterKM != nil {
		proximity = math.Max(0, 1.0-*o.DistanceFromCenterKM/proximityFalloffKM)
	}

	return weightRating*rating + weightPrice*price + weightProximity*proximity
}

func applyBias(score float64, o Option, pref model.Preference) float64 {
	switch pref.Normalize() {
	case model.PrefCheapest:
		if o.Price != nil && o.Price.Amount > 0 {
			score += 0.6 / o.Price.Amount
		}
	case model.PrefLuxury:
		// Reward rating and do not penalize a higher price.
		score += 0.3 * (o.Rating / 5.0)
		if o.Price != nil && o.Price.Amount > 0 {
			score += 0.2 * math.Pow(o.Price.Amount, 0.3)
		}
	case model.PrefHighRating:
		score += 0.4 * (o.Rating / 5.0)
	}
	// Balanced or unrecognized: no bias.
	return score
}

// nameNormalizer strips diacritics so "Hôtel Du Centre" and "Hotel du
// Centre" produce the same identity key.
var nameNormalizer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(nameNormalizer, s); err == nil {
		s = folded
	}
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
