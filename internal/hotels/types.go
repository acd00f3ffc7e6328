// Package hotels concretizes the aggregation engine for hotel search.
package hotels

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tripdeck/travelsearch/internal/model"
)

// SearchRequest describes one hotel query. Either Destination (a city or
// area code) or a coordinate pair must be set. Dates are ISO "YYYY-MM-DD".
type SearchRequest struct {
	Destination string   `json:"destination,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`

	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`

	// Preference: cheapest, luxury, high-rating or balanced.
	Preference model.Preference `json:"preference,omitempty"`

	// Hard filters, applied only when present.
	MinRating        float64  `json:"min_rating,omitempty"`
	StarRatingOnly   int      `json:"star_rating_only,omitempty"`
	AmenitiesMust    []string `json:"amenities_must_have,omitempty"`
	PetsAllowedOnly  bool     `json:"pets_allowed_only,omitempty"`

	// Limit is clamped server-side to [1, max_results].
	Limit int `json:"limit,omitempty"`
}

// ResultLimit implements engine.Request.
func (r SearchRequest) ResultLimit() int { return r.Limit }

// Pref implements engine.Request.
func (r SearchRequest) Pref() model.Preference { return r.Preference }

// CacheKey implements engine.Request: coordinates rounded to a fixed
// precision, amenities sorted, preference and every filter included.
func (r SearchRequest) CacheKey() string {
	lat, lon := 0.0, 0.0
	if r.Lat != nil {
		lat = *r.Lat
	}
	if r.Lon != nil {
		lon = *r.Lon
	}

	amenities := make([]string, len(r.AmenitiesMust))
	for i, a := range r.AmenitiesMust {
		amenities[i] = strings.ToLower(strings.TrimSpace(a))
	}
	sort.Strings(amenities)

	pets := 0
	if r.PetsAllowedOnly {
		pets = 1
	}

	return strings.Join([]string{
		"hotels",
		strings.ToLower(strings.TrimSpace(r.Destination)),
		fmt.Sprintf("lat:%.3f", lat),
		fmt.Sprintf("lon:%.3f", lon),
		r.CheckinDate,
		r.CheckoutDate,
		string(r.Preference.Normalize()),
		fmt.Sprintf("min_rating:%g", r.MinRating),
		fmt.Sprintf("stars:%d", r.StarRatingOnly),
		fmt.Sprintf("pets:%d", pets),
		"amenities:" + strings.Join(amenities, ","),
	}, "|")
}

// StayTimes holds check-in/check-out info when a provider supplies it.
type StayTimes struct {
	Checkin  string `json:"checkin,omitempty"`
	Checkout string `json:"checkout,omitempty"`
}

// Option is a normalized hotel offer from one provider. Price may be
// legitimately absent: a provider can confirm a property exists without
// pricing it, and such partial options flow through dedup and ranking.
type Option struct {
	ID       string       `json:"id"`
	Provider string       `json:"provider"`
	Price    *model.Money `json:"price,omitempty"`

	Rating    float64        `json:"rating"`
	Amenities []string       `json:"amenities,omitempty"`
	Location  model.GeoPoint `json:"location"`
	Stay      *StayTimes     `json:"checkin_checkout_times,omitempty"`

	// Identity fields for dedup.
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`

	DistanceFromCenterKM *float64 `json:"distance_from_center_km,omitempty"`

	// Score is the ranker's annotation for the current pass. Providers
	// never set it and it is never serialized.
	Score float64 `json:"-"`
}
