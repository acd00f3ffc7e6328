// Package flights concretizes the aggregation engine for flight search:
// request/option types, the identity/tie-break/scoring adapter and the
// provider implementations.
package flights

import (
	"fmt"
	"strings"

	"github.com/tripdeck/travelsearch/internal/model"
)

// SearchRequest describes one flight query. Dates are ISO "YYYY-MM-DD".
type SearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`

	// CabinClass is e.g. "economy" or "business".
	CabinClass string `json:"cabin_class,omitempty"`

	// Preference is a single dominant user hint: cheapest, non-stop,
	// comfort or balanced.
	Preference model.Preference `json:"preference,omitempty"`

	NonStopOnly bool `json:"non_stop_only,omitempty"`

	// Limit is clamped server-side to [1, max_results]; callers can never
	// exceed the cap.
	Limit int `json:"limit,omitempty"`
}

// ResultLimit implements engine.Request.
func (r SearchRequest) ResultLimit() int { return r.Limit }

// Pref implements engine.Request.
func (r SearchRequest) Pref() model.Preference { return r.Preference }

// CacheKey implements engine.Request. Every field that affects results is
// included, preference and filters too, so biased result sets never leak
// across differently-biased requests.
func (r SearchRequest) CacheKey() string {
	nonStop := 0
	if r.NonStopOnly {
		nonStop = 1
	}
	return strings.Join([]string{
		"flights",
		strings.ToUpper(strings.TrimSpace(r.Origin)),
		strings.ToUpper(strings.TrimSpace(r.Destination)),
		r.DepartureDate,
		r.ReturnDate,
		strings.ToLower(strings.TrimSpace(r.CabinClass)),
		string(r.Preference.Normalize()),
		fmt.Sprintf("nonstop:%d", nonStop),
	}, "|")
}

// Option is a normalized flight offer from one provider.
type Option struct {
	ID       string       `json:"id"`
	Provider string       `json:"provider"`
	Price    *model.Money `json:"price,omitempty"`

	FareClass string `json:"fare_class,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Stops     int    `json:"stops"`

	// Identity fields for dedup. Any of them may be missing; incomplete
	// options degrade to coarser grouping instead of being dropped.
	CarrierCode   string `json:"carrier_code,omitempty"`
	FlightNumber  string `json:"flight_number,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`

	// Score is the ranker's annotation for the current pass. Providers
	// never set it and it is never serialized.
	Score float64 `json:"-"`
}
