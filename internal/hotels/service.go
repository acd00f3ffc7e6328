package hotels

import (
	"context"
	"strings"

	"github.com/tripdeck/travelsearch/internal/engine"
)

// DefaultTolerated lists provider error fragments that mean "no inventory
// for this query", not a malfunction.
var DefaultTolerated = []string{
	"NO ROOMS",
	"NO ROOMS AVAILABLE",
	"INVALID PROPERTY",
	"INVALID PROPERTY CODE",
	"INVALID OR MISSING DATA",
}

var petKeywords = []string{"pet friendly", "pets allowed", "pet-friendly"}

// Service is the public hotel-search entry point.
type Service struct {
	eng *engine.Engine[SearchRequest, Option]
}

// NewService builds the hotel aggregation service over the given providers.
func NewService(cfg engine.Config, providers []engine.Provider[SearchRequest, Option], recorder engine.Recorder) *Service {
	cfg.Domain = "hotels"
	if cfg.Tolerated == nil {
		cfg.Tolerated = DefaultTolerated
	}

	wrapped := make([]engine.Provider[SearchRequest, Option], len(providers))
	for i, p := range providers {
		wrapped[i] = filtered{p}
	}

	return &Service{eng: engine.New(cfg, Domain(), wrapped, recorder)}
}

// Search returns the final deduplicated, ranked, limit-capped hotel list.
// It never returns an error, even if every provider failed or timed out.
func (s *Service) Search(ctx context.Context, req SearchRequest, onPartial engine.PartialFunc[Option]) []Option {
	return s.eng.Search(ctx, req, onPartial)
}

// filtered enforces request hard filters on whatever a provider returns.
type filtered struct {
	p engine.Provider[SearchRequest, Option]
}

func (f filtered) Name() string { return f.p.Name() }

func (f filtered) Search(ctx context.Context, req SearchRequest) ([]Option, error) {
	items, err := f.p.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	return applyFilters(req, items), nil
}

func applyFilters(req SearchRequest, items []Option) []Option {
	if req.MinRating <= 0 && req.StarRatingOnly <= 0 &&
		len(req.AmenitiesMust) == 0 && !req.PetsAllowedOnly {
		return items
	}

	out := items[:0:0]
	for _, o := range items {
		if req.MinRating > 0 && o.Rating < req.MinRating {
			continue
		}
		if req.StarRatingOnly > 0 && int(o.Rating) != req.StarRatingOnly {
			continue
		}
		if len(req.AmenitiesMust) > 0 && !hasAllAmenities(o.Amenities, req.AmenitiesMust) {
			continue
		}
		if req.PetsAllowedOnly && !petsAllowed(o.Amenities) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func hasAllAmenities(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, a := range have {
		set[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[strings.ToLower(strings.TrimSpace(w))]; !ok {
			return false
		}
	}
	return true
}

func petsAllowed(amenities []string) bool {
	for _, a := range amenities {
		lowered := strings.ToLower(a)
		for _, k := range petKeywords {
			if strings.Contains(lowered, k) {
				return true
			}
		}
	}
	return false
}
