package flights

import (
	"context"

	"github.com/tripdeck/travelsearch/internal/engine"
)

// DefaultTolerated lists provider error fragments that mean "no inventory
// for this query", not a malfunction.
var DefaultTolerated = []string{
	"NO FLIGHT OFFERS",
	"NO FARES",
	"INVALID OR MISSING DATA",
}

// Service is the public flight-search entry point.
type Service struct {
	eng *engine.Engine[SearchRequest, Option]
}

// NewService builds the flight aggregation service over the given
// providers. Zero providers is valid and yields empty results.
func NewService(cfg engine.Config, providers []engine.Provider[SearchRequest, Option], recorder engine.Recorder) *Service {
	cfg.Domain = "flights"
	if cfg.Tolerated == nil {
		cfg.Tolerated = DefaultTolerated
	}

	wrapped := make([]engine.Provider[SearchRequest, Option], len(providers))
	for i, p := range providers {
		wrapped[i] = filtered{p}
	}

	return &Service{eng: engine.New(cfg, Domain(), wrapped, recorder)}
}

// Search returns the final deduplicated, ranked, limit-capped flight list.
// It never returns an error, even if every provider failed or timed out.
func (s *Service) Search(ctx context.Context, req SearchRequest, onPartial engine.PartialFunc[Option]) []Option {
	return s.eng.Search(ctx, req, onPartial)
}

// filtered enforces request hard filters on whatever a provider returns,
// so providers that ignore filter hints still produce conforming items.
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
	if !req.NonStopOnly {
		return items
	}
	out := items[:0:0]
	for _, o := range items {
		if o.Stops == 0 {
			out = append(out, o)
		}
	}
	return out
}
