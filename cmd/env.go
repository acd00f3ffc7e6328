package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tripdeck/travelsearch/internal/engine"
	"github.com/tripdeck/travelsearch/internal/flights"
	"github.com/tripdeck/travelsearch/internal/hotels"
	"github.com/tripdeck/travelsearch/internal/store"
	"github.com/tripdeck/travelsearch/pkg/amadeus"
)

// searchEnv bundles the wired services shared by the search commands and
// the server.
type searchEnv struct {
	Flights *flights.Service
	Hotels  *hotels.Service
	Log     *store.SearchLog
}

func (e *searchEnv) Close() {
	if e.Log != nil {
		if err := e.Log.Close(); err != nil {
			zap.L().Warn("close search log", zap.Error(err))
		}
	}
}

// initEnv wires providers, engines and the search log from config. With
// demo set, network providers are replaced by fixed-inventory ones.
func initEnv(ctx context.Context, demo bool, profilePath string) (*searchEnv, error) {
	env := &searchEnv{}

	var recorder engine.Recorder
	if cfg.Store.Path != "" {
		sl, err := store.NewSearchLog(cfg.Store.Path)
		if err != nil {
			return nil, eris.Wrap(err, "open search log")
		}
		if err := sl.Migrate(ctx); err != nil {
			sl.Close()
			return nil, eris.Wrap(err, "migrate search log")
		}
		env.Log = sl
		recorder = sl
	}

	var flightProviders []engine.Provider[flights.SearchRequest, flights.Option]
	var hotelProviders []engine.Provider[hotels.SearchRequest, hotels.Option]

	switch {
	case demo:
		flightProviders = append(flightProviders,
			flights.NewDemoProvider("demo-gds"),
			flights.NewDemoProvider("demo-ota"),
		)
		hotelProviders = append(hotelProviders,
			hotels.NewDemoProvider("demo-gds"),
			hotels.NewDemoProvider("demo-ota"),
		)
	case cfg.Amadeus.ClientID != "":
		client := amadeus.NewClient(cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret,
			amadeus.WithBaseURL(cfg.Amadeus.BaseURL))
		flightProviders = append(flightProviders, flights.NewAmadeusProvider(client, cfg.Amadeus.Currency))
		hotelProviders = append(hotelProviders, hotels.NewAmadeusProvider(client, cfg.Amadeus.Currency))
	default:
		zap.L().Warn("no amadeus credentials configured, searches will return empty results (use --demo for fixed inventory)")
	}

	flightCfg := cfg.Flights.EngineConfig()
	hotelCfg := cfg.Hotels.EngineConfig()

	if profilePath != "" {
		profile, err := engine.LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		flightCfg = profile.Flights.Apply(flightCfg)
		hotelCfg = profile.Hotels.Apply(hotelCfg)
		zap.L().Info("aggregation profile applied", zap.String("path", profilePath))
	}

	env.Flights = flights.NewService(flightCfg, flightProviders, recorder)
	env.Hotels = hotels.NewService(hotelCfg, hotelProviders, recorder)

	return env, nil
}
