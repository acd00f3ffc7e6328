package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripdeck/travelsearch/internal/engine"
	"github.com/tripdeck/travelsearch/internal/flights"
	"github.com/tripdeck/travelsearch/internal/model"
)

var (
	flightsOrigin      string
	flightsDestination string
	flightsDate        string
	flightsReturn      string
	flightsCabin       string
	flightsPref        string
	flightsNonStop     bool
	flightsLimit       int
	flightsDemo        bool
	flightsProfile     string
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Search flights across all configured providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, flightsDemo, flightsProfile)
		if err != nil {
			return err
		}
		defer env.Close()

		req := flights.SearchRequest{
			Origin:        flightsOrigin,
			Destination:   flightsDestination,
			DepartureDate: flightsDate,
			ReturnDate:    flightsReturn,
			CabinClass:    flightsCabin,
			Preference:    model.Preference(flightsPref),
			NonStopOnly:   flightsNonStop,
			Limit:         flightsLimit,
		}

		results := env.Flights.Search(ctx, req, func(snap engine.Snapshot[flights.Option]) {
			if snap.Status == model.StatusTentative {
				zap.L().Info("tentative results ready", zap.Int("count", len(snap.Items)))
			}
		})

		zap.L().Info("flight search complete",
			zap.String("route", flightsOrigin+"-"+flightsDestination),
			zap.Int("results", len(results)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	flightsCmd.Flags().StringVar(&flightsOrigin, "origin", "", "origin airport IATA code (required)")
	flightsCmd.Flags().StringVar(&flightsDestination, "destination", "", "destination airport IATA code (required)")
	flightsCmd.Flags().StringVar(&flightsDate, "date", "", "departure date YYYY-MM-DD (required)")
	flightsCmd.Flags().StringVar(&flightsReturn, "return", "", "return date YYYY-MM-DD for round trips")
	flightsCmd.Flags().StringVar(&flightsCabin, "cabin", "", "cabin class (ECONOMY, BUSINESS, ...)")
	flightsCmd.Flags().StringVar(&flightsPref, "pref", "balanced", "ranking preference: cheapest, non-stop, comfort or balanced")
	flightsCmd.Flags().BoolVar(&flightsNonStop, "non-stop", false, "only return non-stop flights")
	flightsCmd.Flags().IntVar(&flightsLimit, "limit", 0, "max results (default from config)")
	flightsCmd.Flags().BoolVar(&flightsDemo, "demo", false, "use fixed demo inventory instead of live providers")
	flightsCmd.Flags().StringVar(&flightsProfile, "profile", "", "aggregation profile YAML overriding round settings")
	_ = flightsCmd.MarkFlagRequired("origin")
	_ = flightsCmd.MarkFlagRequired("destination")
	_ = flightsCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(flightsCmd)
}
