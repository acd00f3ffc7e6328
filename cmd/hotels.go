package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripdeck/travelsearch/internal/engine"
	"github.com/tripdeck/travelsearch/internal/hotels"
	"github.com/tripdeck/travelsearch/internal/model"
)

var (
	hotelsDestination string
	hotelsLat         float64
	hotelsLon         float64
	hotelsCheckin     string
	hotelsCheckout    string
	hotelsPref        string
	hotelsMinRating   float64
	hotelsStars       int
	hotelsAmenities   []string
	hotelsPets        bool
	hotelsLimit       int
	hotelsDemo        bool
	hotelsProfile     string
)

var hotelsCmd = &cobra.Command{
	Use:   "hotels",
	Short: "Search hotels across all configured providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, hotelsDemo, hotelsProfile)
		if err != nil {
			return err
		}
		defer env.Close()

		req := hotels.SearchRequest{
			Destination:     hotelsDestination,
			CheckinDate:     hotelsCheckin,
			CheckoutDate:    hotelsCheckout,
			Preference:      model.Preference(hotelsPref),
			MinRating:       hotelsMinRating,
			StarRatingOnly:  hotelsStars,
			AmenitiesMust:   hotelsAmenities,
			PetsAllowedOnly: hotelsPets,
			Limit:           hotelsLimit,
		}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
			req.Lat = &hotelsLat
			req.Lon = &hotelsLon
		}

		results := env.Hotels.Search(ctx, req, func(snap engine.Snapshot[hotels.Option]) {
			if snap.Status == model.StatusTentative {
				zap.L().Info("tentative results ready", zap.Int("count", len(snap.Items)))
			}
		})

		zap.L().Info("hotel search complete",
			zap.String("destination", hotelsDestination),
			zap.Int("results", len(results)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	hotelsCmd.Flags().StringVar(&hotelsDestination, "destination", "", "destination city code (required)")
	hotelsCmd.Flags().Float64Var(&hotelsLat, "lat", 0, "search center latitude")
	hotelsCmd.Flags().Float64Var(&hotelsLon, "lon", 0, "search center longitude")
	hotelsCmd.Flags().StringVar(&hotelsCheckin, "checkin", "", "check-in date YYYY-MM-DD (required)")
	hotelsCmd.Flags().StringVar(&hotelsCheckout, "checkout", "", "check-out date YYYY-MM-DD (required)")
	hotelsCmd.Flags().StringVar(&hotelsPref, "pref", "balanced", "ranking preference: cheapest, luxury, high-rating or balanced")
	hotelsCmd.Flags().Float64Var(&hotelsMinRating, "min-rating", 0, "drop hotels rated below this")
	hotelsCmd.Flags().IntVar(&hotelsStars, "stars", 0, "only hotels with exactly this star rating")
	hotelsCmd.Flags().StringSliceVar(&hotelsAmenities, "amenities", nil, "amenities every result must have")
	hotelsCmd.Flags().BoolVar(&hotelsPets, "pets", false, "only pet-friendly hotels")
	hotelsCmd.Flags().IntVar(&hotelsLimit, "limit", 0, "max results (default from config)")
	hotelsCmd.Flags().BoolVar(&hotelsDemo, "demo", false, "use fixed demo inventory instead of live providers")
	hotelsCmd.Flags().StringVar(&hotelsProfile, "profile", "", "aggregation profile YAML overriding round settings")
	_ = hotelsCmd.MarkFlagRequired("destination")
	_ = hotelsCmd.MarkFlagRequired("checkin")
	_ = hotelsCmd.MarkFlagRequired("checkout")
	rootCmd.AddCommand(hotelsCmd)
}
