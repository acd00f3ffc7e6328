package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripdeck/travelsearch/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "travelsearch",
	Short: "Concurrent flight and hotel search aggregator",
	Long:  "Fans out searches across flight and hotel providers, retries flaky calls, dedupes equivalent offers and ranks the survivors by traveler preference.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
