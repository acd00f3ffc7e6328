package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/tripdeck/travelsearch/internal/store"
)

var (
	historyDomain string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent search rounds from the search log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Store.Path == "" {
			return eris.New("search history is disabled (store.path is empty)")
		}

		sl, err := store.NewSearchLog(cfg.Store.Path)
		if err != nil {
			return eris.Wrap(err, "open search log")
		}
		defer sl.Close()

		if err := sl.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate search log")
		}

		rounds, err := sl.ListRounds(ctx, historyDomain, historyLimit)
		if err != nil {
			return eris.Wrap(err, "list rounds")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rounds)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDomain, "domain", "", "filter by domain (flights or hotels)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max rounds to show")
	rootCmd.AddCommand(historyCmd)
}
