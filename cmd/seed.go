package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farewatch/farewatch-cli/internal/seed"
)

var seedDays int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Inject synthetic price history for all configured routes",
	Long:  "Writes a run of plausible daily snapshots per route so the analyzer and advisor can be exercised before real tracking data accumulates.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		tasks, err := loadRoutes()
		if err != nil {
			return err
		}

		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if err := seed.History(ctx, st, tasks, seedDays, nil); err != nil {
			return err
		}

		zap.L().Info("synthetic history injected",
			zap.Int("routes", len(tasks)),
			zap.Int("days", seedDays),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", seed.DefaultDays, "days of history to generate per route")
	rootCmd.AddCommand(seedCmd)
}
