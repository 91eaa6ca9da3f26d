package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/farewatch/farewatch-cli/internal/advise"
	"github.com/farewatch/farewatch-cli/internal/model"
)

var (
	historyDays int
	historyJSON bool
)

var historyCmd = &cobra.Command{
	Use:   "history <route-id>",
	Short: "Show recorded price history for a route",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		routeID := args[0]

		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		var series []model.DailySnapshot
		if historyDays > 0 {
			series, err = st.Window(ctx, routeID, historyDays)
		} else {
			series, err = st.History(ctx, routeID)
		}
		if err != nil {
			return err
		}
		if len(series) == 0 {
			fmt.Fprintf(os.Stderr, "No history for route %q.\n", routeID)
			return nil
		}

		if historyJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(series)
		}

		formatHistory(os.Stdout, series)
		return nil
	},
}

func formatHistory(w io.Writer, series []model.DailySnapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Date", "Price", "Carrier", "Market Avg"})

	for _, snap := range series {
		avg := "-"
		if snap.MarketAvg > 0 {
			avg = fmt.Sprintf("%.2f", snap.MarketAvg)
		}
		t.AppendRow(table.Row{snap.Date, advise.FormatPrice(snap.Price), snap.Carrier, avg})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 0, "limit to the last N calendar days")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "emit snapshots as JSON")
	rootCmd.AddCommand(historyCmd)
}
