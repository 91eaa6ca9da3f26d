package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/farewatch/farewatch-cli/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <route-id>",
	Short: "Export a route's price history to CSV or XLSX",
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

		series, err := st.History(ctx, routeID)
		if err != nil {
			return err
		}
		if len(series) == 0 {
			return eris.Errorf("no history for route %q", routeID)
		}
		recs := export.Records(routeID, series)

		switch exportFormat {
		case "csv":
			out := os.Stdout
			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return eris.Wrapf(err, "create %s", exportOut)
				}
				defer f.Close() //nolint:errcheck
				out = f
			}
			return export.WriteCSV(out, recs)
		case "xlsx":
			if exportOut == "" {
				return eris.New("--out is required for xlsx export")
			}
			if err := export.WriteXLSX(exportOut, recs); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(recs), exportOut)
			return nil
		default:
			return eris.Errorf("unsupported export format: %s", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (stdout for csv when omitted)")
	rootCmd.AddCommand(exportCmd)
}
