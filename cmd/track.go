package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farewatch/farewatch-cli/internal/advise"
	"github.com/farewatch/farewatch-cli/internal/fetch"
	"github.com/farewatch/farewatch-cli/internal/model"
	"github.com/farewatch/farewatch-cli/internal/pipeline"
)

var trackJSON bool

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Run one tracking cycle over all configured routes",
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

		tracker := pipeline.New(cfg.Track, fetch.NewHTTP(cfg.Fetch), st)
		reports, err := tracker.Run(ctx, tasks)
		if err != nil {
			return eris.Wrap(err, "tracking cycle")
		}

		zap.L().Info("tracking cycle complete", zap.Int("routes", len(reports)))

		if trackJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}

		formatReports(os.Stdout, reports)
		return nil
	},
}

func formatReports(w io.Writer, reports []model.RouteReport) {
	for _, r := range reports {
		fmt.Fprintln(w, statusLine(r))
		fmt.Fprintf(w, "  %s\n", r.Verdict.Message)
		if r.DropAlert != "" {
			fmt.Fprintf(w, "  ALERT: %s\n", r.DropAlert)
		}
	}
}

func statusLine(r model.RouteReport) string {
	return fmt.Sprintf("%s | %s | %s | trend: %s",
		r.RouteName, r.Carrier, advise.FormatPrice(r.Price), r.Trend)
}

func init() {
	trackCmd.Flags().BoolVar(&trackJSON, "json", false, "emit report records as JSON")
	rootCmd.AddCommand(trackCmd)
}
