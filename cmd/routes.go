package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/farewatch/farewatch-cli/internal/model"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List configured route tasks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tasks, err := loadRoutes()
		if err != nil {
			return err
		}
		formatRoutes(os.Stdout, tasks)
		return nil
	},
}

func formatRoutes(w io.Writer, tasks []model.RouteTask) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Route", "Dates", "Trigger", "Nonstop", "Carriers"})

	for _, task := range tasks {
		nonstop := "no"
		if task.NonstopOnly {
			nonstop = "yes"
		}
		t.AppendRow(table.Row{
			task.ID,
			task.Label(),
			task.DateRange(),
			fmt.Sprintf("$%d", task.PriceTrigger),
			nonstop,
			fmt.Sprintf("%v", task.PriorityCarriers),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
