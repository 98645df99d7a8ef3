package cli

import (
	"fmt"

	"github.com/kpoppel/PlannerTool-sub004/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show baseline summary and scenario state",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Planner.Baseline()
			if snap == nil {
				return fmt.Errorf("baseline not loaded")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d projects, %d teams, %d features\n",
				formatter.StyleHeader.Render("Baseline:"),
				len(snap.Projects()), snap.TeamCount(), len(snap.Features()))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatScenarioList(app.Planner.Scenarios(), app.Planner.ActiveScenarioID()))
			return nil
		},
	}
}

func newRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch the baseline from the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Planner.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Baseline refreshed.")
			return nil
		},
	}
}

func newCapacityCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show the daily team/project load series",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Planner.Baseline()
			if snap == nil {
				return fmt.Errorf("baseline not loaded")
			}
			series := app.Planner.Capacity()
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatCapacity(series, snap.Teams()))

			if day != "" {
				for i, d := range series.Days {
					if d.Format("2006-01-02") == day {
						fmt.Fprintln(out)
						fmt.Fprint(out, formatter.FormatProjectShares(series, i))
						break
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "also show per-project shares for this date (YYYY-MM-DD)")
	return cmd
}
