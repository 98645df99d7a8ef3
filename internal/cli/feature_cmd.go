package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kpoppel/PlannerTool-sub004/internal/cli/formatter"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/engine"
	"github.com/spf13/cobra"
)

func newFeatureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feature",
		Short: "Inspect and reschedule features",
	}

	cmd.AddCommand(
		newFeatureListCmd(app),
		newFeatureMoveCmd(app),
		newFeatureRevertCmd(app),
	)

	return cmd
}

func newFeatureListCmd(app *App) *cobra.Command {
	var sortMode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List effective features under the active scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidSortModes[sortMode] {
				return fmt.Errorf("unknown sort mode %q (rank, start, title)", sortMode)
			}
			features := app.Planner.EffectiveFeatures()
			sortFeatures(features, domain.SortMode(sortMode))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeatureList(features))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortMode, "sort", "rank", "sort mode: rank, start or title")
	return cmd
}

func sortFeatures(features []domain.EffectiveFeature, mode domain.SortMode) {
	sort.SliceStable(features, func(i, j int) bool {
		a, b := &features[i], &features[j]
		switch mode {
		case domain.SortStart:
			if !a.Start.Equal(b.Start) {
				return a.Start.Before(b.Start)
			}
		case domain.SortTitle:
			if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
				return c < 0
			}
		}
		// originalRank is the stable tie-break in every mode.
		return a.OriginalRank < b.OriginalRank
	})
}

func newFeatureMoveCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "move <feature-id>",
		Short: "Propose new dates for a feature (hierarchy constraints apply)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			f, ok := findEffective(app, id)
			if !ok {
				return fmt.Errorf("feature not found: %q", id)
			}

			newStart, newEnd := f.Start, f.End
			if start != "" {
				t, err := domain.ParseDate(start)
				if err != nil {
					return err
				}
				newStart = t
			}
			if end != "" {
				t, err := domain.ParseDate(end)
				if err != nil {
					return err
				}
				newEnd = t
			}
			if newEnd.Before(newStart) {
				return fmt.Errorf("end %s is before start %s", domain.FormatDate(newEnd), domain.FormatDate(newStart))
			}

			before := committedSpans(app)
			err := app.Planner.UpdateFeatureDates(cmd.Context(), []engine.Proposal{
				{FeatureID: id, Start: newStart, End: newEnd},
			})
			if err != nil {
				return err
			}

			requested := map[string][2]string{
				id: {domain.FormatDate(newStart), domain.FormatDate(newEnd)},
			}
			committed := map[string][2]string{}
			for fid, span := range committedSpans(app) {
				if span != before[fid] {
					committed[fid] = span
				}
			}
			if len(committed) == 0 {
				committed[id] = requested[id]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeatureMove(requested, committed))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "new start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "new end date (YYYY-MM-DD)")
	return cmd
}

func newFeatureRevertCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "revert <feature-id>",
		Short: "Drop the active scenario's override for a feature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Planner.RevertFeature(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted %s to baseline dates.\n", args[0])
			return nil
		},
	}
}

func findEffective(app *App, id string) (domain.EffectiveFeature, bool) {
	for _, f := range app.Planner.EffectiveFeatures() {
		if f.ID == id {
			return f, true
		}
	}
	return domain.EffectiveFeature{}, false
}

func committedSpans(app *App) map[string][2]string {
	out := map[string][2]string{}
	for _, f := range app.Planner.EffectiveFeatures() {
		out[f.ID] = [2]string{domain.FormatDate(f.Start), domain.FormatDate(f.End)}
	}
	return out
}
