package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/kpoppel/PlannerTool-sub004/internal/cli/formatter"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/spf13/cobra"
)

func newScenarioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage what-if scenarios",
	}

	cmd.AddCommand(
		newScenarioListCmd(app),
		newScenarioCloneCmd(app),
		newScenarioRenameCmd(app),
		newScenarioDeleteCmd(app),
		newScenarioActivateCmd(app),
		newScenarioSaveCmd(app),
	)

	return cmd
}

func newScenarioListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios with active and unsaved markers",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(),
				formatter.FormatScenarioList(app.Planner.Scenarios(), app.Planner.ActiveScenarioID()))
			return nil
		},
	}
}

func newScenarioCloneCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "clone [source-id]",
		Short: "Clone a scenario's overrides into a new scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID := domain.BaselineScenarioID
			if len(args) == 1 {
				sourceID = args[0]
			}
			if name == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := promptScenarioName(&name); err != nil {
					return err
				}
			}
			sc, err := app.Planner.CloneScenario(cmd.Context(), sourceID, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created scenario %s (%s).\n", sc.Name, sc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name for the new scenario (generated when omitted)")
	return cmd
}

// promptScenarioName collects an optional scenario name interactively. A blank
// answer keeps the generated default.
func promptScenarioName(value *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Scenario name (blank for a generated one)").
				Placeholder("Q2 stretch plan").
				Value(value),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return fmt.Errorf("reading scenario name: %w", err)
	}
	return nil
}

func newScenarioRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <scenario-id>",
		Short: "Rename a scenario (the baseline scenario is immutable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := promptScenarioName(&name); err != nil {
					return err
				}
			}
			if err := app.Planner.RenameScenario(cmd.Context(), args[0], name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed scenario %s.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new scenario name")
	return cmd
}

func newScenarioDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <scenario-id>",
		Short: "Delete a scenario (active falls back to baseline)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Planner.DeleteScenario(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %s.\n", args[0])
			return nil
		},
	}
}

func newScenarioActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <scenario-id>",
		Short: "Make a scenario the active overlay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Planner.ActivateScenario(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Active scenario: %s\n", app.Planner.ActiveScenarioID())
			return nil
		},
	}
}

func newScenarioSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <scenario-id>",
		Short: "Persist a scenario's overrides to the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Planner.SaveScenario(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("scenario stays unsaved: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved scenario %s.\n", args[0])
			return nil
		},
	}
}
