package cli

import (
	"github.com/kpoppel/PlannerTool-sub004/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Planner service.PlannerService

	// IsInteractive reports whether stdin is a terminal; interactive prompts
	// are skipped when it returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "planner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planner",
		Short: "Timeline planner with scenario-based what-if scheduling",
	}

	root.AddCommand(
		newStatusCmd(app),
		newCapacityCmd(app),
		newFeatureCmd(app),
		newScenarioCmd(app),
		newRefreshCmd(app),
	)

	return root
}
