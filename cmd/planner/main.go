package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpoppel/PlannerTool-sub004/internal/baseline"
	"github.com/kpoppel/PlannerTool-sub004/internal/cli"
	"github.com/kpoppel/PlannerTool-sub004/internal/cli/formatter"
	"github.com/kpoppel/PlannerTool-sub004/internal/config"
	"github.com/kpoppel/PlannerTool-sub004/internal/db"
	"github.com/kpoppel/PlannerTool-sub004/internal/events"
	"github.com/kpoppel/PlannerTool-sub004/internal/provider"
	"github.com/kpoppel/PlannerTool-sub004/internal/scenario"
	"github.com/kpoppel/PlannerTool-sub004/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	if cfg.NoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	var backend provider.BackendProvider
	if cfg.Demo {
		backend = provider.DemoProvider()
	} else {
		dbPath := cfg.DBPath
		if dbPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			dbPath = filepath.Join(home, ".planner", "planner.db")
		}
		database, err := db.OpenDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		backend = provider.NewSQLiteProvider(database)
	}

	bus := events.NewBus()
	baselineStore := baseline.NewStore(backend, bus)
	scenarioStore := scenario.NewStore(backend, bus)
	planner := service.NewPlannerService(baselineStore, scenarioStore, bus, cfg.EpicCapacityMode)

	// Baseline load failure is fatal: the engine never runs on partial data.
	if err := planner.Init(context.Background()); err != nil {
		return err
	}

	app := &cli.App{
		Planner: planner,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
