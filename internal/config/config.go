package config

import (
	"os"
	"strconv"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// Config holds all runtime configuration for the planner.
type Config struct {
	DBPath           string
	EpicCapacityMode domain.EpicCapacityMode
	Demo             bool
	NoColor          bool
}

// DefaultConfig returns a Config with sensible defaults. The database path is
// resolved lazily in main so a missing home directory only fails when SQLite
// is actually used.
func DefaultConfig() Config {
	return Config{
		EpicCapacityMode: domain.EpicIgnoreIfHasChildren,
	}
}

// LoadConfig reads configuration from environment variables, falling back to
// defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("PLANNER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PLANNER_EPIC_CAPACITY_MODE"); v != "" && domain.ValidEpicCapacityModes[v] {
		cfg.EpicCapacityMode = domain.EpicCapacityMode(v)
	}
	if v := os.Getenv("PLANNER_DEMO"); v != "" {
		cfg.Demo, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLANNER_NO_COLOR"); v != "" {
		cfg.NoColor, _ = strconv.ParseBool(v)
	}
	return cfg
}
