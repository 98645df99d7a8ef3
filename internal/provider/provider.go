package provider

import (
	"context"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// BackendProvider is the single external collaborator the planning engine
// consumes. One implementation is selected at composition time; the engine
// never dispatches per call. Operations may fail with a storage error, which
// the engine does not retry internally.
type BackendProvider interface {
	FetchProjects(ctx context.Context) ([]domain.Project, error)
	FetchTeams(ctx context.Context) ([]domain.Team, error)

	// FetchFeatures returns baseline features in stable source order; the
	// baseline store assigns OriginalRank from that order.
	FetchFeatures(ctx context.Context) ([]domain.Feature, error)

	FetchColorMappings(ctx context.Context) (domain.ColorMappings, error)

	// FetchScenarios returns previously saved scenarios (never the baseline
	// scenario, which exists only in memory).
	FetchScenarios(ctx context.Context) ([]domain.Scenario, error)

	SaveScenario(ctx context.Context, s *domain.Scenario) error

	// DeleteScenario reports whether a persisted record existed.
	DeleteScenario(ctx context.Context, id string) (bool, error)

	RenameScenario(ctx context.Context, id, name string) error

	// RefreshBaseline signals the upstream source to pull fresh data before
	// the next round of fetches.
	RefreshBaseline(ctx context.Context) error
}
