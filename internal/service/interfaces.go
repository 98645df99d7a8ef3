package service

import (
	"context"

	"github.com/kpoppel/PlannerTool-sub004/internal/baseline"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/engine"
)

// PlannerService is the mutation and read surface UI collaborators integrate
// against. All mutations run to completion synchronously; only provider calls
// suspend the calling workflow.
type PlannerService interface {
	// Init loads the baseline, restores persisted scenarios and ensures the
	// baseline scenario exists and is active. A load failure is fatal: no
	// partial state is kept.
	Init(ctx context.Context) error

	// Refresh replaces the baseline wholesale and resets the baseline
	// scenario's overrides.
	Refresh(ctx context.Context) error

	Baseline() *baseline.Snapshot
	EffectiveFeatures() []domain.EffectiveFeature
	Capacity() engine.Series

	// UpdateFeatureDates runs a batch of date proposals through the hierarchy
	// constraints and commits the adjusted set as overrides on the active
	// scenario.
	UpdateFeatureDates(ctx context.Context, proposals []engine.Proposal) error

	// RevertFeature drops the active scenario's override for one feature.
	// Non-cascading: the parent epic and siblings keep their overrides.
	RevertFeature(ctx context.Context, featureID string) error

	Scenarios() []domain.Scenario
	ActiveScenarioID() string
	CloneScenario(ctx context.Context, sourceID, name string) (*domain.Scenario, error)
	RenameScenario(ctx context.Context, id, name string) error
	DeleteScenario(ctx context.Context, id string) error
	ActivateScenario(id string)
	SaveScenario(ctx context.Context, id string) error
}
