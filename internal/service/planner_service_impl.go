package service

import (
	"context"
	"fmt"

	"github.com/kpoppel/PlannerTool-sub004/internal/baseline"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/engine"
	"github.com/kpoppel/PlannerTool-sub004/internal/events"
	"github.com/kpoppel/PlannerTool-sub004/internal/scenario"
)

type plannerService struct {
	baseline  *baseline.Store
	scenarios *scenario.Store
	bus       *events.Bus
	epicMode  domain.EpicCapacityMode
}

// NewPlannerService wires the stores into the orchestration entry points.
func NewPlannerService(b *baseline.Store, s *scenario.Store, bus *events.Bus, epicMode domain.EpicCapacityMode) PlannerService {
	return &plannerService{baseline: b, scenarios: s, bus: bus, epicMode: epicMode}
}

func (p *plannerService) Init(ctx context.Context) error {
	if _, err := p.baseline.Load(ctx); err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}
	if err := p.scenarios.LoadPersisted(ctx); err != nil {
		return fmt.Errorf("restoring scenarios: %w", err)
	}
	p.scenarios.InitBaseline()
	p.publishCapacity()
	return nil
}

func (p *plannerService) Refresh(ctx context.Context) error {
	if _, err := p.baseline.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing baseline: %w", err)
	}
	p.scenarios.InitBaseline()
	p.bus.Publish(events.TopicFeatureUpdated, nil)
	p.publishCapacity()
	return nil
}

func (p *plannerService) Baseline() *baseline.Snapshot {
	return p.baseline.Snapshot()
}

func (p *plannerService) EffectiveFeatures() []domain.EffectiveFeature {
	snap := p.baseline.Snapshot()
	if snap == nil {
		return nil
	}
	return engine.EffectiveFeatures(snap, p.scenarios.Active())
}

func (p *plannerService) Capacity() engine.Series {
	snap := p.baseline.Snapshot()
	if snap == nil {
		return engine.Series{}
	}
	return engine.ComputeCapacity(p.EffectiveFeatures(), snap.TeamCount(), p.epicMode)
}

func (p *plannerService) UpdateFeatureDates(ctx context.Context, proposals []engine.Proposal) error {
	snap := p.baseline.Snapshot()
	if snap == nil {
		return fmt.Errorf("baseline not loaded: %w", domain.ErrNotFound)
	}
	active := p.scenarios.Active()
	if active == nil {
		return fmt.Errorf("no active scenario: %w", domain.ErrNotFound)
	}

	adjusted := engine.ApplyConstraints(snap, active, proposals)
	changed := make([]string, 0, len(adjusted))
	for _, prop := range adjusted {
		start, end := prop.Start, prop.End
		p.scenarios.SetOverride(active.ID, prop.FeatureID, domain.Override{Start: &start, End: &end})
		changed = append(changed, prop.FeatureID)
	}
	if len(changed) > 0 {
		p.bus.Publish(events.TopicFeatureUpdated, changed)
		p.publishCapacity()
	}
	return nil
}

func (p *plannerService) RevertFeature(ctx context.Context, featureID string) error {
	active := p.scenarios.Active()
	if active == nil {
		return fmt.Errorf("no active scenario: %w", domain.ErrNotFound)
	}
	p.scenarios.ClearOverride(active.ID, featureID)
	p.bus.Publish(events.TopicFeatureUpdated, []string{featureID})
	p.publishCapacity()
	return nil
}

func (p *plannerService) Scenarios() []domain.Scenario {
	return p.scenarios.List()
}

func (p *plannerService) ActiveScenarioID() string {
	return p.scenarios.ActiveID()
}

func (p *plannerService) CloneScenario(ctx context.Context, sourceID, name string) (*domain.Scenario, error) {
	return p.scenarios.Clone(sourceID, name)
}

func (p *plannerService) RenameScenario(ctx context.Context, id, name string) error {
	return p.scenarios.Rename(ctx, id, name)
}

func (p *plannerService) DeleteScenario(ctx context.Context, id string) error {
	wasActive := p.scenarios.ActiveID() == id
	if err := p.scenarios.Delete(ctx, id); err != nil {
		return err
	}
	if wasActive {
		p.bus.Publish(events.TopicFeatureUpdated, nil)
		p.publishCapacity()
	}
	return nil
}

func (p *plannerService) ActivateScenario(id string) {
	before := p.scenarios.ActiveID()
	p.scenarios.Activate(id)
	if p.scenarios.ActiveID() != before {
		p.bus.Publish(events.TopicFeatureUpdated, nil)
		p.publishCapacity()
	}
}

func (p *plannerService) SaveScenario(ctx context.Context, id string) error {
	return p.scenarios.Save(ctx, id)
}

func (p *plannerService) publishCapacity() {
	p.bus.Publish(events.TopicCapacityUpdated, p.Capacity())
}
