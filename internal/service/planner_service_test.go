package service

import (
	"context"
	"testing"
	"time"

	"github.com/kpoppel/PlannerTool-sub004/internal/baseline"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/engine"
	"github.com/kpoppel/PlannerTool-sub004/internal/events"
	"github.com/kpoppel/PlannerTool-sub004/internal/provider"
	"github.com/kpoppel/PlannerTool-sub004/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newPlanner(t *testing.T) (PlannerService, *events.Bus) {
	t.Helper()
	p := provider.NewStaticProvider()
	p.Projects = []domain.Project{{ID: "p1", Name: "One"}}
	p.Teams = []domain.Team{{ID: "t1", Name: "Core"}, {ID: "t2", Name: "Platform"}}
	p.Features = []domain.Feature{
		{ID: "E1", Type: domain.TypeEpic, Title: "Epic", Project: "p1",
			Start: day(2025, 1, 1), End: day(2025, 1, 31),
			TeamLoads: []domain.TeamLoad{{Team: "t1", Load: 20}}},
		{ID: "F1", Type: domain.TypeFeature, Title: "Child", Project: "p1",
			Start: day(2025, 1, 5), End: day(2025, 1, 20), ParentEpic: "E1",
			TeamLoads: []domain.TeamLoad{{Team: "t1", Load: 50}}},
	}

	bus := events.NewBus()
	planner := NewPlannerService(
		baseline.NewStore(p, bus),
		scenario.NewStore(p, bus),
		bus,
		domain.EpicIgnoreIfHasChildren,
	)
	require.NoError(t, planner.Init(context.Background()))
	return planner, bus
}

func effectiveByID(planner PlannerService) map[string]domain.EffectiveFeature {
	out := map[string]domain.EffectiveFeature{}
	for _, f := range planner.EffectiveFeatures() {
		out[f.ID] = f
	}
	return out
}

func TestInit_ActivatesBaselineScenario(t *testing.T) {
	planner, _ := newPlanner(t)

	assert.Equal(t, domain.BaselineScenarioID, planner.ActiveScenarioID())
	require.Len(t, planner.Scenarios(), 1)
	assert.NotNil(t, planner.Baseline())
}

func TestUpdateFeatureDates_MoveChildExtendsEpicInSameCommit(t *testing.T) {
	planner, _ := newPlanner(t)
	sc, err := planner.CloneScenario(context.Background(), domain.BaselineScenarioID, "Plan")
	require.NoError(t, err)
	planner.ActivateScenario(sc.ID)

	err = planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 2, 1), End: day(2025, 2, 20)},
	})
	require.NoError(t, err)

	eff := effectiveByID(planner)
	assert.Equal(t, day(2025, 2, 20), eff["F1"].End)
	assert.Equal(t, day(2025, 2, 20), eff["E1"].End, "parent grew in the same commit")
	assert.Equal(t, day(2025, 1, 1), eff["E1"].Start)
	assert.True(t, eff["F1"].Dirty)
	assert.True(t, eff["E1"].Dirty)
}

func TestUpdateFeatureDates_EpicShrinkClamped(t *testing.T) {
	planner, _ := newPlanner(t)

	err := planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "E1", Start: day(2025, 1, 1), End: day(2025, 1, 10)},
	})
	require.NoError(t, err)

	eff := effectiveByID(planner)
	assert.Equal(t, day(2025, 1, 20), eff["E1"].End, "clamped to the child's end")
}

func TestUpdateFeatureDates_PublishesFeatureAndCapacityEvents(t *testing.T) {
	planner, bus := newPlanner(t)
	var featureEvents, capacityEvents int
	bus.Subscribe(events.TopicFeatureUpdated, func(any) { featureEvents++ })
	bus.Subscribe(events.TopicCapacityUpdated, func(any) { capacityEvents++ })

	err := planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 1, 5), End: day(2025, 1, 25)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, featureEvents)
	assert.Equal(t, 1, capacityEvents)
}

func TestRevertFeature_DoesNotCascade(t *testing.T) {
	planner, _ := newPlanner(t)
	require.NoError(t, planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 2, 1), End: day(2025, 2, 20)},
	}))
	eff := effectiveByID(planner)
	require.True(t, eff["E1"].Dirty, "parent was extended by the move")

	require.NoError(t, planner.RevertFeature(context.Background(), "F1"))

	eff = effectiveByID(planner)
	assert.False(t, eff["F1"].Dirty)
	assert.Equal(t, day(2025, 1, 20), eff["F1"].End)
	assert.True(t, eff["E1"].Dirty, "parent override survives the child revert")
}

func TestActivateScenario_SwitchesEffectiveView(t *testing.T) {
	planner, _ := newPlanner(t)
	sc, err := planner.CloneScenario(context.Background(), domain.BaselineScenarioID, "Plan")
	require.NoError(t, err)
	planner.ActivateScenario(sc.ID)
	require.NoError(t, planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 1, 5), End: day(2025, 1, 28)},
	}))

	planner.ActivateScenario(domain.BaselineScenarioID)
	assert.False(t, effectiveByID(planner)["F1"].Dirty, "baseline view has no override")

	planner.ActivateScenario(sc.ID)
	assert.Equal(t, day(2025, 1, 28), effectiveByID(planner)["F1"].End)
}

func TestDeleteScenario_ActiveFallsBackAndRecomputes(t *testing.T) {
	planner, bus := newPlanner(t)
	sc, err := planner.CloneScenario(context.Background(), domain.BaselineScenarioID, "Plan")
	require.NoError(t, err)
	planner.ActivateScenario(sc.ID)
	require.NoError(t, planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 2, 1), End: day(2025, 2, 20)},
	}))

	var capacityEvents int
	bus.Subscribe(events.TopicCapacityUpdated, func(any) { capacityEvents++ })

	require.NoError(t, planner.DeleteScenario(context.Background(), sc.ID))

	assert.Equal(t, domain.BaselineScenarioID, planner.ActiveScenarioID())
	assert.False(t, effectiveByID(planner)["F1"].Dirty)
	assert.Equal(t, 1, capacityEvents)
}

func TestCapacity_ReflectsActiveScenario(t *testing.T) {
	planner, _ := newPlanner(t)

	// Epic has a child, so with ignoreIfHasChildren only F1's 50% counts.
	series := planner.Capacity()
	require.False(t, series.Empty())
	assert.Equal(t, 50.0, series.TeamDaily[4]["t1"], "Jan 5")
	assert.Equal(t, 25.0, series.OrgDailyPerTeamAvg[4], "50 over 2 teams")

	require.NoError(t, planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 2, 1), End: day(2025, 2, 20)},
	}))
	series = planner.Capacity()
	assert.Equal(t, day(2025, 2, 20), series.Days[len(series.Days)-1], "range follows the override")
}

func TestRefresh_ResetsBaselineScenarioOverrides(t *testing.T) {
	planner, _ := newPlanner(t)
	require.NoError(t, planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 2, 1), End: day(2025, 2, 20)},
	}))
	require.True(t, effectiveByID(planner)["F1"].Dirty)

	require.NoError(t, planner.Refresh(context.Background()))

	assert.False(t, effectiveByID(planner)["F1"].Dirty, "baseline scenario is pristine after refresh")
}

func TestSaveScenario_RoundTripThroughProvider(t *testing.T) {
	planner, _ := newPlanner(t)
	sc, err := planner.CloneScenario(context.Background(), domain.BaselineScenarioID, "Plan")
	require.NoError(t, err)
	planner.ActivateScenario(sc.ID)
	require.NoError(t, planner.UpdateFeatureDates(context.Background(), []engine.Proposal{
		{FeatureID: "F1", Start: day(2025, 2, 1), End: day(2025, 2, 20)},
	}))

	require.NoError(t, planner.SaveScenario(context.Background(), sc.ID))

	for _, s := range planner.Scenarios() {
		if s.ID == sc.ID {
			assert.False(t, s.IsChanged)
		}
	}
}
