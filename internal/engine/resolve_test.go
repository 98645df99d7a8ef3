package engine

import (
	"testing"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveFeatures_NoOverrideEqualsBaseline(t *testing.T) {
	snap := epicWithChild(t)

	out := EffectiveFeatures(snap, emptyScenario())

	require.Len(t, out, 3)
	for _, ef := range out {
		base, ok := snap.Feature(ef.ID)
		require.True(t, ok)
		assert.Equal(t, base.Start, ef.Start)
		assert.Equal(t, base.End, ef.End)
		assert.False(t, ef.Dirty)
		assert.False(t, ef.ScenarioOverride)
		assert.Empty(t, ef.ChangedFields)
	}
}

func TestEffectiveFeatures_OverrideMarksDirtyFields(t *testing.T) {
	snap := epicWithChild(t)
	sc := emptyScenario()
	end := day(2025, 2, 28)
	sc.Overrides["F1"] = domain.Override{End: &end}

	out := EffectiveFeatures(snap, sc)

	var f1 domain.EffectiveFeature
	for _, ef := range out {
		if ef.ID == "F1" {
			f1 = ef
		}
	}
	require.Equal(t, "F1", f1.ID)
	assert.True(t, f1.ScenarioOverride)
	assert.True(t, f1.Dirty)
	assert.Equal(t, []string{"end"}, f1.ChangedFields)
	assert.Equal(t, day(2025, 2, 28), f1.End)
	assert.Equal(t, day(2025, 1, 10), f1.Start, "unoverridden field stays baseline")
}

func TestEffectiveFeatures_OverrideEqualToBaselineNotDirty(t *testing.T) {
	snap := epicWithChild(t)
	sc := emptyScenario()
	end := day(2025, 2, 15) // F1's baseline end
	sc.Overrides["F1"] = domain.Override{End: &end}

	out := EffectiveFeatures(snap, sc)

	for _, ef := range out {
		if ef.ID == "F1" {
			assert.True(t, ef.ScenarioOverride)
			assert.False(t, ef.Dirty)
			assert.Empty(t, ef.ChangedFields)
		}
	}
}

func TestEffectiveFeatures_NilScenarioFallsBackToBaseline(t *testing.T) {
	snap := epicWithChild(t)

	out := EffectiveFeatures(snap, nil)

	require.Len(t, out, 3)
	for _, ef := range out {
		assert.False(t, ef.Dirty)
	}
}

func TestEffectiveFeatures_CloneEquivalence(t *testing.T) {
	snap := epicWithChild(t)
	sc := emptyScenario()
	start := day(2025, 1, 15)
	end := day(2025, 3, 10)
	sc.Overrides["F1"] = domain.Override{Start: &start, End: &end}
	sc.Overrides["E1"] = domain.Override{End: &end}

	clone := &domain.Scenario{ID: "s2", Name: "S2", Overrides: sc.CloneOverrides()}

	assert.Equal(t, EffectiveFeatures(snap, sc), EffectiveFeatures(snap, clone))
}

func TestEffectiveFeatures_PreservesRankOrder(t *testing.T) {
	snap := epicWithChild(t)

	out := EffectiveFeatures(snap, nil)

	for i, ef := range out {
		assert.Equal(t, i, ef.OriginalRank)
	}
}
