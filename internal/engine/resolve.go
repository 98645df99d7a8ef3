package engine

import (
	"github.com/kpoppel/PlannerTool-sub004/internal/baseline"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// EffectiveFeatures merges the active scenario's overrides over the baseline
// snapshot and returns the derived feature list in original rank order. Pure:
// no state is read beyond the arguments and no side effects occur, so it is
// safe to call on every render cycle. A nil scenario yields plain baseline
// copies.
func EffectiveFeatures(snap *baseline.Snapshot, sc *domain.Scenario) []domain.EffectiveFeature {
	features := snap.Features()
	out := make([]domain.EffectiveFeature, len(features))
	for i, f := range features {
		out[i] = effectiveOne(f, sc)
	}
	return out
}

func effectiveOne(f domain.Feature, sc *domain.Scenario) domain.EffectiveFeature {
	ef := domain.EffectiveFeature{Feature: f}
	if sc == nil {
		return ef
	}
	o, ok := sc.Overrides[f.ID]
	if !ok {
		return ef
	}
	ef.ScenarioOverride = true
	if o.Start != nil {
		ef.Start = *o.Start
		if !ef.Start.Equal(f.Start) {
			ef.ChangedFields = append(ef.ChangedFields, "start")
		}
	}
	if o.End != nil {
		ef.End = *o.End
		if !ef.End.Equal(f.End) {
			ef.ChangedFields = append(ef.ChangedFields, "end")
		}
	}
	ef.Dirty = len(ef.ChangedFields) > 0
	return ef
}
