package engine

import (
	"time"

	"github.com/kpoppel/PlannerTool-sub004/internal/baseline"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// Proposal is one requested date change, submitted alone or as part of a
// batch.
type Proposal struct {
	FeatureID string
	Start     time.Time
	End       time.Time
}

// ApplyConstraints adjusts a batch of date proposals so the epic/child
// invariants hold after commit:
//
//  1. An epic's proposed end is clamped up to the maximum effective end of its
//     direct children. The epic's start is never auto-extended by this rule.
//  2. A feature moving outside its parent epic's effective span extends the
//     parent to cover the union. One level only; never shrinks the parent.
//
// Proposals are applied in submission order against a scratch override map
// seeded from the active scenario, so later proposals see the effective
// results of earlier ones and moving a child together with its epic does not
// spuriously trip the shrink clamp. Unknown feature ids are dropped silently.
//
// The returned proposals are what should be committed as overrides, with at
// most one entry per feature id, in first-touched order.
func ApplyConstraints(snap *baseline.Snapshot, sc *domain.Scenario, proposals []Proposal) []Proposal {
	scratch := map[string]span{}
	if sc != nil {
		for id, o := range sc.Overrides {
			f, ok := snap.Feature(id)
			if !ok {
				continue
			}
			scratch[id] = spanFor(f, o)
		}
	}

	var order []string
	touched := map[string]bool{}
	record := func(id string, sp span) {
		scratch[id] = sp
		if !touched[id] {
			touched[id] = true
			order = append(order, id)
		}
	}
	effective := func(f domain.Feature) span {
		if sp, ok := scratch[f.ID]; ok {
			return sp
		}
		return span{start: f.Start, end: f.End}
	}

	for _, p := range proposals {
		f, ok := snap.Feature(p.FeatureID)
		if !ok {
			continue
		}
		sp := span{start: p.Start, end: p.End}

		if f.Type == domain.TypeEpic {
			// Shrink inhibition: the epic cannot end before its latest child.
			for _, childID := range snap.Children(f.ID) {
				child, ok := snap.Feature(childID)
				if !ok {
					continue
				}
				childSpan := effective(child)
				if childSpan.end.After(sp.end) {
					sp.end = childSpan.end
				}
			}
			record(f.ID, sp)
			continue
		}

		record(f.ID, sp)

		// Extension propagation: grow the immediate parent to cover the child.
		if f.ParentEpic == "" {
			continue
		}
		parent, ok := snap.Feature(f.ParentEpic)
		if !ok {
			continue
		}
		ps := effective(parent)
		grown := span{
			start: domain.MinDate(ps.start, sp.start),
			end:   domain.MaxDate(ps.end, sp.end),
		}
		if !grown.start.Equal(ps.start) || !grown.end.Equal(ps.end) {
			record(parent.ID, grown)
		}
	}

	out := make([]Proposal, 0, len(order))
	for _, id := range order {
		sp := scratch[id]
		out = append(out, Proposal{FeatureID: id, Start: sp.start, End: sp.end})
	}
	return out
}

type span struct {
	start time.Time
	end   time.Time
}

func spanFor(f domain.Feature, o domain.Override) span {
	sp := span{start: f.Start, end: f.End}
	if o.Start != nil {
		sp.start = *o.Start
	}
	if o.End != nil {
		sp.end = *o.End
	}
	return sp
}
