package engine

import (
	"time"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// Series is the derived capacity time series: one slot per day in the
// inclusive [Days[0], Days[len-1]] range.
type Series struct {
	Days []time.Time

	// TeamDaily[i][teamID] is the raw summed load for the team on day i.
	TeamDaily []map[string]float64

	// ProjectDailyRaw[i][projectID] sums every contributing team load on the
	// project's features for day i.
	ProjectDailyRaw []map[string]float64

	// ProjectDailyNormalized divides the raw project tuple by the team count,
	// yielding a comparable per-project share of organizational capacity.
	ProjectDailyNormalized []map[string]float64

	// OrgDailyRaw[i] is the sum of all project raw tuples on day i.
	OrgDailyRaw []float64

	// OrgDailyPerTeamAvg[i] is OrgDailyRaw[i] divided by the team count.
	OrgDailyPerTeamAvg []float64
}

// Empty reports whether the series covers no days.
func (s Series) Empty() bool {
	return len(s.Days) == 0
}

// ComputeCapacity derives the daily per-team and per-project load series from
// the effective feature set. The range spans the earliest start to the latest
// end over all dated features; with no valid dates the series is empty. The
// epic capacity mode controls double counting between an epic's own loads and
// its children's.
func ComputeCapacity(features []domain.EffectiveFeature, teamCount int, mode domain.EpicCapacityMode) Series {
	var s Series
	first, last, ok := dateExtent(features)
	if !ok {
		return s
	}

	childSpans := map[string][]span{}
	for i := range features {
		f := &features[i]
		if f.ParentEpic != "" && f.HasDates() {
			childSpans[f.ParentEpic] = append(childSpans[f.ParentEpic], span{start: f.Start, end: f.End})
		}
	}
	hasChildren := map[string]bool{}
	for i := range features {
		if features[i].ParentEpic != "" {
			hasChildren[features[i].ParentEpic] = true
		}
	}

	days := int(last.Sub(first).Hours()/24) + 1
	s.Days = make([]time.Time, days)
	s.TeamDaily = make([]map[string]float64, days)
	s.ProjectDailyRaw = make([]map[string]float64, days)
	s.ProjectDailyNormalized = make([]map[string]float64, days)
	s.OrgDailyRaw = make([]float64, days)
	s.OrgDailyPerTeamAvg = make([]float64, days)

	for i := 0; i < days; i++ {
		d := first.AddDate(0, 0, i)
		s.Days[i] = d
		teamSlot := map[string]float64{}
		projectSlot := map[string]float64{}

		for j := range features {
			f := &features[j]
			if !f.Covers(d) {
				continue
			}
			if f.Type == domain.TypeEpic && !epicCounts(f, d, childSpans, hasChildren, mode) {
				continue
			}
			for _, tl := range f.TeamLoads {
				teamSlot[tl.Team] += tl.Load
				projectSlot[f.Project] += tl.Load
				s.OrgDailyRaw[i] += tl.Load
			}
		}

		s.TeamDaily[i] = teamSlot
		s.ProjectDailyRaw[i] = projectSlot
		normalized := make(map[string]float64, len(projectSlot))
		if teamCount > 0 {
			for p, v := range projectSlot {
				normalized[p] = v / float64(teamCount)
			}
			s.OrgDailyPerTeamAvg[i] = s.OrgDailyRaw[i] / float64(teamCount)
		}
		s.ProjectDailyNormalized[i] = normalized
	}
	return s
}

func epicCounts(f *domain.EffectiveFeature, d time.Time, childSpans map[string][]span, hasChildren map[string]bool, mode domain.EpicCapacityMode) bool {
	switch mode {
	case domain.EpicFillGapsIfNoChildCoversDate:
		for _, sp := range childSpans[f.ID] {
			if !d.Before(sp.start) && !d.After(sp.end) {
				return false
			}
		}
		return true
	default: // EpicIgnoreIfHasChildren
		return !hasChildren[f.ID]
	}
}

func dateExtent(features []domain.EffectiveFeature) (time.Time, time.Time, bool) {
	var first, last time.Time
	found := false
	for i := range features {
		f := &features[i]
		if !f.HasDates() {
			continue
		}
		if !found {
			first, last = f.Start, f.End
			found = true
			continue
		}
		first = domain.MinDate(first, f.Start)
		last = domain.MaxDate(last, f.End)
	}
	return first, last, found
}
