package domain

import "time"

// BaselineScenarioID is the distinguished scenario that always exists, holds
// no overrides after init, and can be neither renamed nor deleted.
const BaselineScenarioID = "baseline"

// Override is a per-feature date delta stored within a scenario. A nil field
// means the baseline value is unmodified.
type Override struct {
	Start *time.Time
	End   *time.Time
}

// IsEmpty reports whether the override carries no delta at all.
func (o Override) IsEmpty() bool {
	return o.Start == nil && o.End == nil
}

// Merge layers other's non-nil fields over o and returns the result.
func (o Override) Merge(other Override) Override {
	out := o
	if other.Start != nil {
		t := *other.Start
		out.Start = &t
	}
	if other.End != nil {
		t := *other.End
		out.End = &t
	}
	return out
}

// Scenario is a named set of overrides layered on the baseline for what-if
// planning. IsChanged is a literal unsaved flag, not a structural diff against
// the persisted copy.
type Scenario struct {
	ID        string
	Name      string
	Overrides map[string]Override
	IsChanged bool
}

// IsBaseline reports whether this is the distinguished baseline scenario.
func (s *Scenario) IsBaseline() bool {
	return s.ID == BaselineScenarioID
}

// CloneOverrides returns a shallow copy of the override map. Override values
// are copied by value; the pointer targets are never mutated in place.
func (s *Scenario) CloneOverrides() map[string]Override {
	out := make(map[string]Override, len(s.Overrides))
	for id, o := range s.Overrides {
		out[id] = o
	}
	return out
}

// Clone returns a copy of the scenario with its own override map.
func (s *Scenario) Clone() *Scenario {
	return &Scenario{
		ID:        s.ID,
		Name:      s.Name,
		Overrides: s.CloneOverrides(),
		IsChanged: s.IsChanged,
	}
}
