package domain

import (
	"fmt"
	"time"
)

// TeamLoad is a percentage allocation of one team on a feature.
type TeamLoad struct {
	Team string
	Load float64
}

// Feature is a baseline work item: either a plain feature or an epic that
// aggregates child features via ParentEpic back-references. Baseline features
// are immutable after load; date changes live in scenario overrides.
type Feature struct {
	ID          string
	Type        FeatureType
	Title       string
	Project     string
	Start       time.Time // inclusive
	End         time.Time // inclusive
	TeamLoads   []TeamLoad
	Status      string
	Assignee    string
	Description string
	URL         string

	// ParentEpic is the owning epic's feature id, set on features only.
	ParentEpic string

	// OriginalRank is the stable import-order index, assigned exactly once at
	// baseline load. It is the tie-break key for rank sorting and is never
	// touched by overrides.
	OriginalRank int
}

// Validate checks the per-record invariants that must hold at load time.
func (f *Feature) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("feature id is required: %w", ErrValidation)
	}
	if f.Type != TypeFeature && f.Type != TypeEpic {
		return fmt.Errorf("feature %s has unknown type %q: %w", f.ID, f.Type, ErrValidation)
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.End.Before(f.Start) {
		return fmt.Errorf("feature %s has end %s before start %s: %w",
			f.ID, FormatDate(f.End), FormatDate(f.Start), ErrValidation)
	}
	if f.Type == TypeEpic && f.ParentEpic != "" {
		return fmt.Errorf("epic %s cannot have a parent epic: %w", f.ID, ErrValidation)
	}
	return nil
}

// HasDates reports whether both endpoints are set and ordered.
func (f *Feature) HasDates() bool {
	return !f.Start.IsZero() && !f.End.IsZero() && !f.End.Before(f.Start)
}

// Covers reports whether day d falls inside the inclusive [Start, End] span.
func (f *Feature) Covers(d time.Time) bool {
	return f.HasDates() && !d.Before(f.Start) && !d.After(f.End)
}

// Clone returns a deep copy, including the team load slice.
func (f Feature) Clone() Feature {
	out := f
	out.TeamLoads = make([]TeamLoad, len(f.TeamLoads))
	copy(out.TeamLoads, f.TeamLoads)
	return out
}

// EffectiveFeature is a baseline feature merged with the active scenario's
// override. Derived on every read, never persisted.
type EffectiveFeature struct {
	Feature

	// ScenarioOverride is true when the active scenario has an override entry
	// for this feature, even if the values match baseline.
	ScenarioOverride bool

	// ChangedFields lists the date fields ("start", "end") whose effective
	// value differs from baseline.
	ChangedFields []string

	// Dirty is true when ChangedFields is non-empty.
	Dirty bool
}
