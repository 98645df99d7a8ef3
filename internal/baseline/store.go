package baseline

import (
	"context"
	"fmt"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/events"
	"github.com/kpoppel/PlannerTool-sub004/internal/provider"
)

// Store loads and owns the immutable baseline snapshot. A load failure is
// fatal to the caller's initialization: the store never holds a partial
// snapshot and keeps the previous one untouched when a refresh fails.
//
// The store follows the single-writer model of the engine: it is confined to
// one goroutine and performs no internal locking.
type Store struct {
	provider provider.BackendProvider
	bus      *events.Bus
	snap     *Snapshot

	// Selection flags are a UI-facing layer outside the frozen baseline,
	// re-associated by id across refreshes.
	selectedProjects map[string]bool
	selectedTeams    map[string]bool
}

// NewStore creates a baseline store over the given provider.
func NewStore(p provider.BackendProvider, bus *events.Bus) *Store {
	return &Store{
		provider:         p,
		bus:              bus,
		selectedProjects: map[string]bool{},
		selectedTeams:    map[string]bool{},
	}
}

// Load fetches projects, teams, features and color mappings, assigns
// OriginalRank in fetch order, validates hierarchy references, builds lookup
// indexes and replaces the current snapshot wholesale. Emits baseline:changed
// on success. The fetch is not retried here; retry policy belongs to the
// provider.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	projects, err := s.provider.FetchProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	teams, err := s.provider.FetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	features, err := s.provider.FetchFeatures(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching features: %w", err)
	}
	colors, err := s.provider.FetchColorMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching color mappings: %w", err)
	}

	snap, err := buildSnapshot(projects, teams, features, colors)
	if err != nil {
		return nil, err
	}

	for i := range snap.projects {
		snap.projects[i].Selected = s.selectedProjects[snap.projects[i].ID]
	}
	for i := range snap.teams {
		snap.teams[i].Selected = s.selectedTeams[snap.teams[i].ID]
	}

	s.snap = snap
	s.bus.Publish(events.TopicBaselineChanged, snap)
	return snap, nil
}

// Refresh signals the provider to pull fresh upstream data, then re-runs Load.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	if err := s.provider.RefreshBaseline(ctx); err != nil {
		return nil, fmt.Errorf("refreshing baseline source: %w", err)
	}
	return s.Load(ctx)
}

// Snapshot returns the current frozen snapshot, or nil before the first Load.
// Callers must re-read through this accessor after any refresh rather than
// caching the pointer across one.
func (s *Store) Snapshot() *Snapshot {
	return s.snap
}

// SetProjectSelected records the UI selection flag for a project id.
func (s *Store) SetProjectSelected(id string, selected bool) {
	s.selectedProjects[id] = selected
	if s.snap == nil {
		return
	}
	for i := range s.snap.projects {
		if s.snap.projects[i].ID == id {
			s.snap.projects[i].Selected = selected
		}
	}
}

// SetTeamSelected records the UI selection flag for a team id.
func (s *Store) SetTeamSelected(id string, selected bool) {
	s.selectedTeams[id] = selected
	if s.snap == nil {
		return
	}
	for i := range s.snap.teams {
		if s.snap.teams[i].ID == id {
			s.snap.teams[i].Selected = selected
		}
	}
}

func buildSnapshot(projects []domain.Project, teams []domain.Team, features []domain.Feature, colors domain.ColorMappings) (*Snapshot, error) {
	snap := &Snapshot{
		projects:       append([]domain.Project(nil), projects...),
		teams:          append([]domain.Team(nil), teams...),
		features:       make([]domain.Feature, len(features)),
		colors:         colors,
		featureByID:    make(map[string]int, len(features)),
		childrenByEpic: map[string][]string{},
	}

	for i, f := range features {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		c := f.Clone()
		c.OriginalRank = i
		if _, dup := snap.featureByID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate feature id %s: %w", c.ID, domain.ErrValidation)
		}
		snap.features[i] = c
		snap.featureByID[c.ID] = i
	}

	for _, f := range snap.features {
		if f.ParentEpic == "" {
			continue
		}
		pi, ok := snap.featureByID[f.ParentEpic]
		if !ok {
			return nil, fmt.Errorf("feature %s references missing epic %s: %w", f.ID, f.ParentEpic, domain.ErrValidation)
		}
		if snap.features[pi].Type != domain.TypeEpic {
			return nil, fmt.Errorf("feature %s parent %s is not an epic: %w", f.ID, f.ParentEpic, domain.ErrValidation)
		}
		snap.childrenByEpic[f.ParentEpic] = append(snap.childrenByEpic[f.ParentEpic], f.ID)
	}

	return snap, nil
}
