package scenario

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/events"
	"github.com/kpoppel/PlannerTool-sub004/internal/provider"
)

// ListEntry is one row of the scenario:list payload.
type ListEntry struct {
	ID      string
	Name    string
	Unsaved bool
}

// ListPayload is published on scenario:list after every collection change.
type ListPayload struct {
	Scenarios []ListEntry
	ActiveID  string
}

// UpdatedPayload is published on scenario:updated after an override change.
type UpdatedPayload struct {
	ScenarioID string
	FeatureID  string
	Change     string // "override" or "revert"
}

// Store manages the named override collections and the active-scenario
// pointer. Persistence is optimistic: local state changes first and is never
// rolled back when the provider call fails; the unsaved flag stays set so the
// caller can retry.
//
// Like the baseline store, it is confined to a single goroutine.
type Store struct {
	provider  provider.BackendProvider
	bus       *events.Bus
	scenarios map[string]*domain.Scenario
	order     []string
	activeID  string
}

// NewStore creates an empty scenario store.
func NewStore(p provider.BackendProvider, bus *events.Bus) *Store {
	return &Store{
		provider:  p,
		bus:       bus,
		scenarios: map[string]*domain.Scenario{},
	}
}

// InitBaseline ensures the distinguished baseline scenario exists with empty
// overrides and activates it if nothing is active yet. Idempotent; called at
// startup and after every baseline refresh, where it resets the baseline
// scenario's overrides.
func (s *Store) InitBaseline() {
	b, ok := s.scenarios[domain.BaselineScenarioID]
	if !ok {
		b = &domain.Scenario{
			ID:   domain.BaselineScenarioID,
			Name: "Baseline",
		}
		s.scenarios[b.ID] = b
		s.order = append([]string{b.ID}, s.order...)
	}
	b.Overrides = map[string]domain.Override{}
	b.IsChanged = false
	if s.activeID == "" {
		s.activeID = b.ID
	}
	s.publishList()
}

// LoadPersisted fetches previously saved scenarios from the provider and adds
// them to the collection as saved (IsChanged=false). Existing in-memory
// scenarios with the same id are left untouched.
func (s *Store) LoadPersisted(ctx context.Context) error {
	saved, err := s.provider.FetchScenarios(ctx)
	if err != nil {
		return fmt.Errorf("fetching scenarios: %w", err)
	}
	for i := range saved {
		sc := saved[i].Clone()
		if sc.ID == domain.BaselineScenarioID {
			continue
		}
		if _, exists := s.scenarios[sc.ID]; exists {
			continue
		}
		sc.IsChanged = false
		s.scenarios[sc.ID] = sc
		s.order = append(s.order, sc.ID)
	}
	s.publishList()
	return nil
}

// ActiveID returns the id of the active scenario.
func (s *Store) ActiveID() string {
	return s.activeID
}

// Active returns the active scenario, or nil if none is active yet.
func (s *Store) Active() *domain.Scenario {
	return s.scenarios[s.activeID]
}

// Get returns the scenario with the given id.
func (s *Store) Get(id string) (*domain.Scenario, bool) {
	sc, ok := s.scenarios[id]
	return sc, ok
}

// List returns copies of all scenarios in stable creation order, baseline
// first.
func (s *Store) List() []domain.Scenario {
	out := make([]domain.Scenario, 0, len(s.order))
	for _, id := range s.order {
		if sc, ok := s.scenarios[id]; ok {
			out = append(out, *sc.Clone())
		}
	}
	return out
}

// IsUnsaved reports the scenario's literal unsaved flag. This is not a
// structural diff: reverting an override back to its saved value leaves the
// flag set.
func (s *Store) IsUnsaved(id string) bool {
	sc, ok := s.scenarios[id]
	return ok && sc.IsChanged
}

// Clone copies the source scenario's override map into a new scenario with a
// generated id and a de-duplicated name. The clone starts unsaved. Returns
// ErrNotFound if the source does not exist.
func (s *Store) Clone(sourceID, desiredName string) (*domain.Scenario, error) {
	src, ok := s.scenarios[sourceID]
	if !ok {
		return nil, fmt.Errorf("scenario %s: %w", sourceID, domain.ErrNotFound)
	}
	name := strings.TrimSpace(desiredName)
	if name == "" {
		name = s.DefaultCloneName(time.Now())
	}
	sc := &domain.Scenario{
		ID:        uuid.New().String(),
		Name:      s.EnsureUniqueName(name),
		Overrides: src.CloneOverrides(),
		IsChanged: true,
	}
	s.scenarios[sc.ID] = sc
	s.order = append(s.order, sc.ID)
	s.publishList()
	return sc.Clone(), nil
}

// Rename assigns a de-duplicated name to the scenario. Renaming the baseline
// scenario or an unknown id is a silent no-op. An empty name is rejected.
// The new name is persisted best-effort; a provider failure leaves the local
// rename in place with the unsaved flag set.
func (s *Store) Rename(ctx context.Context, id, newName string) error {
	sc, ok := s.scenarios[id]
	if !ok || sc.IsBaseline() {
		return nil
	}
	name := strings.TrimSpace(newName)
	if name == "" {
		return fmt.Errorf("scenario name cannot be empty: %w", domain.ErrValidation)
	}
	if sc.Name == name {
		return nil
	}
	sc.Name = s.uniqueNameExcluding(id, name)
	sc.IsChanged = true
	s.publishList()
	if err := s.provider.RenameScenario(ctx, id, sc.Name); err != nil {
		return fmt.Errorf("persisting rename: %w", err)
	}
	return nil
}

// Delete removes the scenario locally and best-effort remotely. Deleting the
// baseline scenario or an unknown id is a silent no-op. If the deleted
// scenario was active, activation falls back to baseline.
func (s *Store) Delete(ctx context.Context, id string) error {
	sc, ok := s.scenarios[id]
	if !ok || sc.IsBaseline() {
		return nil
	}
	delete(s.scenarios, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = domain.BaselineScenarioID
		s.bus.Publish(events.TopicScenarioActivated, s.activeID)
	}
	s.publishList()
	if _, err := s.provider.DeleteScenario(ctx, id); err != nil {
		return fmt.Errorf("persisting delete: %w", err)
	}
	return nil
}

// Activate sets the active scenario pointer. A no-op when the id is already
// active or unknown.
func (s *Store) Activate(id string) {
	if id == s.activeID {
		return
	}
	if _, ok := s.scenarios[id]; !ok {
		return
	}
	s.activeID = id
	s.bus.Publish(events.TopicScenarioActivated, id)
	s.publishList()
}

// SetOverride merges fields into the feature's override entry, creating one
// if absent, and marks the scenario unsaved. Unknown scenario ids no-op.
func (s *Store) SetOverride(scenarioID, featureID string, fields domain.Override) {
	sc, ok := s.scenarios[scenarioID]
	if !ok {
		return
	}
	if sc.Overrides == nil {
		sc.Overrides = map[string]domain.Override{}
	}
	sc.Overrides[featureID] = sc.Overrides[featureID].Merge(fields)
	sc.IsChanged = true
	s.bus.Publish(events.TopicScenarioUpdated, UpdatedPayload{
		ScenarioID: scenarioID, FeatureID: featureID, Change: "override",
	})
}

// ClearOverride removes the feature's override entry, reverting it to
// baseline, and marks the scenario unsaved. The revert does not cascade to
// the feature's parent epic or siblings.
func (s *Store) ClearOverride(scenarioID, featureID string) {
	sc, ok := s.scenarios[scenarioID]
	if !ok {
		return
	}
	if _, exists := sc.Overrides[featureID]; !exists {
		return
	}
	delete(sc.Overrides, featureID)
	sc.IsChanged = true
	s.bus.Publish(events.TopicScenarioUpdated, UpdatedPayload{
		ScenarioID: scenarioID, FeatureID: featureID, Change: "revert",
	})
}

// Save hands the scenario to the provider and clears the unsaved flag on
// success. A failed save leaves the flag set so the caller can retry. Saving
// the baseline scenario is a silent no-op.
func (s *Store) Save(ctx context.Context, id string) error {
	sc, ok := s.scenarios[id]
	if !ok {
		return fmt.Errorf("scenario %s: %w", id, domain.ErrNotFound)
	}
	if sc.IsBaseline() {
		return nil
	}
	if err := s.provider.SaveScenario(ctx, sc.Clone()); err != nil {
		return fmt.Errorf("saving scenario %s: %w", id, err)
	}
	sc.IsChanged = false
	s.publishList()
	return nil
}

// EnsureUniqueName de-duplicates a scenario name case-insensitively by
// appending " 2", " 3", ... until no existing name matches.
func (s *Store) EnsureUniqueName(base string) string {
	return s.uniqueNameExcluding("", base)
}

func (s *Store) uniqueNameExcluding(excludeID, base string) string {
	if !s.nameTaken(excludeID, base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if !s.nameTaken(excludeID, candidate) {
			return candidate
		}
	}
}

func (s *Store) nameTaken(excludeID, name string) bool {
	for _, sc := range s.scenarios {
		if sc.ID == excludeID {
			continue
		}
		if strings.EqualFold(sc.Name, name) {
			return true
		}
	}
	return false
}

// DefaultCloneName generates "MM-DD Scenario N" where N is one greater than
// the largest N among existing names matching that exact pattern for the
// given day.
func (s *Store) DefaultCloneName(now time.Time) string {
	prefix := now.Format("01-02") + " Scenario "
	max := 0
	for _, sc := range s.scenarios {
		if !strings.HasPrefix(sc.Name, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(sc.Name, prefix))
		if err != nil || n <= 0 {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%d", prefix, max+1)
}

func (s *Store) publishList() {
	entries := make([]ListEntry, 0, len(s.order))
	for _, id := range s.order {
		sc, ok := s.scenarios[id]
		if !ok {
			continue
		}
		entries = append(entries, ListEntry{ID: sc.ID, Name: sc.Name, Unsaved: sc.IsChanged})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		// Baseline always lists first; the rest keep creation order.
		return entries[i].ID == domain.BaselineScenarioID && entries[j].ID != domain.BaselineScenarioID
	})
	s.bus.Publish(events.TopicScenarioList, ListPayload{Scenarios: entries, ActiveID: s.activeID})
}
