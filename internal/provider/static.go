package provider

import (
	"context"
	"time"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// StaticProvider serves a fixed in-memory dataset. It backs demo runs and
// tests that do not want a database. Saved scenarios are kept in a map so the
// save/reload round trip works within one process.
type StaticProvider struct {
	Projects  []domain.Project
	Teams     []domain.Team
	Features  []domain.Feature
	Colors    domain.ColorMappings
	Scenarios map[string]*domain.Scenario

	// FailSaves makes every persistence call return this error, for testing
	// the optimistic-local policy.
	FailSaves error
}

// NewStaticProvider creates an empty StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		Colors: domain.ColorMappings{
			ProjectColors: map[string]string{},
			TeamColors:    map[string]string{},
		},
		Scenarios: map[string]*domain.Scenario{},
	}
}

func (p *StaticProvider) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	return append([]domain.Project(nil), p.Projects...), nil
}

func (p *StaticProvider) FetchTeams(ctx context.Context) ([]domain.Team, error) {
	return append([]domain.Team(nil), p.Teams...), nil
}

func (p *StaticProvider) FetchFeatures(ctx context.Context) ([]domain.Feature, error) {
	out := make([]domain.Feature, len(p.Features))
	for i, f := range p.Features {
		out[i] = f.Clone()
	}
	return out, nil
}

func (p *StaticProvider) FetchColorMappings(ctx context.Context) (domain.ColorMappings, error) {
	return p.Colors, nil
}

func (p *StaticProvider) FetchScenarios(ctx context.Context) ([]domain.Scenario, error) {
	var out []domain.Scenario
	for _, s := range p.Scenarios {
		out = append(out, *s.Clone())
	}
	return out, nil
}

func (p *StaticProvider) SaveScenario(ctx context.Context, s *domain.Scenario) error {
	if p.FailSaves != nil {
		return p.FailSaves
	}
	p.Scenarios[s.ID] = s.Clone()
	return nil
}

func (p *StaticProvider) DeleteScenario(ctx context.Context, id string) (bool, error) {
	if p.FailSaves != nil {
		return false, p.FailSaves
	}
	_, ok := p.Scenarios[id]
	delete(p.Scenarios, id)
	return ok, nil
}

func (p *StaticProvider) RenameScenario(ctx context.Context, id, name string) error {
	if p.FailSaves != nil {
		return p.FailSaves
	}
	if s, ok := p.Scenarios[id]; ok {
		s.Name = name
	}
	return nil
}

func (p *StaticProvider) RefreshBaseline(ctx context.Context) error {
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DemoProvider returns a StaticProvider pre-filled with a small roadmap:
// two projects, two teams, one epic with children per project.
func DemoProvider() *StaticProvider {
	p := NewStaticProvider()
	p.Projects = []domain.Project{
		{ID: "proj-atlas", Name: "Atlas", Color: "#83a598"},
		{ID: "proj-borealis", Name: "Borealis", Color: "#d3869b"},
	}
	p.Teams = []domain.Team{
		{ID: "team-core", Name: "Core", Color: "#8ec07c"},
		{ID: "team-platform", Name: "Platform", Color: "#fabd2f"},
	}
	p.Features = []domain.Feature{
		{
			ID: "epic-search", Type: domain.TypeEpic, Title: "Search revamp",
			Project: "proj-atlas", Start: date(2025, 1, 1), End: date(2025, 3, 31),
			TeamLoads: []domain.TeamLoad{{Team: "team-core", Load: 20}},
			Status:    "in-progress",
		},
		{
			ID: "feat-indexer", Type: domain.TypeFeature, Title: "Incremental indexer",
			Project: "proj-atlas", Start: date(2025, 1, 10), End: date(2025, 2, 15),
			TeamLoads:  []domain.TeamLoad{{Team: "team-core", Load: 60}},
			ParentEpic: "epic-search", Status: "in-progress", Assignee: "mara",
		},
		{
			ID: "feat-ranking", Type: domain.TypeFeature, Title: "Ranking model",
			Project: "proj-atlas", Start: date(2025, 2, 1), End: date(2025, 3, 20),
			TeamLoads:  []domain.TeamLoad{{Team: "team-core", Load: 40}, {Team: "team-platform", Load: 10}},
			ParentEpic: "epic-search", Status: "todo",
		},
		{
			ID: "epic-billing", Type: domain.TypeEpic, Title: "Usage billing",
			Project: "proj-borealis", Start: date(2025, 2, 1), End: date(2025, 5, 31),
			TeamLoads: []domain.TeamLoad{{Team: "team-platform", Load: 30}},
			Status:    "todo",
		},
		{
			ID: "feat-metering", Type: domain.TypeFeature, Title: "Metering pipeline",
			Project: "proj-borealis", Start: date(2025, 2, 10), End: date(2025, 4, 15),
			TeamLoads:  []domain.TeamLoad{{Team: "team-platform", Load: 50}},
			ParentEpic: "epic-billing", Status: "todo", Assignee: "jun",
		},
	}
	for _, pr := range p.Projects {
		p.Colors.ProjectColors[pr.ID] = pr.Color
	}
	for _, t := range p.Teams {
		p.Colors.TeamColors[t.ID] = t.Color
	}
	return p
}
