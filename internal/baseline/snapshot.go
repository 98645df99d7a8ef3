package baseline

import (
	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// Snapshot is a frozen baseline dataset. All fields are unexported and every
// accessor returns copies, so mutation of loaded data is structurally
// impossible from outside the package.
type Snapshot struct {
	projects       []domain.Project
	teams          []domain.Team
	features       []domain.Feature
	colors         domain.ColorMappings
	featureByID    map[string]int
	childrenByEpic map[string][]string
}

// Projects returns a copy of the project list.
func (s *Snapshot) Projects() []domain.Project {
	return append([]domain.Project(nil), s.projects...)
}

// Teams returns a copy of the team list.
func (s *Snapshot) Teams() []domain.Team {
	return append([]domain.Team(nil), s.teams...)
}

// TeamCount returns the number of teams in the snapshot.
func (s *Snapshot) TeamCount() int {
	return len(s.teams)
}

// Features returns deep copies of all baseline features in original rank order.
func (s *Snapshot) Features() []domain.Feature {
	out := make([]domain.Feature, len(s.features))
	for i, f := range s.features {
		out[i] = f.Clone()
	}
	return out
}

// Feature returns a copy of the feature with the given id.
func (s *Snapshot) Feature(id string) (domain.Feature, bool) {
	i, ok := s.featureByID[id]
	if !ok {
		return domain.Feature{}, false
	}
	return s.features[i].Clone(), true
}

// Children returns the ids of the direct children of the given epic, in
// original rank order.
func (s *Snapshot) Children(epicID string) []string {
	return append([]string(nil), s.childrenByEpic[epicID]...)
}

// Colors returns the color mappings fetched alongside the baseline.
func (s *Snapshot) Colors() domain.ColorMappings {
	out := domain.ColorMappings{
		ProjectColors: make(map[string]string, len(s.colors.ProjectColors)),
		TeamColors:    make(map[string]string, len(s.colors.TeamColors)),
	}
	for k, v := range s.colors.ProjectColors {
		out.ProjectColors[k] = v
	}
	for k, v := range s.colors.TeamColors {
		out.TeamColors[k] = v
	}
	return out
}
