package formatter

import (
	"strconv"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// FormatScenarioList renders the scenario collection with active and unsaved
// markers.
func FormatScenarioList(scenarios []domain.Scenario, activeID string) string {
	headers := []string{"", "ID", "NAME", "OVERRIDES", "STATE"}
	rows := make([][]string, 0, len(scenarios))
	for i := range scenarios {
		sc := &scenarios[i]
		active := " "
		if sc.ID == activeID {
			active = StyleGreen.Render("▶")
		}
		state := StyleDim.Render("saved")
		if sc.IsChanged {
			state = StyleYellow.Render("unsaved")
		}
		rows = append(rows, []string{
			active,
			sc.ID,
			sc.Name,
			itoa(len(sc.Overrides)),
			state,
		})
	}
	return RenderTable(headers, rows)
}

func itoa(n int) string {
	if n == 0 {
		return StyleDim.Render("0")
	}
	return StyleBold.Render(strconv.Itoa(n))
}
