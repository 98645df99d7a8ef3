package formatter

import (
	"fmt"
	"sort"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
	"github.com/kpoppel/PlannerTool-sub004/internal/engine"
)

// FormatCapacity renders the daily capacity series as a table: one row per
// day, one column per team plus the normalized org average.
func FormatCapacity(s engine.Series, teams []domain.Team) string {
	if s.Empty() {
		return StyleDim.Render("No dated features; capacity series is empty.") + "\n"
	}

	teamIDs := make([]string, 0, len(teams))
	headers := []string{"DATE"}
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
		headers = append(headers, t.Name)
	}
	headers = append(headers, "ORG AVG")

	rows := make([][]string, 0, len(s.Days))
	for i, d := range s.Days {
		row := []string{domain.FormatDate(d)}
		for _, id := range teamIDs {
			row = append(row, formatLoad(s.TeamDaily[i][id]))
		}
		row = append(row, formatLoad(s.OrgDailyPerTeamAvg[i]))
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}

// FormatProjectShares renders the normalized per-project share for one day.
func FormatProjectShares(s engine.Series, dayIndex int) string {
	if s.Empty() || dayIndex < 0 || dayIndex >= len(s.Days) {
		return ""
	}
	shares := s.ProjectDailyNormalized[dayIndex]
	ids := make([]string, 0, len(shares))
	for id := range shares {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id, formatLoad(shares[id])})
	}
	return RenderTable([]string{"PROJECT", "SHARE"}, rows)
}

func formatLoad(v float64) string {
	if v == 0 {
		return StyleDim.Render("-")
	}
	out := fmt.Sprintf("%.0f%%", v)
	if v > 100 {
		return StyleRed.Render(out)
	}
	if v > 80 {
		return StyleYellow.Render(out)
	}
	return StyleGreen.Render(out)
}
