package formatter

import (
	"fmt"
	"strings"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// FormatFeatureList renders the effective feature table. Dirty rows carry a
// marker and list their changed fields.
func FormatFeatureList(features []domain.EffectiveFeature) string {
	if len(features) == 0 {
		return StyleDim.Render("No features loaded.") + "\n"
	}

	headers := []string{"", "ID", "TYPE", "TITLE", "PROJECT", "START", "END", "CHANGED"}
	rows := make([][]string, 0, len(features))
	for i := range features {
		f := &features[i]
		typ := string(f.Type)
		if f.Type == domain.TypeEpic {
			typ = StyleBlue.Render(typ)
		}
		title := f.Title
		if f.ParentEpic != "" {
			title = "  " + title
		}
		rows = append(rows, []string{
			DirtyMarker(f.Dirty),
			f.ID,
			typ,
			title,
			f.Project,
			domain.FormatDate(f.Start),
			domain.FormatDate(f.End),
			strings.Join(f.ChangedFields, ","),
		})
	}
	return RenderTable(headers, rows)
}

// FormatFeatureMove summarizes a committed date change, including any clamping
// or parent extension applied by the hierarchy constraints.
func FormatFeatureMove(requested, committed map[string][2]string) string {
	var b strings.Builder
	for id, span := range committed {
		line := fmt.Sprintf("%s → %s .. %s", id, span[0], span[1])
		if req, ok := requested[id]; ok && req != span {
			line += StyleYellow.Render("  (adjusted)")
		} else if !ok {
			line += StyleDim.Render("  (propagated to parent)")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
