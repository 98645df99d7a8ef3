package domain

// Project is a planning container features are assigned to. Color is a UI
// preference carried alongside the record; Selected is a UI-facing flag layered
// on top of the baseline and preserved across refreshes.
type Project struct {
	ID       string
	Name     string
	Color    string
	Selected bool
}

// Team is an allocation target for feature team loads. Same shape and
// lifecycle as Project.
type Team struct {
	ID       string
	Name     string
	Color    string
	Selected bool
}

// ColorMappings holds the persisted color preferences keyed by entity id.
type ColorMappings struct {
	ProjectColors map[string]string
	TeamColors    map[string]string
}
