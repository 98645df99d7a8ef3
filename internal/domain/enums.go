package domain

type FeatureType string

const (
	TypeFeature FeatureType = "feature"
	TypeEpic    FeatureType = "epic"
)

// EpicCapacityMode controls how an epic's own team loads contribute to the
// capacity series when the epic has children.
type EpicCapacityMode string

const (
	// EpicIgnoreIfHasChildren skips an epic's team loads entirely whenever it
	// has at least one child; the children are assumed to carry the full load.
	EpicIgnoreIfHasChildren EpicCapacityMode = "ignoreIfHasChildren"

	// EpicFillGapsIfNoChildCoversDate counts an epic's team loads only on days
	// no child span covers.
	EpicFillGapsIfNoChildCoversDate EpicCapacityMode = "fillGapsIfNoChildCoversDate"
)

// ValidEpicCapacityModes is the canonical set of accepted mode strings.
var ValidEpicCapacityModes = map[string]bool{
	string(EpicIgnoreIfHasChildren):         true,
	string(EpicFillGapsIfNoChildCoversDate): true,
}

type SortMode string

const (
	SortRank  SortMode = "rank"
	SortStart SortMode = "start"
	SortTitle SortMode = "title"
)

// ValidSortModes is the canonical set of accepted sort mode strings.
var ValidSortModes = map[string]bool{
	"rank": true, "start": true, "title": true,
}
