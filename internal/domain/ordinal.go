package domain

// Ordinal scales used by filters, scoring, and derived scalars. Values are
// stored lower-cased; an empty string always means "unknown".

const Broad = "all"

var (
	ActorCountScale      = []string{"solo", "duo", "small_team", "large_team"}
	SetupComplexityScale = []string{"none", "minimal", "moderate", "extensive"}
	SkillScale           = []string{"none", "basic_editing", "advanced_editing", "professional"}
	TimeScale            = []string{"under_30min", "under_2hr", "half_day", "multi_day"}
	SpaceScale           = []string{"cramped", "normal", "spacious"}
	ContentEdgeScale     = []string{"squeaky_clean", "mild", "edgy", "provocative"}
	HumorRiskScale       = []string{"none", "safe", "moderate", "risky"}
	ControversyScale     = []string{"low", "medium", "high"}
	AgeCodeScale         = []string{"18-24", "25-34", "35-44", "45+"}
	IncomeScale          = []string{"budget", "mid", "premium"}
	QualityTierScale     = []string{"low", "medium", "high"}
	AmbitionScale        = []string{"maintain", "level_up", "transform"}
)

// OrdinalIndex returns the position of value on scale, or -1 when unknown.
func OrdinalIndex(scale []string, value string) int {
	for i, v := range scale {
		if v == value {
			return i
		}
	}
	return -1
}

// OrdinalWithin reports whether value sits at or below ceiling on the scale.
// Unknown on either side is treated as permissive: filters document their own
// defaults, and an unresolvable comparison must never reject outright.
func OrdinalWithin(scale []string, value, ceiling string) bool {
	vi := OrdinalIndex(scale, value)
	ci := OrdinalIndex(scale, ceiling)
	if vi < 0 || ci < 0 {
		return true
	}
	return vi <= ci
}

// OrdinalAdjacent reports whether a and b are exactly one step apart.
func OrdinalAdjacent(scale []string, a, b string) bool {
	ai := OrdinalIndex(scale, a)
	bi := OrdinalIndex(scale, b)
	if ai < 0 || bi < 0 {
		return false
	}
	diff := ai - bi
	return diff == 1 || diff == -1
}

// IsValidOrdinal reports whether value appears on the scale.
func IsValidOrdinal(scale []string, value string) bool {
	return OrdinalIndex(scale, value) >= 0
}
