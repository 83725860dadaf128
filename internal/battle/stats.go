package battle

// --- Level-driven stat growth ---
//
// Growth is deliberately integer-only so battles are reproducible across
// platforms. Both curves are monotonic non-decreasing in level.

// maxHPAt derives a combatant's maximum HP from its species base HP and level.
func maxHPAt(base, level int) int {
	return base*2*level/100 + level + 10
}

// statAt derives Attack, Defense or Speed from a base stat and level.
func statAt(base, level int) int {
	return base*2*level/100 + 5
}

// --- Ordering criteria ---

// Criterion selects the stat an Optimised-mode team is kept sorted by.
// Chosen once at battle start.
type Criterion int

const (
	CriterionHP Criterion = iota
	CriterionAttack
	CriterionDefense
	CriterionSpeed
	CriterionLevel
)

func (c Criterion) String() string {
	switch c {
	case CriterionHP:
		return "hp"
	case CriterionAttack:
		return "attack"
	case CriterionDefense:
		return "defense"
	case CriterionSpeed:
		return "speed"
	case CriterionLevel:
		return "level"
	default:
		return "unknown"
	}
}

// ParseCriterion maps a criterion name to its Criterion value.
func ParseCriterion(name string) (Criterion, bool) {
	for c := CriterionHP; c <= CriterionLevel; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}
