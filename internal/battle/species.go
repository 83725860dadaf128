package battle

// --- Moves ---

// MoveCategory distinguishes damage-dealing moves from mode-specific special
// moves that manipulate team state instead of HP.
type MoveCategory int

const (
	MoveDamage  MoveCategory = iota
	MoveReorder              // forces the owning team's mode strategy to re-sort
)

func (c MoveCategory) String() string {
	switch c {
	case MoveDamage:
		return "damage"
	case MoveReorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// ModeMask restricts a move to certain battle modes. The zero value means the
// move is legal in every mode.
type ModeMask uint8

// MaskFor builds a mask covering exactly the given modes.
func MaskFor(modes ...BattleMode) ModeMask {
	var m ModeMask
	for _, bm := range modes {
		m |= 1 << uint(bm)
	}
	return m
}

// Allows reports whether the mask permits the given mode.
func (m ModeMask) Allows(mode BattleMode) bool {
	if m == 0 {
		return true
	}
	return m&(1<<uint(mode)) != 0
}

// Move is immutable for the duration of a battle.
type Move struct {
	Name     string
	Type     PokeType
	Power    int
	Category MoveCategory
	Modes    ModeMask // zero = usable in every mode
}

// --- Species ---

// Stats holds the four base stats a species grows from.
type Stats struct {
	HP      int
	Attack  int
	Defense int
	Speed   int
}

// Species is a read-only catalog entry. The engine never mutates it.
type Species struct {
	Name        string
	Types       []PokeType // one or two entries
	Base        Stats
	Moves       []Move
	EvolvesInto string // empty = terminal form
	EvolveLevel int    // level at or above which evolution triggers
}

// Catalog is a read-only species lookup by name.
type Catalog map[string]*Species

// Lookup returns the species for a name, or a configuration error if the
// catalog does not declare it.
func (c Catalog) Lookup(name string) (*Species, error) {
	sp, ok := c[name]
	if !ok {
		return nil, configErrorf("species %q not in catalog", name)
	}
	return sp, nil
}

// Validate checks catalog integrity: every species carries one or two declared
// types, positive base stats, at least one damage move, and an evolution
// target that exists with a trigger level above zero.
func (c Catalog) Validate() error {
	for name, sp := range c {
		if sp == nil {
			return configErrorf("species %q is nil", name)
		}
		if sp.Name != name {
			return configErrorf("species %q keyed under %q", sp.Name, name)
		}
		if len(sp.Types) < 1 || len(sp.Types) > 2 {
			return configErrorf("species %q must have one or two types, has %d", name, len(sp.Types))
		}
		for _, t := range sp.Types {
			if !t.valid() {
				return configErrorf("species %q declares unknown type %d", name, t)
			}
		}
		if sp.Base.HP <= 0 || sp.Base.Attack <= 0 || sp.Base.Defense <= 0 || sp.Base.Speed <= 0 {
			return configErrorf("species %q has non-positive base stats", name)
		}
		damaging := 0
		for _, mv := range sp.Moves {
			if !mv.Type.valid() {
				return configErrorf("species %q move %q declares unknown type %d", name, mv.Name, mv.Type)
			}
			if mv.Category == MoveDamage {
				if mv.Power <= 0 {
					return configErrorf("species %q move %q has non-positive power", name, mv.Name)
				}
				damaging++
			}
		}
		if damaging == 0 {
			return configErrorf("species %q has no damage-dealing move", name)
		}
		if sp.EvolvesInto != "" {
			if _, ok := c[sp.EvolvesInto]; !ok {
				return configErrorf("species %q evolves into unknown species %q", name, sp.EvolvesInto)
			}
			if sp.EvolveLevel <= 0 {
				return configErrorf("species %q has evolution target but no trigger level", name)
			}
		}
	}
	return nil
}
