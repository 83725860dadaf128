package battle

import "strings"

// --- Poke types ---

// PokeType is one of the fifteen elemental types a species or move can carry.
type PokeType int

const (
	TypeNormal PokeType = iota
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon

	// NumTypes is the size of the declared type universe.
	NumTypes = int(TypeDragon) + 1
)

func (t PokeType) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeFire:
		return "fire"
	case TypeWater:
		return "water"
	case TypeElectric:
		return "electric"
	case TypeGrass:
		return "grass"
	case TypeIce:
		return "ice"
	case TypeFighting:
		return "fighting"
	case TypePoison:
		return "poison"
	case TypeGround:
		return "ground"
	case TypeFlying:
		return "flying"
	case TypePsychic:
		return "psychic"
	case TypeBug:
		return "bug"
	case TypeRock:
		return "rock"
	case TypeGhost:
		return "ghost"
	case TypeDragon:
		return "dragon"
	default:
		return "unknown"
	}
}

// ParseType maps a type name (case-insensitive) back to its PokeType.
func ParseType(name string) (PokeType, bool) {
	for t := PokeType(0); int(t) < NumTypes; t++ {
		if strings.EqualFold(t.String(), name) {
			return t, true
		}
	}
	return 0, false
}

// valid reports whether t lies inside the declared universe.
func (t PokeType) valid() bool {
	return t >= 0 && int(t) < NumTypes
}

// --- Type chart ---

// TypeChart is the immutable (attack type, defense type) → multiplier lookup.
// Every declared type must appear as both attacker and defender; the chart is
// loaded once and never mutated afterwards.
type TypeChart struct {
	mult [NumTypes][NumTypes]float64
}

// NewTypeChart builds a chart from an explicit multiplier table. Missing rows
// or columns, or multipliers outside {0, 0.5, 1, 2}, are configuration errors.
func NewTypeChart(table map[PokeType]map[PokeType]float64) (*TypeChart, error) {
	tc := &TypeChart{}
	for atk := PokeType(0); int(atk) < NumTypes; atk++ {
		row, ok := table[atk]
		if !ok {
			return nil, configErrorf("type chart missing attacker row for %s", atk)
		}
		for def := PokeType(0); int(def) < NumTypes; def++ {
			m, ok := row[def]
			if !ok {
				return nil, configErrorf("type chart missing entry %s vs %s", atk, def)
			}
			switch m {
			case 0, 0.5, 1, 2:
			default:
				return nil, configErrorf("type chart entry %s vs %s has multiplier %v (want 0, 0.5, 1 or 2)", atk, def, m)
			}
			tc.mult[atk][def] = m
		}
	}
	return tc, nil
}

// Effectiveness returns the single-type multiplier for an attack of type atk
// against a defender of type def. Querying outside the declared universe is a
// data-integrity error, not a battle-logic one.
func (tc *TypeChart) Effectiveness(atk, def PokeType) (float64, error) {
	if !atk.valid() || !def.valid() {
		return 0, configErrorf("effectiveness query outside type universe: %d vs %d", atk, def)
	}
	return tc.mult[atk][def], nil
}

// EffectivenessAgainst combines the multiplier over a defender's full type
// combination: dual-type defenders multiply the two single-type lookups.
func (tc *TypeChart) EffectivenessAgainst(atk PokeType, defense []PokeType) (float64, error) {
	if len(defense) == 0 {
		return 0, configErrorf("defender has no types")
	}
	combined := 1.0
	for _, def := range defense {
		m, err := tc.Effectiveness(atk, def)
		if err != nil {
			return 0, err
		}
		combined *= m
	}
	return combined, nil
}
