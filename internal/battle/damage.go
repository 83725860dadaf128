package battle

import "math"

// --- Effectiveness classification ---

// EffectivenessClass buckets the combined type multiplier for logging and
// display.
type EffectivenessClass int

const (
	EffNormal EffectivenessClass = iota
	EffSuper                     // combined multiplier > 1
	EffNotVery                   // combined multiplier in (0, 1)
	EffImmune                    // combined multiplier == 0
)

func (e EffectivenessClass) String() string {
	switch e {
	case EffSuper:
		return "super_effective"
	case EffNotVery:
		return "not_very_effective"
	case EffImmune:
		return "immune"
	case EffNormal:
		return "normal"
	default:
		return "unknown"
	}
}

func classify(mult float64) EffectivenessClass {
	switch {
	case mult == 0:
		return EffImmune
	case mult > 1:
		return EffSuper
	case mult < 1:
		return EffNotVery
	default:
		return EffNormal
	}
}

// --- Pokédex multiplier ---

// defaultPokedexCap bounds the Pokédex damage multiplier. At full completion
// an attacker deals cap times base damage; an empty Pokédex deals x1.
const defaultPokedexCap = 1.5

// pokedexMultiplier maps a completion ratio in [0, 1] to a damage multiplier
// in [1, cap]. Strictly increasing in completion, bounded above by cap.
func pokedexMultiplier(completion, cap float64) float64 {
	if cap < 1 {
		cap = 1
	}
	if completion < 0 {
		completion = 0
	}
	m := 1 + completion*(cap-1)
	return math.Min(m, cap)
}

// --- Damage computation ---

// baseDamage is the pre-multiplier damage of a connecting hit. Integer math
// throughout; the final doubling keeps the base even so the x2 and x0.5
// effectiveness scalings stay exact.
func baseDamage(level, power, attack, defense int) int {
	if defense < 1 {
		defense = 1
	}
	return 2 * ((2*level/5 + 2) * power * attack / (defense * 50))
}

// ComputeDamage resolves one connecting attack: base damage from the move and
// the two combatants' stats, scaled by type effectiveness against the
// defender's full type combination and by the attacker's Pokédex multiplier.
//
// The result is 0 exactly when the defender is immune; any other connecting
// hit deals at least 1. ComputeDamage mutates nothing; applying the damage
// is the turn resolver's job.
func ComputeDamage(attacker, defender *Combatant, move Move, chart *TypeChart, pokedexMult float64) (int, EffectivenessClass, error) {
	eff, err := chart.EffectivenessAgainst(move.Type, defender.species.Types)
	if err != nil {
		return 0, EffNormal, err
	}
	class := classify(eff)
	if eff == 0 {
		return 0, class, nil
	}
	if pokedexMult < 1 {
		pokedexMult = 1
	}
	base := baseDamage(attacker.level, move.Power, attacker.Attack(), defender.Defense())
	amount := int(math.Round(float64(base) * eff * pokedexMult))
	if amount < 1 {
		amount = 1
	}
	return amount, class, nil
}
