package battle

// Combatant is the mutable runtime view of one creature during a battle:
// current HP, level-derived stats and experience. It is owned exclusively by
// the Team that fields it.
type Combatant struct {
	id      int
	label   string // e.g. "A0", "B3"
	species *Species
	level   int
	xp      int // progress toward the next level
	hp      int
}

// NewCombatant instantiates a combatant from a species definition and level,
// at full HP.
func NewCombatant(id int, label string, sp *Species, level int) *Combatant {
	if level < 1 {
		level = 1
	}
	c := &Combatant{id: id, label: label, species: sp, level: level}
	c.hp = c.MaxHP()
	return c
}

func (c *Combatant) ID() int           { return c.id }
func (c *Combatant) Label() string     { return c.label }
func (c *Combatant) Species() *Species { return c.species }
func (c *Combatant) Level() int        { return c.level }
func (c *Combatant) XP() int           { return c.xp }
func (c *Combatant) HP() int           { return c.hp }

// MaxHP is derived from base HP and level; it changes only on level-up or
// evolution.
func (c *Combatant) MaxHP() int   { return maxHPAt(c.species.Base.HP, c.level) }
func (c *Combatant) Attack() int  { return statAt(c.species.Base.Attack, c.level) }
func (c *Combatant) Defense() int { return statAt(c.species.Base.Defense, c.level) }
func (c *Combatant) Speed() int   { return statAt(c.species.Base.Speed, c.level) }

// Fainted is derived state: HP has reached zero.
func (c *Combatant) Fainted() bool { return c.hp == 0 }

// Damage lowers HP by amount, clamped at zero. Damage never heals: a negative
// amount is treated as zero.
func (c *Combatant) Damage(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.hp -= amount
	if c.hp < 0 {
		c.hp = 0
	}
}

// restoreFull resets HP to the current maximum (gauntlet regeneration only;
// nothing inside a battle heals).
func (c *Combatant) restoreFull() { c.hp = c.MaxHP() }

// hpFraction returns current HP as a proportion of max, in [0, 1].
func (c *Combatant) hpFraction() float64 {
	max := c.MaxHP()
	if max <= 0 {
		return 0
	}
	return float64(c.hp) / float64(max)
}

// criterionValue extracts the stat an Optimised team sorts by.
func (c *Combatant) criterionValue(crit Criterion) int {
	switch crit {
	case CriterionHP:
		return c.hp
	case CriterionAttack:
		return c.Attack()
	case CriterionDefense:
		return c.Defense()
	case CriterionSpeed:
		return c.Speed()
	case CriterionLevel:
		return c.level
	default:
		return 0
	}
}

// knownMove reports whether the combatant's species owns the named move.
func (c *Combatant) knownMove(name string) (Move, bool) {
	for _, mv := range c.species.Moves {
		if mv.Name == name {
			return mv, true
		}
	}
	return Move{}, false
}
