package battle

import "math"

// --- Experience & evolution ---

// Experience thresholds and yields are explicit configuration: the gain for
// downing an opponent scales with the defeated combatant's level, and leaving
// level L costs L * xpPerLevelStep.
const (
	defaultXPYieldPerLevel = 20
	xpPerLevelStep         = 50
)

// ExperienceConfig tunes the post-faint reward curve.
type ExperienceConfig struct {
	YieldPerLevel int // XP granted per level of the defeated combatant
}

// DefaultExperienceConfig returns the standard reward curve.
func DefaultExperienceConfig() ExperienceConfig {
	return ExperienceConfig{YieldPerLevel: defaultXPYieldPerLevel}
}

// LevelChangeEvent records one level-up, and the evolution it triggered if
// the new level reached the species' trigger.
type LevelChangeEvent struct {
	Label       string
	FromLevel   int
	ToLevel     int
	Evolved     bool
	FromSpecies string
	ToSpecies   string
}

// xpToNext is the experience needed to leave the given level.
func xpToNext(level int) int { return level * xpPerLevelStep }

// AwardExperience grants the victor experience for the defeated combatant and
// applies any resulting level-ups and evolutions. Stats are recomputed on each
// level change; current HP keeps its proportion of the new maximum (a level-up
// never revives and never reduces a living combatant to zero).
//
// Evolution is an identity-preserving transition: the same Combatant instance
// swaps its species reference in place, one way only.
func AwardExperience(victor, defeated *Combatant, catalog Catalog, cfg ExperienceConfig) ([]LevelChangeEvent, error) {
	if victor == nil || defeated == nil {
		return nil, configErrorf("experience award needs both victor and defeated")
	}
	if cfg.YieldPerLevel <= 0 {
		cfg = DefaultExperienceConfig()
	}
	victor.xp += defeated.level * cfg.YieldPerLevel

	var events []LevelChangeEvent
	for victor.xp >= xpToNext(victor.level) {
		victor.xp -= xpToNext(victor.level)
		ev, err := levelUp(victor, catalog)
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// levelUp raises the level by one, rescales HP to preserve its proportion,
// and evolves the species if the new level reaches the trigger.
func levelUp(c *Combatant, catalog Catalog) (LevelChangeEvent, error) {
	ev := LevelChangeEvent{
		Label:       c.label,
		FromLevel:   c.level,
		FromSpecies: c.species.Name,
	}

	frac := c.hpFraction()
	wasAlive := !c.Fainted()
	c.level++
	ev.ToLevel = c.level
	ev.ToSpecies = c.species.Name

	if c.species.EvolvesInto != "" && c.level >= c.species.EvolveLevel {
		next, err := catalog.Lookup(c.species.EvolvesInto)
		if err != nil {
			return ev, err
		}
		c.species = next
		ev.Evolved = true
		ev.ToSpecies = next.Name
	}

	c.hp = int(math.Round(frac * float64(c.MaxHP())))
	if wasAlive && c.hp < 1 {
		c.hp = 1
	}
	if c.hp > c.MaxHP() {
		c.hp = c.MaxHP()
	}
	return ev, nil
}
