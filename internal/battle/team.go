package battle

import "sort"

// TeamLimit caps how many combatants a team may field.
const TeamLimit = 6

// Side identifies which of the two benches a team occupies.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Team is an ordered sequence of combatants under one trainer for one battle.
// The battle ordering (order) is what mode strategies manipulate; the roster
// keeps the original fielding order for stable tie-breaks and reporting.
type Team struct {
	side    Side
	trainer *Trainer
	roster  []*Combatant // original fielding order, never reordered
	order   []*Combatant // current battle ordering; order[0] is active
	retired bool         // Set mode: active faint ends the battle for this team
}

// NewTeam fields a team. Team size must be in [1, TeamLimit] and no combatant
// may appear twice.
func NewTeam(side Side, trainer *Trainer, combatants []*Combatant) (*Team, error) {
	if trainer == nil {
		return nil, configErrorf("team %s has no trainer", side)
	}
	if len(combatants) == 0 || len(combatants) > TeamLimit {
		return nil, configErrorf("team %s size %d outside [1, %d]", side, len(combatants), TeamLimit)
	}
	seen := make(map[*Combatant]struct{}, len(combatants))
	for _, c := range combatants {
		if c == nil {
			return nil, configErrorf("team %s contains nil combatant", side)
		}
		if _, dup := seen[c]; dup {
			return nil, configErrorf("team %s fields combatant %s twice", side, c.label)
		}
		seen[c] = struct{}{}
	}
	t := &Team{side: side, trainer: trainer}
	t.roster = append(t.roster, combatants...)
	// Fainted combatants stay on the roster for reporting but never enter
	// the battle ordering: order[0] must always be a standing combatant.
	for _, c := range combatants {
		if !c.Fainted() {
			t.order = append(t.order, c)
		}
	}
	return t, nil
}

func (t *Team) Side() Side          { return t.side }
func (t *Team) Trainer() *Trainer   { return t.trainer }
func (t *Team) Roster() []*Combatant { return t.roster }

// Active returns the combatant currently eligible to act, or nil once the
// team is out of the battle.
func (t *Team) Active() *Combatant {
	if t.retired || len(t.order) == 0 {
		return nil
	}
	return t.order[0]
}

// AliveCount counts non-fainted roster members.
func (t *Team) AliveCount() int {
	n := 0
	for _, c := range t.roster {
		if !c.Fainted() {
			n++
		}
	}
	return n
}

// Defeated reports the team's terminal state: retired by its mode, or no
// non-fainted combatants left.
func (t *Team) Defeated() bool {
	return t.retired || t.AliveCount() == 0
}

// rosterIndex returns a combatant's position in the original fielding order.
func (t *Team) rosterIndex(c *Combatant) int {
	for i, rc := range t.roster {
		if rc == c {
			return i
		}
	}
	return len(t.roster)
}

// cycleActive moves the active combatant to the back of the battle ordering.
func (t *Team) cycleActive() {
	if len(t.order) < 2 {
		return
	}
	front := t.order[0]
	copy(t.order, t.order[1:])
	t.order[len(t.order)-1] = front
}

// dropFainted removes fainted combatants from the battle ordering,
// preserving relative order.
func (t *Team) dropFainted() {
	kept := t.order[:0]
	for _, c := range t.order {
		if !c.Fainted() {
			kept = append(kept, c)
		}
	}
	t.order = kept
}

// sortOrder re-sorts the battle ordering by the criterion. Descending unless
// ascending is set; ties break on original roster order, keeping the sort
// deterministic.
func (t *Team) sortOrder(crit Criterion, ascending bool) {
	sort.SliceStable(t.order, func(i, j int) bool {
		vi := t.order[i].criterionValue(crit)
		vj := t.order[j].criterionValue(crit)
		if vi != vj {
			if ascending {
				return vi < vj
			}
			return vi > vj
		}
		return t.rosterIndex(t.order[i]) < t.rosterIndex(t.order[j])
	})
}
