package battle

import "testing"

func TestCombatant_DamageClamps(t *testing.T) {
	c := NewCombatant(0, "A0", pushoverSpecies(), 10)
	max := c.MaxHP()
	if c.HP() != max {
		t.Fatalf("new combatant HP %d, want full %d", c.HP(), max)
	}

	c.Damage(-5)
	if c.HP() != max {
		t.Fatalf("negative damage healed: HP %d, want %d", c.HP(), max)
	}

	c.Damage(max + 100)
	if c.HP() != 0 || !c.Fainted() {
		t.Fatalf("overkill did not floor at zero: HP %d fainted=%v", c.HP(), c.Fainted())
	}

	c.restoreFull()
	if c.HP() != max || c.Fainted() {
		t.Fatalf("restore did not refill: HP %d/%d", c.HP(), max)
	}
}

func TestCombatant_HPFraction(t *testing.T) {
	c := NewCombatant(0, "A0", bruiserSpecies(), 10)
	c.Damage(c.MaxHP() / 2)
	frac := c.hpFraction()
	if frac <= 0.4 || frac > 0.6 {
		t.Fatalf("half-damaged fraction %v, want about 0.5", frac)
	}
}

func TestNewTeam_Validation(t *testing.T) {
	sp := pushoverSpecies()
	c0 := NewCombatant(0, "A0", sp, 5)

	if _, err := NewTeam(SideA, NewTrainer("X"), nil); err == nil {
		t.Fatalf("expected error for empty team")
	}
	if _, err := NewTeam(SideA, nil, []*Combatant{c0}); err == nil {
		t.Fatalf("expected error for nil trainer")
	}
	if _, err := NewTeam(SideA, NewTrainer("X"), []*Combatant{c0, c0}); err == nil {
		t.Fatalf("expected error for duplicate combatant")
	}
	if _, err := NewTeam(SideA, NewTrainer("X"), []*Combatant{c0, nil}); err == nil {
		t.Fatalf("expected error for nil combatant")
	}

	over := make([]*Combatant, TeamLimit+1)
	for i := range over {
		over[i] = NewCombatant(i, Label(SideA, i), sp, 5)
	}
	if _, err := NewTeam(SideA, NewTrainer("X"), over); err == nil {
		t.Fatalf("expected error for team above limit %d", TeamLimit)
	}
}

func TestTeam_CycleAndDrop(t *testing.T) {
	sp := pushoverSpecies()
	c0 := NewCombatant(0, "A0", sp, 5)
	c1 := NewCombatant(1, "A1", sp, 5)
	c2 := NewCombatant(2, "A2", sp, 5)
	team := mustTeam(SideA, "X", c0, c1, c2)

	if team.Active() != c0 {
		t.Fatalf("initial active %v, want A0", team.Active().Label())
	}
	team.cycleActive()
	if team.Active() != c1 {
		t.Fatalf("after cycle active %v, want A1", team.Active().Label())
	}
	team.cycleActive()
	team.cycleActive()
	if team.Active() != c0 {
		t.Fatalf("full rotation did not return to A0, got %v", team.Active().Label())
	}

	c0.Damage(c0.MaxHP())
	team.dropFainted()
	if team.Active() != c1 || len(team.order) != 2 {
		t.Fatalf("dropFainted kept fainted front: active=%v order=%d", team.Active().Label(), len(team.order))
	}
	if team.AliveCount() != 2 || team.Defeated() {
		t.Fatalf("team with 2 standing members reported alive=%d defeated=%v", team.AliveCount(), team.Defeated())
	}
}

func TestTeam_SortOrderAndTieBreak(t *testing.T) {
	fast := testSpecies("Fast", TypeNormal, Stats{HP: 50, Attack: 50, Defense: 50, Speed: 200}, mv("Hit", TypeNormal, 40))
	slow := testSpecies("Slow", TypeNormal, Stats{HP: 50, Attack: 50, Defense: 50, Speed: 50}, mv("Hit", TypeNormal, 40))

	c0 := NewCombatant(0, "A0", slow, 10)
	c1 := NewCombatant(1, "A1", fast, 10)
	c2 := NewCombatant(2, "A2", slow, 10) // ties with A0 on every stat
	team := mustTeam(SideA, "X", c0, c1, c2)

	team.sortOrder(CriterionSpeed, false)
	if team.order[0] != c1 {
		t.Fatalf("descending speed sort put %v first, want A1", team.order[0].Label())
	}
	// Equal-speed members keep original fielding order.
	if team.order[1] != c0 || team.order[2] != c2 {
		t.Fatalf("tie-break violated roster order: got %v, %v", team.order[1].Label(), team.order[2].Label())
	}

	team.sortOrder(CriterionSpeed, true)
	if team.order[0] != c0 || team.order[1] != c2 || team.order[2] != c1 {
		t.Fatalf("ascending sort wrong: got %v, %v, %v",
			team.order[0].Label(), team.order[1].Label(), team.order[2].Label())
	}
}

func TestTrainer_PokedexCompletion(t *testing.T) {
	tr := NewTrainer("Red")
	if tr.Completion() != 0 {
		t.Fatalf("fresh trainer completion %v, want 0", tr.Completion())
	}
	tr.RegisterSighting(TypeFire, TypeWater, TypeFire)
	want := 2.0 / float64(NumTypes)
	if tr.Completion() != want {
		t.Fatalf("completion after 2 distinct types = %v, want %v", tr.Completion(), want)
	}
	// Re-sighting never decreases completion.
	tr.RegisterSighting(TypeFire)
	if tr.Completion() != want {
		t.Fatalf("duplicate sighting changed completion to %v", tr.Completion())
	}
}

func TestNewTeam_FaintedExcludedFromOrdering(t *testing.T) {
	down := NewCombatant(0, "A0", bruiserSpecies(), 10)
	down.Damage(down.MaxHP())
	up := NewCombatant(1, "A1", pushoverSpecies(), 10)

	team := mustTeam(SideA, "Red", down, up)
	if team.Active() != up {
		t.Fatalf("active = %v, want the standing combatant", team.Active())
	}
	if len(team.Roster()) != 2 {
		t.Fatalf("roster shrank to %d, fainted members must stay listed", len(team.Roster()))
	}
	if team.Defeated() {
		t.Fatalf("team with a standing member reported defeated")
	}

	allDown := NewCombatant(2, "B0", pushoverSpecies(), 10)
	allDown.Damage(allDown.MaxHP())
	solo := mustTeam(SideB, "Blue", allDown)
	if solo.Active() != nil {
		t.Fatalf("fully fainted team still fields an active: %v", solo.Active())
	}
	if !solo.Defeated() {
		t.Fatalf("fully fainted team not reported defeated")
	}
}
