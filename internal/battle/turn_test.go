package battle

import "testing"

func newSideCtx(t *testing.T, side Side, mode BattleMode, c *Combatant) sideCtx {
	t.Helper()
	team := mustTeam(side, "T"+side.String(), c)
	strat, err := NewStrategy(mode, 0)
	if err != nil {
		t.Fatalf("strategy build failed: %v", err)
	}
	strat.SelectInitialActive(team)
	return sideCtx{team: team, strat: strat, action: Action{Actor: c, Move: c.species.Moves[0]}}
}

func newResolver(verbose bool) *turnResolver {
	return &turnResolver{chart: DefaultTypeChart(), log: NewBattleLog(verbose), pokedexCap: defaultPokedexCap}
}

func TestResolveRound_FasterActsFirstAndFaintSkipsSlower(t *testing.T) {
	tr := newResolver(false)
	fast := NewCombatant(0, "A0", bruiserSpecies(), 10)
	slow := NewCombatant(6, "B0", pushoverSpecies(), 10)
	a := newSideCtx(t, SideA, ModeSet, fast)
	b := newSideCtx(t, SideB, ModeSet, slow)

	out, err := tr.resolveRound(1, a, b)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !out.faintedB || out.faintedA {
		t.Fatalf("expected only the slow side to faint: %+v", out)
	}
	if !slow.Fainted() {
		t.Fatalf("slow combatant should be down, HP=%d", slow.HP())
	}
	if fast.HP() != fast.MaxHP() {
		t.Fatalf("skipped action still dealt damage: HP %d/%d", fast.HP(), fast.MaxHP())
	}
	if !tr.log.HasEntry("action", "skipped", "fainted before acting") {
		t.Fatalf("missing skip entry in log:\n%s", tr.log.Dump())
	}
	if tr.log.CountCategory("action", "attack") != 1 {
		t.Fatalf("expected exactly one attack, log:\n%s", tr.log.Dump())
	}
}

func TestResolveRound_SlowerRetaliatesWhenSurviving(t *testing.T) {
	tr := newResolver(false)
	spFast := testSpecies("Jab", TypeNormal, Stats{HP: 100, Attack: 50, Defense: 50, Speed: 100}, mv("Jab", TypeNormal, 20))
	spSlow := testSpecies("Counter", TypeNormal, Stats{HP: 100, Attack: 50, Defense: 50, Speed: 40}, mv("Counter", TypeNormal, 20))
	fast := NewCombatant(0, "A0", spFast, 10)
	slow := NewCombatant(6, "B0", spSlow, 10)
	a := newSideCtx(t, SideA, ModeSet, fast)
	b := newSideCtx(t, SideB, ModeSet, slow)

	out, err := tr.resolveRound(1, a, b)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out.faintedA || out.faintedB {
		t.Fatalf("weak jabs should faint no one: %+v", out)
	}
	if fast.HP() == fast.MaxHP() || slow.HP() == slow.MaxHP() {
		t.Fatalf("both sides should have taken damage: A %d/%d, B %d/%d",
			fast.HP(), fast.MaxHP(), slow.HP(), slow.MaxHP())
	}
	if tr.log.CountCategory("action", "attack") != 2 {
		t.Fatalf("expected two attacks, log:\n%s", tr.log.Dump())
	}
}

func TestResolveRound_SpeedTieResolvesSimultaneously(t *testing.T) {
	tr := newResolver(false)
	// Identical species: equal speed, and each one-shots the other.
	mirror := testSpecies("Mirror", TypeNormal,
		Stats{HP: 10, Attack: 200, Defense: 10, Speed: 50},
		mv("Slam", TypeNormal, 80))
	ca := NewCombatant(0, "A0", mirror, 10)
	cb := NewCombatant(6, "B0", mirror, 10)
	a := newSideCtx(t, SideA, ModeSet, ca)
	b := newSideCtx(t, SideB, ModeSet, cb)

	out, err := tr.resolveRound(1, a, b)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !out.faintedA || !out.faintedB {
		t.Fatalf("simultaneous lethal hits should faint both: %+v", out)
	}
	if !ca.Fainted() || !cb.Fainted() {
		t.Fatalf("both combatants should be down: A=%d B=%d", ca.HP(), cb.HP())
	}
	if tr.log.CountCategory("action", "simultaneous") != 1 {
		t.Fatalf("missing simultaneous marker, log:\n%s", tr.log.Dump())
	}
	// Neither action may be skipped in the tie case.
	if tr.log.CountCategory("action", "skipped") != 0 {
		t.Fatalf("tie round skipped an action, log:\n%s", tr.log.Dump())
	}
	if tr.log.CountCategory("faint", "down") != 2 {
		t.Fatalf("expected two faint entries, log:\n%s", tr.log.Dump())
	}
}

func TestResolveRound_SpeedTieUsesPreRoundState(t *testing.T) {
	tr := newResolver(false)
	// Equal speed, moderate power: both hits land even though the first
	// committed hit would have fainted the defender under ordered rules.
	glass := testSpecies("Glass", TypeNormal,
		Stats{HP: 10, Attack: 200, Defense: 10, Speed: 50},
		mv("Slam", TypeNormal, 80))
	ca := NewCombatant(0, "A0", glass, 10)
	cb := NewCombatant(6, "B0", glass, 10)
	a := newSideCtx(t, SideA, ModeSet, ca)
	b := newSideCtx(t, SideB, ModeSet, cb)

	if _, err := tr.resolveRound(1, a, b); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	dealt := tr.log.Filter("damage", "dealt")
	if len(dealt) != 2 {
		t.Fatalf("expected both damages recorded, got %d", len(dealt))
	}
	if dealt[0].NumVal != dealt[1].NumVal {
		t.Fatalf("symmetric tie dealt asymmetric damage: %v vs %v", dealt[0].NumVal, dealt[1].NumVal)
	}
}

func TestExecuteAction_FaintedActorIsInvariantViolation(t *testing.T) {
	tr := newResolver(false)
	ca := NewCombatant(0, "A0", pushoverSpecies(), 10)
	cb := NewCombatant(6, "B0", pushoverSpecies(), 10)
	a := newSideCtx(t, SideA, ModeSet, ca)
	b := newSideCtx(t, SideB, ModeSet, cb)

	ca.Damage(ca.MaxHP())
	err := tr.executeAction(1, a, b)
	if _, ok := err.(*StateInvariantError); !ok {
		t.Fatalf("expected StateInvariantError, got %v", err)
	}
}

func TestResolveOrdered_MarksEachSidesActionState(t *testing.T) {
	// Weak mutual jabs: both actions land, so the state walks through both
	// executed markers and rests on the slower side's.
	spFast := testSpecies("Jab", TypeNormal, Stats{HP: 100, Attack: 50, Defense: 50, Speed: 100}, mv("Jab", TypeNormal, 20))
	spSlow := testSpecies("Counter", TypeNormal, Stats{HP: 100, Attack: 50, Defense: 50, Speed: 40}, mv("Counter", TypeNormal, 20))

	tr := newResolver(false)
	a := newSideCtx(t, SideA, ModeSet, NewCombatant(0, "A0", spFast, 10))
	b := newSideCtx(t, SideB, ModeSet, NewCombatant(6, "B0", spSlow, 10))
	out := roundOutcome{state: RoundOrderingComputed}
	if _, _, err := tr.resolveOrdered(1, a, b, &out); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out.state != RoundActionBExecuted {
		t.Fatalf("state %s, want action_b_executed after the slower side acts", out.state)
	}

	// Same matchup with the sides swapped: side A acts second and its marker
	// is the last one set.
	tr = newResolver(false)
	a = newSideCtx(t, SideA, ModeSet, NewCombatant(0, "A0", spSlow, 10))
	b = newSideCtx(t, SideB, ModeSet, NewCombatant(6, "B0", spFast, 10))
	out = roundOutcome{state: RoundOrderingComputed}
	if _, _, err := tr.resolveOrdered(1, b, a, &out); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out.state != RoundActionAExecuted {
		t.Fatalf("state %s, want action_a_executed after side A acts second", out.state)
	}
}

func TestResolveOrdered_SkippedActionLeavesMarkerUnset(t *testing.T) {
	tr := newResolver(false)
	a := newSideCtx(t, SideA, ModeSet, NewCombatant(0, "A0", bruiserSpecies(), 10))
	b := newSideCtx(t, SideB, ModeSet, NewCombatant(6, "B0", pushoverSpecies(), 10))

	out := roundOutcome{state: RoundOrderingComputed}
	if _, _, err := tr.resolveOrdered(1, a, b, &out); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out.state != RoundActionAExecuted {
		t.Fatalf("state %s, want action_a_executed with the slower action skipped", out.state)
	}
}
