package battle

import (
	"context"
	"errors"
	"testing"
)

func newTestEngine(t *testing.T, mode BattleMode, cfg EngineConfig, cat Catalog, teamA, teamB *Team, provA, provB ActionProvider) *Engine {
	t.Helper()
	eng, err := NewEngine(EngineParams{
		TeamA:     teamA,
		TeamB:     teamB,
		Mode:      mode,
		Criterion: CriterionHP,
		Chart:     DefaultTypeChart(),
		Catalog:   cat,
		ProviderA: provA,
		ProviderB: provB,
		Config:    cfg,
	})
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}
	return eng
}

func TestEngine_StrongTeamWins(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	teamA := mustTeam(SideA, "Ash",
		NewCombatant(0, "A0", cat["Bruiser"], 10),
		NewCombatant(1, "A1", cat["Bruiser"], 10))
	teamB := mustTeam(SideB, "Gary",
		NewCombatant(6, "B0", cat["Pushover"], 10),
		NewCombatant(7, "B1", cat["Pushover"], 10))

	eng := newTestEngine(t, ModeRotating, EngineConfig{}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	res, err := eng.RunBattle(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Outcome != OutcomeTeamAWins {
		t.Fatalf("outcome %s, want team_a_wins\n%s", res.Outcome, res.Log.Dump())
	}
	if res.Winner == nil || res.Winner.Name != "Ash" {
		t.Fatalf("winner %+v, want Ash", res.Winner)
	}
	if res.Rounds != 2 {
		t.Fatalf("expected 2 one-shot rounds, got %d\n%s", res.Rounds, res.Log.Dump())
	}
	if res.Survivors[SideA] != 2 || res.Survivors[SideB] != 0 {
		t.Fatalf("survivors %v, want A=2 B=0", res.Survivors)
	}
	if !res.Log.HasEntry("battle", "end", "team_a_wins") {
		t.Fatalf("missing end entry:\n%s", res.Log.Dump())
	}
}

func TestEngine_SetModeRetiresOnFirstFaint(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", cat["Bruiser"], 10))
	teamB := mustTeam(SideB, "Gary",
		NewCombatant(6, "B0", cat["Pushover"], 10),
		NewCombatant(7, "B1", cat["Pushover"], 10))

	eng := newTestEngine(t, ModeSet, EngineConfig{}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	res, err := eng.RunBattle(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// One faint ends the battle even though a standing reserve exists.
	if res.Outcome != OutcomeTeamAWins || res.Rounds != 1 {
		t.Fatalf("set mode outcome %s after %d rounds, want team_a_wins after 1\n%s",
			res.Outcome, res.Rounds, res.Log.Dump())
	}
	if res.Survivors[SideB] != 1 {
		t.Fatalf("reserve should survive untouched, survivors=%v", res.Survivors)
	}
}

func TestEngine_RotatingModeCyclesActives(t *testing.T) {
	// Weak mutual jabs so nobody faints in three rounds.
	jab := testSpecies("Jabber", TypeNormal,
		Stats{HP: 300, Attack: 10, Defense: 100, Speed: 10},
		mv("Jab", TypeNormal, 10))
	fastJab := testSpecies("FastJabber", TypeNormal,
		Stats{HP: 300, Attack: 10, Defense: 100, Speed: 80},
		mv("Jab", TypeNormal, 10))
	cat := testCatalog(jab, fastJab)

	teamA := mustTeam(SideA, "Ash",
		NewCombatant(0, "A0", fastJab, 10),
		NewCombatant(1, "A1", fastJab, 10),
		NewCombatant(2, "A2", fastJab, 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", jab, 10))

	eng := newTestEngine(t, ModeRotating, EngineConfig{}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	eng.Start()

	seen := map[string]struct{}{}
	for i := 0; i < 3; i++ {
		seen[eng.teamA.Active().Label()] = struct{}{}
		done, err := eng.StepRound()
		if err != nil {
			t.Fatalf("round %d failed: %v", i+1, err)
		}
		if done {
			t.Fatalf("battle ended unexpectedly at round %d\n%s", i+1, eng.Log().Dump())
		}
	}
	if len(seen) != 3 {
		t.Fatalf("rotation fielded %d of 3 members over 3 rounds", len(seen))
	}
}

func TestEngine_OptimisedRegroupViaProvider(t *testing.T) {
	tank := testSpecies("Tank", TypeNormal,
		Stats{HP: 300, Attack: 10, Defense: 200, Speed: 10},
		mv("Jab", TypeNormal, 10))
	frail := testSpecies("Leaf", TypeGrass,
		Stats{HP: 100, Attack: 10, Defense: 200, Speed: 10},
		mv("Vine", TypeGrass, 10))
	cat := testCatalog(tank, frail)

	teamA := mustTeam(SideA, "Ash",
		NewCombatant(0, "A0", frail, 10),
		NewCombatant(1, "A1", tank, 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", tank, 12))

	eng := newTestEngine(t, ModeOptimised, EngineConfig{}, cat, teamA, teamB,
		ScriptedProvider("Regroup"), FirstMoveProvider())
	eng.Start()

	if eng.teamA.Active().Label() != "A1" {
		t.Fatalf("optimised HP ordering should field A1 first, got %s", eng.teamA.Active().Label())
	}
	if _, err := eng.StepRound(); err != nil {
		t.Fatalf("round failed: %v", err)
	}
	if eng.Log().CountCategory("reorder", "special") != 1 {
		t.Fatalf("Regroup not recorded:\n%s", eng.Log().Dump())
	}
	// After flipping to ascending the low-HP member fields.
	if eng.teamA.Active().Label() != "A0" {
		t.Fatalf("Regroup should field A0, got %s", eng.teamA.Active().Label())
	}
}

func TestEngine_InvalidActionsExhaustRetries(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", cat["Bruiser"], 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", cat["Pushover"], 10))

	badProvider := func(_ Snapshot, _ *Combatant, _ []Action) (Action, error) {
		return Action{}, nil // nil actor, never legal
	}
	eng := newTestEngine(t, ModeRotating, EngineConfig{}, cat, teamA, teamB,
		badProvider, FirstMoveProvider())

	_, err := eng.RunBattle(context.Background())
	var invalid *InvalidActionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidActionError after retries, got %v", err)
	}
	if got := eng.Log().CountCategory("action", "rejected"); got != 3 {
		t.Fatalf("expected 3 rejected attempts, got %d\n%s", got, eng.Log().Dump())
	}
}

func TestEngine_UnknownMoveIsRejectedThenRetried(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	a0 := NewCombatant(0, "A0", cat["Bruiser"], 10)
	teamA := mustTeam(SideA, "Ash", a0)
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", cat["Pushover"], 10))

	// First submission names a move the species does not own; the engine
	// re-prompts and the second submission is legal.
	attempt := 0
	fussyProvider := func(_ Snapshot, active *Combatant, legal []Action) (Action, error) {
		attempt++
		if attempt == 1 {
			return Action{Actor: active, Move: mv("Hyper Beam", TypeNormal, 150)}, nil
		}
		return legal[0], nil
	}
	eng := newTestEngine(t, ModeRotating, EngineConfig{}, cat, teamA, teamB,
		fussyProvider, FirstMoveProvider())

	res, err := eng.RunBattle(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Outcome != OutcomeTeamAWins {
		t.Fatalf("outcome %s, want team_a_wins", res.Outcome)
	}
	if !eng.Log().HasEntry("action", "rejected", "move not owned by actor") {
		t.Fatalf("missing rejection entry:\n%s", eng.Log().Dump())
	}
}

func TestEngine_ContextCancellationAborts(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", cat["Bruiser"], 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", cat["Pushover"], 10))

	eng := newTestEngine(t, ModeRotating, EngineConfig{}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := eng.RunBattle(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res == nil || res.Outcome != OutcomeUndecided {
		t.Fatalf("aborted battle should report undecided partial result, got %+v", res)
	}
	if !eng.Log().HasEntry("battle", "aborted", "context canceled") {
		t.Fatalf("missing abort entry:\n%s", eng.Log().Dump())
	}
}

func TestEngine_RoundCapForcesDraw(t *testing.T) {
	// Mutually immune matchup: normal moves vs a ghost type and ghost moves
	// vs a normal type never connect.
	plain := testSpecies("Plainling", TypeNormal,
		Stats{HP: 50, Attack: 50, Defense: 50, Speed: 60},
		mv("Tackle", TypeNormal, 30))
	ghoul := testSpecies("Ghoul", TypeGhost,
		Stats{HP: 50, Attack: 50, Defense: 50, Speed: 40},
		mv("Lick", TypeGhost, 30))
	cat := testCatalog(plain, ghoul)

	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", plain, 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", ghoul, 10))

	eng := newTestEngine(t, ModeRotating, EngineConfig{MaxRounds: 5}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	res, err := eng.RunBattle(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Outcome != OutcomeDraw || res.Rounds != 5 {
		t.Fatalf("outcome %s after %d rounds, want draw at cap 5", res.Outcome, res.Rounds)
	}
	if _, ok := eng.Log().LastOf("battle", "round_cap"); !ok {
		t.Fatalf("missing round_cap entry:\n%s", eng.Log().Dump())
	}
	// Immune hits land for zero and still get logged.
	if eng.Log().CountCategory("damage", "dealt") == 0 {
		t.Fatalf("expected logged zero-damage hits:\n%s", eng.Log().Dump())
	}
}

func TestEngine_SimultaneousDoubleFaintIsDraw(t *testing.T) {
	mirror := testSpecies("Mirror", TypeNormal,
		Stats{HP: 10, Attack: 200, Defense: 10, Speed: 50},
		mv("Slam", TypeNormal, 80))
	cat := testCatalog(mirror)

	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", mirror, 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", mirror, 10))

	eng := newTestEngine(t, ModeRotating, EngineConfig{}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	res, err := eng.RunBattle(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Outcome != OutcomeDraw {
		t.Fatalf("outcome %s, want draw\n%s", res.Outcome, res.Log.Dump())
	}
	if res.Survivors[SideA] != 0 || res.Survivors[SideB] != 0 {
		t.Fatalf("survivors %v, want none", res.Survivors)
	}
}

func TestEngine_GrantsExperienceOnFaint(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	// Victor level 5 needs 250 XP to level; the level 13 victim yields 260.
	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", cat["Bruiser"], 5))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", cat["Pushover"], 13))

	eng := newTestEngine(t, ModeRotating, EngineConfig{GrantExperience: true}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	res, err := eng.RunBattle(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Outcome != OutcomeTeamAWins {
		t.Fatalf("outcome %s, want team_a_wins\n%s", res.Outcome, res.Log.Dump())
	}
	if len(res.LevelUps) != 1 || res.LevelUps[0].ToLevel != 6 {
		t.Fatalf("level ups %+v, want one to level 6", res.LevelUps)
	}
	if eng.Log().CountCategory("xp", "level_up") != 1 {
		t.Fatalf("missing level_up entry:\n%s", eng.Log().Dump())
	}
}

func TestEngine_RoundFatigueDrainsBothSurvivors(t *testing.T) {
	jab := testSpecies("Jabber", TypeNormal,
		Stats{HP: 300, Attack: 10, Defense: 100, Speed: 10},
		mv("Jab", TypeNormal, 10))
	fastJab := testSpecies("FastJabber", TypeNormal,
		Stats{HP: 300, Attack: 10, Defense: 100, Speed: 80},
		mv("Jab", TypeNormal, 10))
	cat := testCatalog(jab, fastJab)

	a0 := NewCombatant(0, "A0", fastJab, 10)
	b0 := NewCombatant(6, "B0", jab, 10)
	teamA := mustTeam(SideA, "Ash", a0)
	teamB := mustTeam(SideB, "Gary", b0)

	eng := newTestEngine(t, ModeRotating, EngineConfig{RoundFatigue: true}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	eng.Start()
	if _, err := eng.StepRound(); err != nil {
		t.Fatalf("round failed: %v", err)
	}

	if eng.Log().CountCategory("damage", "fatigue") != 1 {
		t.Fatalf("missing fatigue entry:\n%s", eng.Log().Dump())
	}
	// Each side lost its minimum-1 jab damage plus exactly 1 fatigue HP.
	wantLoss := 1 + 1
	if a0.MaxHP()-a0.HP() != wantLoss || b0.MaxHP()-b0.HP() != wantLoss {
		t.Fatalf("HP losses A=%d B=%d, want %d each",
			a0.MaxHP()-a0.HP(), b0.MaxHP()-b0.HP(), wantLoss)
	}
}

func TestEngine_VerboseLogsHPSnapshots(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", cat["Bruiser"], 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", cat["Pushover"], 10))

	eng := newTestEngine(t, ModeRotating, EngineConfig{Verbose: true}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	if _, err := eng.RunBattle(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if eng.Log().CountCategory("state", "hp") == 0 {
		t.Fatalf("verbose run recorded no HP snapshots:\n%s", eng.Log().Dump())
	}
}

func TestEngine_PokedexFillsFromOpposingActives(t *testing.T) {
	cat := testCatalog(bruiserSpecies(), pushoverSpecies())
	teamA := mustTeam(SideA, "Ash", NewCombatant(0, "A0", cat["Bruiser"], 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", cat["Pushover"], 10))

	eng := newTestEngine(t, ModeRotating, EngineConfig{}, cat, teamA, teamB,
		FirstMoveProvider(), FirstMoveProvider())
	if _, err := eng.RunBattle(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// Both species are normal-type; each trainer has seen exactly that one.
	if got := teamA.Trainer().SeenTypes(); got != 1 {
		t.Fatalf("trainer A saw %d types, want 1", got)
	}
	if got := teamB.Trainer().SeenTypes(); got != 1 {
		t.Fatalf("trainer B saw %d types, want 1", got)
	}
}

func TestEngine_OptimisedStartSkipsFaintedMember(t *testing.T) {
	// CriterionAttack would sort the fainted heavy hitter to the front; the
	// battle must open with the standing member and run to a clean result.
	striker := testSpecies("Striker", TypeNormal,
		Stats{HP: 100, Attack: 60, Defense: 60, Speed: 60},
		mv("Strike", TypeNormal, 40))
	cat := testCatalog(bruiserSpecies(), pushoverSpecies(), striker)

	heavy := NewCombatant(0, "A0", cat["Bruiser"], 10)
	heavy.Damage(heavy.MaxHP())
	teamA := mustTeam(SideA, "Ash", heavy, NewCombatant(1, "A1", striker, 10))
	teamB := mustTeam(SideB, "Gary", NewCombatant(6, "B0", cat["Pushover"], 10))

	eng, err := NewEngine(EngineParams{
		TeamA:     teamA,
		TeamB:     teamB,
		Mode:      ModeOptimised,
		Criterion: CriterionAttack,
		Chart:     DefaultTypeChart(),
		Catalog:   cat,
		ProviderA: FirstMoveProvider(),
		ProviderB: FirstMoveProvider(),
	})
	if err != nil {
		t.Fatalf("engine build failed: %v", err)
	}
	eng.Start()
	if got := teamA.Active(); got == nil || got.Label() != "A1" {
		t.Fatalf("initial active = %v, want the standing A1", got)
	}
	res, err := eng.RunBattle(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, eng.Log().Dump())
	}
	if res.Outcome != OutcomeTeamAWins {
		t.Fatalf("outcome %s, want team_a_wins\n%s", res.Outcome, res.Log.Dump())
	}
}
