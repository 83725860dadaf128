package battle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// --- Engine configuration ---

// EngineConfig holds the knobs a battle runs under. The zero value is usable:
// defaults are filled in by NewEngine.
type EngineConfig struct {
	// PokedexCap bounds the Pokédex damage multiplier (default 1.5).
	PokedexCap float64
	// RoundFatigue makes both standing combatants lose 1 HP at the end of a
	// round in which neither fainted.
	RoundFatigue bool
	// MaxActionRetries is how often an invalid action is re-requested from
	// the same provider before the battle fails (default 3).
	MaxActionRetries int
	// MaxRounds aborts a battle that somehow fails to terminate; 0 = no cap.
	MaxRounds int
	// GrantExperience awards XP to the standing combatant after each faint.
	GrantExperience bool
	// Experience tunes the reward curve when GrantExperience is on.
	Experience ExperienceConfig
	// Verbose also records per-action HP snapshots in the log.
	Verbose bool
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.PokedexCap < 1 {
		c.PokedexCap = defaultPokedexCap
	}
	if c.MaxActionRetries <= 0 {
		c.MaxActionRetries = 3
	}
	if c.Experience.YieldPerLevel <= 0 {
		c.Experience = DefaultExperienceConfig()
	}
	return c
}

// --- Action selection ---

// TeamSnapshot is the read-only view of one team handed to action providers.
type TeamSnapshot struct {
	Trainer    string
	Active     string
	Combatants []CombatantResult
}

// Snapshot is the read-only battle state handed to action providers each
// round.
type Snapshot struct {
	BattleID string
	Round    int
	Mode     BattleMode
	Own      TeamSnapshot
	Opponent TeamSnapshot
}

// ActionProvider supplies one side's action each round: a human UI, a
// scripted AI, or a test harness. The engine never hardcodes a decision
// policy. Returning an error aborts the battle.
type ActionProvider func(state Snapshot, active *Combatant, legal []Action) (Action, error)

// --- Engine ---

// EngineParams collects everything a battle needs up front.
type EngineParams struct {
	TeamA, TeamB         *Team
	Mode                 BattleMode
	Criterion            Criterion // Optimised mode only
	Chart                *TypeChart
	Catalog              Catalog
	ProviderA, ProviderB ActionProvider
	Config               EngineConfig
}

// Engine orchestrates a full encounter: it owns the two teams for the
// battle's duration, consults the mode strategies around every turn, and
// drives the round loop to a terminal result.
type Engine struct {
	id             string
	mode           BattleMode
	teamA, teamB   *Team
	stratA, stratB ModeStrategy
	chart          *TypeChart
	catalog        Catalog
	provA, provB   ActionProvider
	cfg            EngineConfig
	log            *BattleLog
	resolver       *turnResolver

	started  bool
	round    int
	outcome  BattleOutcome
	levelUps []LevelChangeEvent
	seenByA  map[*Combatant]struct{}
	seenByB  map[*Combatant]struct{}
}

// NewEngine validates the setup and prepares a battle. Each side gets its own
// strategy instance so per-battle mode state (Optimised sort direction) never
// leaks across teams.
func NewEngine(p EngineParams) (*Engine, error) {
	if p.TeamA == nil || p.TeamB == nil {
		return nil, configErrorf("battle needs two teams")
	}
	if p.Chart == nil {
		return nil, configErrorf("battle needs a type chart")
	}
	if p.ProviderA == nil || p.ProviderB == nil {
		return nil, configErrorf("battle needs an action provider per side")
	}
	stratA, err := NewStrategy(p.Mode, p.Criterion)
	if err != nil {
		return nil, err
	}
	stratB, err := NewStrategy(p.Mode, p.Criterion)
	if err != nil {
		return nil, err
	}
	cfg := p.Config.withDefaults()
	log := NewBattleLog(cfg.Verbose)
	return &Engine{
		id:       uuid.NewString(),
		mode:     p.Mode,
		teamA:    p.TeamA,
		teamB:    p.TeamB,
		stratA:   stratA,
		stratB:   stratB,
		chart:    p.Chart,
		catalog:  p.Catalog,
		provA:    p.ProviderA,
		provB:    p.ProviderB,
		cfg:      cfg,
		log:      log,
		resolver: &turnResolver{chart: p.Chart, log: log, pokedexCap: cfg.PokedexCap},
		seenByA:  make(map[*Combatant]struct{}),
		seenByB:  make(map[*Combatant]struct{}),
	}, nil
}

// ID returns the battle's correlation ID.
func (e *Engine) ID() string { return e.id }

// Log exposes the ordered turn log, consistent up to the last completed
// round even after an abort.
func (e *Engine) Log() *BattleLog { return e.log }

// Round returns the current round number.
func (e *Engine) Round() int { return e.round }

// Start establishes the initial actives and Pokédex state. Idempotent; called
// implicitly by RunBattle and StepRound.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true
	e.stratA.SelectInitialActive(e.teamA)
	e.stratB.SelectInitialActive(e.teamB)

	// Trainers know their own roster before the first round.
	for _, c := range e.teamA.roster {
		e.teamA.trainer.RegisterSighting(c.species.Types...)
	}
	for _, c := range e.teamB.roster {
		e.teamB.trainer.RegisterSighting(c.species.Types...)
	}

	e.log.Add(0, "--", "--", "battle", "start",
		fmt.Sprintf("%s vs %s mode=%s", e.teamA.trainer.Name, e.teamB.trainer.Name, e.mode), 0)
}

// StepRound plays one round. It returns done=true once the battle has
// reached a terminal result.
func (e *Engine) StepRound() (done bool, err error) {
	e.Start()
	if e.checkTerminal() {
		e.log.Add(e.round, "--", "--", "battle", "end", e.outcome.String(), 0)
		return true, nil
	}
	if e.cfg.MaxRounds > 0 && e.round >= e.cfg.MaxRounds {
		e.log.Add(e.round, "--", "--", "battle", "round_cap", "battle stopped at round cap", 0)
		e.outcome = OutcomeDraw
		return true, nil
	}
	e.round++
	if err := e.playRound(); err != nil {
		e.log.Add(e.round, "--", "--", "battle", "error", err.Error(), 0)
		return true, err
	}
	if e.checkTerminal() {
		e.log.Add(e.round, "--", "--", "battle", "end", e.outcome.String(), 0)
		return true, nil
	}
	return false, nil
}

// Result assembles the structured battle output, consistent up to the last
// completed round.
func (e *Engine) Result() *BattleResult { return e.result() }

// RunBattle drives the turn loop to a terminal result. The context is the
// clean abort point: cancellation is honoured between rounds, never mid-turn.
func (e *Engine) RunBattle(ctx context.Context) (*BattleResult, error) {
	e.Start()
	for {
		if err := ctx.Err(); err != nil {
			e.log.Add(e.round, "--", "--", "battle", "aborted", err.Error(), 0)
			return e.result(), err
		}
		done, err := e.StepRound()
		if err != nil {
			return e.result(), err
		}
		if done {
			break
		}
	}
	return e.result(), nil
}

// playRound collects one action per side, resolves them, and applies
// end-of-round effects.
func (e *Engine) playRound() error {
	activeA := e.teamA.Active()
	activeB := e.teamB.Active()
	if activeA == nil || activeB == nil || activeA.Fainted() || activeB.Fainted() {
		return &StateInvariantError{Round: e.round, Msg: "round started without two standing actives"}
	}

	// New opposing appearances fill the Pokédex mid-battle.
	if _, ok := e.seenByA[activeB]; !ok {
		e.seenByA[activeB] = struct{}{}
		e.teamA.trainer.RegisterSighting(activeB.species.Types...)
	}
	if _, ok := e.seenByB[activeA]; !ok {
		e.seenByB[activeA] = struct{}{}
		e.teamB.trainer.RegisterSighting(activeA.species.Types...)
	}

	actionA, err := e.collectAction(SideA)
	if err != nil {
		return err
	}
	actionB, err := e.collectAction(SideB)
	if err != nil {
		return err
	}

	e.log.AddVerbose(e.round, activeA.label, "A", "state", "hp",
		fmt.Sprintf("%d/%d", activeA.hp, activeA.MaxHP()), float64(activeA.hp))
	e.log.AddVerbose(e.round, activeB.label, "B", "state", "hp",
		fmt.Sprintf("%d/%d", activeB.hp, activeB.MaxHP()), float64(activeB.hp))

	sideA := sideCtx{team: e.teamA, strat: e.stratA, action: actionA}
	sideB := sideCtx{team: e.teamB, strat: e.stratB, action: actionB}
	out, err := e.resolver.resolveRound(e.round, sideA, sideB)
	if err != nil {
		return err
	}

	e.awardForFaints(out, actionA, actionB)

	// Round fatigue: a round where both combatants stand costs each 1 HP.
	if e.cfg.RoundFatigue && !out.faintedA && !out.faintedB &&
		!actionA.Actor.Fainted() && !actionB.Actor.Fainted() {
		actionA.Actor.Damage(1)
		actionB.Actor.Damage(1)
		e.log.Add(e.round, "--", "--", "damage", "fatigue", "both standing combatants lose 1 HP", 1)
		if actionA.Actor.Fainted() {
			out.faintedA = true
			e.resolver.faint(e.round, sideA)
		}
		if actionB.Actor.Fainted() {
			out.faintedB = true
			e.resolver.faint(e.round, sideB)
		}
		e.awardForFaints(out, actionA, actionB)
	}

	// Mode turn-end hooks only apply to a team whose active survived the
	// round; a faint already advanced (or retired) that team.
	if !out.faintedA && !e.teamA.Defeated() {
		e.stratA.OnTurnEnd(e.teamA)
	}
	if !out.faintedB && !e.teamB.Defeated() {
		e.stratB.OnTurnEnd(e.teamB)
	}

	return e.checkInvariants()
}

// awardForFaints grants experience to the standing side after a faint. A
// double faint leaves no one standing and awards nothing.
func (e *Engine) awardForFaints(out roundOutcome, actionA, actionB Action) {
	if !e.cfg.GrantExperience {
		return
	}
	if out.faintedB && !out.faintedA && !actionA.Actor.Fainted() {
		e.grantXP(actionA.Actor, actionB.Actor, "A")
	}
	if out.faintedA && !out.faintedB && !actionB.Actor.Fainted() {
		e.grantXP(actionB.Actor, actionA.Actor, "B")
	}
}

func (e *Engine) grantXP(victor, defeated *Combatant, side string) {
	events, err := AwardExperience(victor, defeated, e.catalog, e.cfg.Experience)
	if err != nil {
		e.log.Add(e.round, victor.label, side, "xp", "error", err.Error(), 0)
		return
	}
	for _, ev := range events {
		key := "level_up"
		detail := fmt.Sprintf("level %d → %d", ev.FromLevel, ev.ToLevel)
		if ev.Evolved {
			key = "evolution"
			detail = fmt.Sprintf("%s → %s at level %d", ev.FromSpecies, ev.ToSpecies, ev.ToLevel)
		}
		e.log.Add(e.round, victor.label, side, "xp", key, detail, float64(ev.ToLevel))
		e.levelUps = append(e.levelUps, ev)
	}
}

// collectAction asks a side's provider for an action, re-requesting on
// invalid submissions without advancing turn state.
func (e *Engine) collectAction(side Side) (Action, error) {
	team, strat, prov := e.teamA, e.stratA, e.provA
	if side == SideB {
		team, strat, prov = e.teamB, e.stratB, e.provB
	}
	active := team.Active()
	legal := e.legalActions(team, strat)
	state := e.snapshotFor(side)

	var lastErr error
	for attempt := 0; attempt < e.cfg.MaxActionRetries; attempt++ {
		action, err := prov(state, active, legal)
		if err != nil {
			return Action{}, fmt.Errorf("side %s action provider: %w", side, err)
		}
		if lastErr = e.validateAction(team, strat, action); lastErr == nil {
			return action, nil
		}
		e.log.Add(e.round, active.label, side.String(), "action", "rejected", lastErr.Error(), 0)
	}
	return Action{}, lastErr
}

// legalActions enumerates what the active combatant may do this round: its
// species' damage moves admitted by the mode, plus the mode's special moves.
func (e *Engine) legalActions(team *Team, strat ModeStrategy) []Action {
	active := team.Active()
	var out []Action
	for _, mv := range active.species.Moves {
		if mv.Category != MoveDamage {
			continue
		}
		if !mv.Modes.Allows(e.mode) {
			continue
		}
		out = append(out, Action{Actor: active, Move: mv})
	}
	for _, mv := range strat.SpecialMoves() {
		out = append(out, Action{Actor: active, Move: mv})
	}
	return out
}

// validateAction enforces the action contract: the actor must be the standing
// active combatant, the move must be owned or a legal special, and it must be
// admitted by the current mode.
func (e *Engine) validateAction(team *Team, strat ModeStrategy, action Action) error {
	active := team.Active()
	if action.Actor == nil || action.Actor != active {
		label := "<nil>"
		if action.Actor != nil {
			label = action.Actor.label
		}
		return &InvalidActionError{Actor: label, Move: action.Move.Name, Reason: "actor is not the active combatant"}
	}
	if action.Actor.Fainted() {
		return &InvalidActionError{Actor: action.Actor.label, Move: action.Move.Name, Reason: "actor has fainted"}
	}
	switch action.Move.Category {
	case MoveDamage:
		if _, ok := action.Actor.knownMove(action.Move.Name); !ok {
			return &InvalidActionError{Actor: action.Actor.label, Move: action.Move.Name, Reason: "move not owned by actor"}
		}
		if !action.Move.Modes.Allows(e.mode) {
			return &InvalidActionError{Actor: action.Actor.label, Move: action.Move.Name,
				Reason: fmt.Sprintf("move not usable in %s mode", e.mode)}
		}
	default:
		if !strat.IsSpecialMoveLegal(action.Move) {
			return &InvalidActionError{Actor: action.Actor.label, Move: action.Move.Name,
				Reason: fmt.Sprintf("special move illegal in %s mode", e.mode)}
		}
	}
	return nil
}

// snapshotFor builds the provider-facing view of the battle.
func (e *Engine) snapshotFor(side Side) Snapshot {
	own, opp := e.teamA, e.teamB
	if side == SideB {
		own, opp = e.teamB, e.teamA
	}
	return Snapshot{
		BattleID: e.id,
		Round:    e.round,
		Mode:     e.mode,
		Own:      teamSnapshot(own),
		Opponent: teamSnapshot(opp),
	}
}

func teamSnapshot(t *Team) TeamSnapshot {
	ts := TeamSnapshot{Trainer: t.trainer.Name, Combatants: snapshotTeam(t)}
	if a := t.Active(); a != nil {
		ts.Active = a.label
	}
	return ts
}

// checkTerminal records the outcome once a team is out of standing
// combatants.
func (e *Engine) checkTerminal() bool {
	aDown := e.teamA.Defeated()
	bDown := e.teamB.Defeated()
	switch {
	case aDown && bDown:
		e.outcome = OutcomeDraw
	case aDown:
		e.outcome = OutcomeTeamBWins
	case bDown:
		e.outcome = OutcomeTeamAWins
	default:
		return false
	}
	return true
}

// checkInvariants verifies engine-owned state after each round. A violation
// here is an engine bug and halts the battle.
func (e *Engine) checkInvariants() error {
	for _, t := range []*Team{e.teamA, e.teamB} {
		for _, c := range t.roster {
			if c.hp < 0 {
				return &StateInvariantError{Round: e.round,
					Msg: fmt.Sprintf("combatant %s has negative HP %d", c.label, c.hp)}
			}
			if c.hp > c.MaxHP() {
				return &StateInvariantError{Round: e.round,
					Msg: fmt.Sprintf("combatant %s has HP %d above max %d", c.label, c.hp, c.MaxHP())}
			}
		}
		if !t.Defeated() {
			if a := t.Active(); a == nil || a.Fainted() {
				return &StateInvariantError{Round: e.round,
					Msg: fmt.Sprintf("team %s active pointer on fainted or missing combatant", t.side)}
			}
		}
	}
	return nil
}

// result assembles the structured battle output, consistent up to the last
// completed round.
func (e *Engine) result() *BattleResult {
	r := &BattleResult{
		BattleID: e.id,
		Outcome:  e.outcome,
		Rounds:   e.round,
		Log:      e.log,
		TeamA:    snapshotTeam(e.teamA),
		TeamB:    snapshotTeam(e.teamB),
		LevelUps: e.levelUps,
		Survivors: map[Side]int{
			SideA: e.teamA.AliveCount(),
			SideB: e.teamB.AliveCount(),
		},
	}
	switch e.outcome {
	case OutcomeTeamAWins:
		r.Winner = e.teamA.trainer
	case OutcomeTeamBWins:
		r.Winner = e.teamB.trainer
	}
	return r
}
