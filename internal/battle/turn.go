package battle

import "fmt"

// --- Round state machine ---

// RoundState tracks a single round's progress through the resolver.
type RoundState int

const (
	RoundAwaitingActions RoundState = iota
	RoundOrderingComputed
	RoundActionAExecuted
	RoundActionBExecuted
	RoundComplete
)

func (s RoundState) String() string {
	switch s {
	case RoundAwaitingActions:
		return "awaiting_actions"
	case RoundOrderingComputed:
		return "ordering_computed"
	case RoundActionAExecuted:
		return "action_a_executed"
	case RoundActionBExecuted:
		return "action_b_executed"
	case RoundComplete:
		return "round_complete"
	default:
		return "unknown"
	}
}

// Action is one combatant's chosen action for a round: a damage-dealing move
// or a mode-specific special move. Which action is chosen is an input to the
// engine, never something it computes.
type Action struct {
	Actor *Combatant
	Move  Move
}

// sideCtx bundles everything the resolver needs about one side of a round.
type sideCtx struct {
	team   *Team
	strat  ModeStrategy
	action Action
}

// roundOutcome summarises what a resolved round did to each side.
type roundOutcome struct {
	state    RoundState
	faintedA bool // side A's acting combatant fainted this round
	faintedB bool
}

// turnResolver applies one round of actions in speed order.
type turnResolver struct {
	chart      *TypeChart
	log        *BattleLog
	pokedexCap float64
}

// resolveRound determines action order and applies each action. Higher Speed
// acts first; an exact Speed tie resolves both actions simultaneously against
// pre-round state, committing both HP changes together. In the non-tie case a
// faint caused by the faster action skips the slower action entirely.
func (tr *turnResolver) resolveRound(round int, a, b sideCtx) (roundOutcome, error) {
	out := roundOutcome{state: RoundAwaitingActions}

	speedA := a.action.Actor.Speed()
	speedB := b.action.Actor.Speed()
	out.state = RoundOrderingComputed

	if speedA == speedB {
		return tr.resolveSimultaneous(round, a, b)
	}

	first, second := a, b
	if speedB > speedA {
		first, second = b, a
	}

	firstFainted, secondFainted, err := tr.resolveOrdered(round, first, second, &out)
	if err != nil {
		return out, err
	}
	out.state = RoundComplete
	if first.team.Side() == SideA {
		out.faintedA, out.faintedB = firstFainted, secondFainted
	} else {
		out.faintedA, out.faintedB = secondFainted, firstFainted
	}
	return out, nil
}

// actionExecutedState maps a side to the round state marking its action as
// executed.
func actionExecutedState(s Side) RoundState {
	if s == SideA {
		return RoundActionAExecuted
	}
	return RoundActionBExecuted
}

// resolveOrdered runs the faster action to completion, then the slower one
// unless its combatant fainted meanwhile. The round state advances through
// each side's executed marker as that side's action lands; a skipped slower
// action leaves its marker unset.
func (tr *turnResolver) resolveOrdered(round int, first, second sideCtx, out *roundOutcome) (firstFainted, secondFainted bool, err error) {
	if err := tr.executeAction(round, first, second); err != nil {
		return false, false, err
	}
	out.state = actionExecutedState(first.team.Side())
	if second.action.Actor.Fainted() {
		secondFainted = true
		tr.faint(round, second)
		tr.log.Add(round, second.action.Actor.label, second.team.Side().String(),
			"action", "skipped", "fainted before acting", 0)
		return firstFainted, secondFainted, nil
	}
	if err := tr.executeAction(round, second, first); err != nil {
		return false, false, err
	}
	out.state = actionExecutedState(second.team.Side())
	if first.action.Actor.Fainted() {
		firstFainted = true
		tr.faint(round, first)
	}
	return firstFainted, secondFainted, nil
}

// resolveSimultaneous evaluates both actions against pre-round state: both
// damages are computed from the same frozen stats, then both HP changes are
// committed together. Neither action is skipped because of the other.
func (tr *turnResolver) resolveSimultaneous(round int, a, b sideCtx) (roundOutcome, error) {
	out := roundOutcome{state: RoundOrderingComputed}
	tr.log.Add(round, "--", "--", "action", "simultaneous",
		fmt.Sprintf("%s and %s act at equal speed %d",
			a.action.Actor.label, b.action.Actor.label, a.action.Actor.Speed()), 0)

	dmgToB, classA, err := tr.computeIfAttack(a, b)
	if err != nil {
		return out, err
	}
	dmgToA, classB, err := tr.computeIfAttack(b, a)
	if err != nil {
		return out, err
	}

	// Commit both together.
	tr.logAction(round, a, dmgToB, classA)
	out.state = RoundActionAExecuted
	tr.logAction(round, b, dmgToA, classB)
	out.state = RoundActionBExecuted
	b.action.Actor.Damage(dmgToB)
	a.action.Actor.Damage(dmgToA)
	tr.applySpecial(round, a)
	tr.applySpecial(round, b)

	if a.action.Actor.Fainted() {
		out.faintedA = true
		tr.faint(round, a)
	}
	if b.action.Actor.Fainted() {
		out.faintedB = true
		tr.faint(round, b)
	}
	out.state = RoundComplete
	return out, nil
}

// computeIfAttack returns the damage an attack action would deal, without
// applying it. Special moves deal zero.
func (tr *turnResolver) computeIfAttack(attacker, defender sideCtx) (int, EffectivenessClass, error) {
	if attacker.action.Move.Category != MoveDamage {
		return 0, EffNormal, nil
	}
	mult := pokedexMultiplier(attacker.team.Trainer().Completion(), tr.pokedexCap)
	return ComputeDamage(attacker.action.Actor, defender.action.Actor, attacker.action.Move, tr.chart, mult)
}

// executeAction applies one side's action in the ordered (non-tie) case.
func (tr *turnResolver) executeAction(round int, actor, target sideCtx) error {
	if actor.action.Actor.Fainted() {
		return &StateInvariantError{Round: round,
			Msg: fmt.Sprintf("fainted combatant %s reached execution", actor.action.Actor.label)}
	}
	if actor.action.Move.Category != MoveDamage {
		tr.applySpecial(round, actor)
		return nil
	}
	amount, class, err := tr.computeIfAttack(actor, target)
	if err != nil {
		return err
	}
	tr.logAction(round, actor, amount, class)
	target.action.Actor.Damage(amount)
	return nil
}

// applySpecial executes a special (reorder) move's team effect.
func (tr *turnResolver) applySpecial(round int, actor sideCtx) {
	if actor.action.Move.Category != MoveReorder {
		return
	}
	actor.strat.ReorderTeam(actor.team)
	tr.log.Add(round, actor.action.Actor.label, actor.team.Side().String(),
		"reorder", "special", actor.action.Move.Name, 0)
}

// faint logs the faint and lets the team's mode react before the round is
// marked complete.
func (tr *turnResolver) faint(round int, side sideCtx) {
	tr.log.Add(round, side.action.Actor.label, side.team.Side().String(),
		"faint", "down", side.action.Actor.species.Name, float64(side.action.Actor.level))
	side.strat.OnFaint(side.team)
}

// logAction records an attack and its result.
func (tr *turnResolver) logAction(round int, actor sideCtx, amount int, class EffectivenessClass) {
	tr.log.Add(round, actor.action.Actor.label, actor.team.Side().String(),
		"action", "attack", actor.action.Move.Name, 0)
	tr.log.Add(round, actor.action.Actor.label, actor.team.Side().String(),
		"damage", "dealt", fmt.Sprintf("%d (%s)", amount, class), float64(amount))
}
