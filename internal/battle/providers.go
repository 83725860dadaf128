package battle

import "math/rand"

// Stock action providers. Real callers (UI, AI) supply their own; these cover
// simulation, testing and the CLI tools.

// FirstMoveProvider always picks the first legal action.
func FirstMoveProvider() ActionProvider {
	return func(_ Snapshot, _ *Combatant, legal []Action) (Action, error) {
		if len(legal) == 0 {
			return Action{}, configErrorf("no legal actions available")
		}
		return legal[0], nil
	}
}

// RandomProvider picks a legal action uniformly at random.
func RandomProvider(rng *rand.Rand) ActionProvider {
	return func(_ Snapshot, _ *Combatant, legal []Action) (Action, error) {
		if len(legal) == 0 {
			return Action{}, configErrorf("no legal actions available")
		}
		return legal[rng.Intn(len(legal))], nil
	}
}

// MaxPowerProvider picks the damage move with the highest base power,
// ignoring special moves unless nothing else is legal.
func MaxPowerProvider() ActionProvider {
	return func(_ Snapshot, _ *Combatant, legal []Action) (Action, error) {
		if len(legal) == 0 {
			return Action{}, configErrorf("no legal actions available")
		}
		best := legal[0]
		for _, a := range legal[1:] {
			if a.Move.Category != MoveDamage {
				continue
			}
			if best.Move.Category != MoveDamage || a.Move.Power > best.Move.Power {
				best = a
			}
		}
		return best, nil
	}
}

// ScriptedProvider replays a fixed sequence of move names, then falls back to
// the first legal action. Used by tests that need exact control over rounds.
func ScriptedProvider(moveNames ...string) ActionProvider {
	i := 0
	return func(_ Snapshot, _ *Combatant, legal []Action) (Action, error) {
		if len(legal) == 0 {
			return Action{}, configErrorf("no legal actions available")
		}
		if i < len(moveNames) {
			name := moveNames[i]
			i++
			for _, a := range legal {
				if a.Move.Name == name {
					return a, nil
				}
			}
		}
		return legal[0], nil
	}
}
