package battle

import "fmt"

// --- Error taxonomy ---

// ConfigurationError reports malformed or incomplete external data (type
// chart, species catalog, gauntlet config). It is fatal at load time and is
// never raised mid-battle.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Msg
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidActionError reports an illegal action supplied by an action
// provider: a fainted actor, a move the actor does not own, or a special
// move that the current battle mode forbids. The engine re-prompts the
// provider before surfacing this error.
type InvalidActionError struct {
	Actor  string
	Move   string
	Reason string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action: %s using %s: %s", e.Actor, e.Move, e.Reason)
}

// StateInvariantError reports internal engine corruption (negative HP, an
// active pointer on a fainted combatant). Always fatal: it indicates an
// engine bug, never a caller mistake.
type StateInvariantError struct {
	Round int
	Msg   string
}

func (e *StateInvariantError) Error() string {
	return fmt.Sprintf("state invariant violated (round %d): %s", e.Round, e.Msg)
}
