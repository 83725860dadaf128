package battle

// --- Battle modes ---

// BattleMode selects the team-manipulation policy for an encounter.
type BattleMode int

const (
	ModeSet BattleMode = iota
	ModeRotating
	ModeOptimised
)

func (m BattleMode) String() string {
	switch m {
	case ModeSet:
		return "set"
	case ModeRotating:
		return "rotating"
	case ModeOptimised:
		return "optimised"
	default:
		return "unknown"
	}
}

// ParseMode maps a mode name to its BattleMode.
func ParseMode(name string) (BattleMode, bool) {
	for m := ModeSet; m <= ModeOptimised; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// --- Mode strategy ---

// ModeStrategy is the policy object governing what happens to team ordering
// around faints and turn boundaries, and which special moves exist. Each
// variant is a closed, independently testable policy passed into the engine.
type ModeStrategy interface {
	Mode() BattleMode

	// SelectInitialActive establishes the team's battle ordering before the
	// first round.
	SelectInitialActive(t *Team)

	// OnFaint reacts to the team's active combatant fainting. It either
	// promotes a replacement or retires the team from the battle.
	OnFaint(t *Team)

	// OnTurnEnd runs after a completed round for a team whose active
	// combatant survived it.
	OnTurnEnd(t *Team)

	// IsSpecialMoveLegal reports whether the mode admits the special move.
	IsSpecialMoveLegal(mv Move) bool

	// SpecialMoves lists the mode's extra moves, available to any active
	// combatant alongside its species moves.
	SpecialMoves() []Move

	// ReorderTeam executes a legal special move's team effect.
	ReorderTeam(t *Team)
}

// NewStrategy builds the strategy for a mode. The criterion only matters for
// Optimised mode.
func NewStrategy(mode BattleMode, crit Criterion) (ModeStrategy, error) {
	switch mode {
	case ModeSet:
		return &setStrategy{}, nil
	case ModeRotating:
		return &rotatingStrategy{}, nil
	case ModeOptimised:
		return &optimisedStrategy{criterion: crit}, nil
	default:
		return nil, configErrorf("unknown battle mode %d", mode)
	}
}

// --- Set ---

// setStrategy fields combatants in roster order and never substitutes: once
// the active combatant faints, the team's battle is over regardless of
// remaining reserves.
type setStrategy struct{}

func (*setStrategy) Mode() BattleMode             { return ModeSet }
func (*setStrategy) SelectInitialActive(t *Team)  {}
func (*setStrategy) OnFaint(t *Team)              { t.retired = true }
func (*setStrategy) OnTurnEnd(t *Team)            {}
func (*setStrategy) IsSpecialMoveLegal(Move) bool { return false }
func (*setStrategy) SpecialMoves() []Move         { return nil }
func (*setStrategy) ReorderTeam(t *Team)          {}

// --- Rotating ---

// rotatingStrategy cycles the active combatant to the back of the order after
// every completed turn; a faint removes the combatant from rotation with the
// order otherwise preserved.
type rotatingStrategy struct{}

func (*rotatingStrategy) Mode() BattleMode             { return ModeRotating }
func (*rotatingStrategy) SelectInitialActive(t *Team)  {}
func (*rotatingStrategy) OnFaint(t *Team)              { t.dropFainted() }
func (*rotatingStrategy) OnTurnEnd(t *Team)            { t.cycleActive() }
func (*rotatingStrategy) IsSpecialMoveLegal(Move) bool { return false }
func (*rotatingStrategy) SpecialMoves() []Move         { return nil }
func (*rotatingStrategy) ReorderTeam(t *Team)          {}

// --- Optimised ---

// regroupMove is the Optimised-mode special: it flips the team's sort
// direction and forces an immediate re-sort.
var regroupMove = Move{
	Name:     "Regroup",
	Type:     TypeNormal,
	Power:    0,
	Category: MoveReorder,
	Modes:    MaskFor(ModeOptimised),
}

// optimisedStrategy keeps the team sorted by a criterion fixed at battle
// start, descending by default, with ties broken by original roster order.
// The active pointer is recomputed after every state change.
type optimisedStrategy struct {
	criterion Criterion
	ascending bool // flipped by the Regroup special move
}

func (s *optimisedStrategy) Mode() BattleMode { return ModeOptimised }

func (s *optimisedStrategy) SelectInitialActive(t *Team) {
	t.sortOrder(s.criterion, s.ascending)
}

func (s *optimisedStrategy) OnFaint(t *Team) {
	t.dropFainted()
	t.sortOrder(s.criterion, s.ascending)
}

func (s *optimisedStrategy) OnTurnEnd(t *Team) {
	t.dropFainted()
	t.sortOrder(s.criterion, s.ascending)
}

func (s *optimisedStrategy) IsSpecialMoveLegal(mv Move) bool {
	return mv.Category == MoveReorder && mv.Modes.Allows(ModeOptimised)
}

func (s *optimisedStrategy) SpecialMoves() []Move {
	return []Move{regroupMove}
}

func (s *optimisedStrategy) ReorderTeam(t *Team) {
	s.ascending = !s.ascending
	t.dropFainted()
	t.sortOrder(s.criterion, s.ascending)
}
