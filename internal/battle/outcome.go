package battle

// BattleOutcome is the terminal result of one encounter.
type BattleOutcome int

const (
	OutcomeUndecided BattleOutcome = iota
	OutcomeTeamAWins
	OutcomeTeamBWins
	OutcomeDraw // simultaneous final faints only
)

func (o BattleOutcome) String() string {
	switch o {
	case OutcomeTeamAWins:
		return "team_a_wins"
	case OutcomeTeamBWins:
		return "team_b_wins"
	case OutcomeDraw:
		return "draw"
	case OutcomeUndecided:
		return "undecided"
	default:
		return "unknown"
	}
}

// CombatantResult is the end-of-battle view of one roster member.
type CombatantResult struct {
	Label   string
	Species string
	Level   int
	HP      int
	MaxHP   int
	Fainted bool
}

// BattleResult is the structured output of a completed battle, consumed by
// the experience resolver and any presentation layer.
type BattleResult struct {
	BattleID  string
	Outcome   BattleOutcome
	Winner    *Trainer // nil on a draw
	Rounds    int
	Log       *BattleLog
	TeamA     []CombatantResult
	TeamB     []CombatantResult
	LevelUps  []LevelChangeEvent
	Survivors map[Side]int
}

func snapshotTeam(t *Team) []CombatantResult {
	out := make([]CombatantResult, 0, len(t.roster))
	for _, c := range t.roster {
		out = append(out, CombatantResult{
			Label:   c.label,
			Species: c.species.Name,
			Level:   c.level,
			HP:      c.hp,
			MaxHP:   c.MaxHP(),
			Fainted: c.Fainted(),
		})
	}
	return out
}
