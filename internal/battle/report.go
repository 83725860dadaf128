package battle

import (
	"fmt"
	"strings"
)

// --- Battle summaries ---

// BattleSummary aggregates one battle's log for reports.
type BattleSummary struct {
	BattleID   string
	Outcome    BattleOutcome
	Rounds     int
	FaintsA    int
	FaintsB    int
	DamageA    int // total damage dealt by side A
	DamageB    int
	SuperHits  int
	ImmuneHits int
	Reorders   int
	LevelUps   int
	Evolutions int
}

// Summarize walks the turn log once and tallies the interesting events.
func Summarize(res *BattleResult) BattleSummary {
	s := BattleSummary{BattleID: res.BattleID, Outcome: res.Outcome, Rounds: res.Rounds}
	for _, e := range res.Log.Entries() {
		switch e.Category {
		case "damage":
			if e.Key != "dealt" {
				continue
			}
			if e.Side == "A" {
				s.DamageA += int(e.NumVal)
			} else if e.Side == "B" {
				s.DamageB += int(e.NumVal)
			}
			if strings.Contains(e.Value, EffSuper.String()) {
				s.SuperHits++
			}
			if strings.Contains(e.Value, EffImmune.String()) {
				s.ImmuneHits++
			}
		case "faint":
			if e.Side == "A" {
				s.FaintsA++
			} else {
				s.FaintsB++
			}
		case "reorder":
			s.Reorders++
		case "xp":
			switch e.Key {
			case "level_up":
				s.LevelUps++
			case "evolution":
				s.Evolutions++
			}
		}
	}
	return s
}

// FormatBattleReport renders a battle result as a plain-text report: summary
// line, per-team end state, then the full turn log.
func FormatBattleReport(res *BattleResult) string {
	var b strings.Builder
	s := Summarize(res)
	fmt.Fprintf(&b, "--- battle report %s ---\n", res.BattleID)
	fmt.Fprintf(&b, "outcome=%s rounds=%d faints A/B=%d/%d damage A/B=%d/%d\n",
		s.Outcome, s.Rounds, s.FaintsA, s.FaintsB, s.DamageA, s.DamageB)
	fmt.Fprintf(&b, "super_hits=%d immune_hits=%d reorders=%d level_ups=%d evolutions=%d\n\n",
		s.SuperHits, s.ImmuneHits, s.Reorders, s.LevelUps, s.Evolutions)

	writeTeam := func(name string, team []CombatantResult) {
		fmt.Fprintf(&b, "== team %s ==\n", name)
		for _, c := range team {
			mark := " "
			if c.Fainted {
				mark = "x"
			}
			fmt.Fprintf(&b, " [%s] %-4s %-12s L%-3d %d/%d HP\n",
				mark, c.Label, c.Species, c.Level, c.HP, c.MaxHP)
		}
		b.WriteByte('\n')
	}
	writeTeam("A", res.TeamA)
	writeTeam("B", res.TeamB)

	b.WriteString("== turn log ==\n")
	b.WriteString(res.Log.Dump())
	return b.String()
}

// FormatGauntletReport renders a finished tower run.
func FormatGauntletReport(res *GauntletResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- gauntlet report %s ---\n", res.RunID)
	fmt.Fprintf(&b, "outcome=%s battles=%d defeated=%d lives_left=%d\n\n",
		res.Outcome, res.BattlesFought, res.OpponentsDefeated, res.LivesLeft)
	for i, rec := range res.Records {
		verdict := "loss"
		if rec.Won {
			verdict = "win"
		} else if rec.Outcome == OutcomeDraw {
			verdict = "draw"
		}
		fmt.Fprintf(&b, "  battle %2d vs %-10s (opponent %d): %-4s rounds=%-3d lives_left=%d alive=%d\n",
			i+1, rec.Opponent, rec.OpponentIndex+1, verdict, rec.Rounds, rec.LivesLeft, rec.PlayerAlive)
		for _, ev := range rec.LevelUps {
			if ev.Evolved {
				fmt.Fprintf(&b, "      %s evolved %s → %s (L%d)\n", ev.Label, ev.FromSpecies, ev.ToSpecies, ev.ToLevel)
			}
		}
	}
	return b.String()
}
