package battle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// --- Gauntlet state machine ---

// GauntletState is where a tower run currently stands.
type GauntletState int

const (
	GauntletNotStarted GauntletState = iota
	GauntletInProgress
	GauntletCompleted
)

func (s GauntletState) String() string {
	switch s {
	case GauntletNotStarted:
		return "not_started"
	case GauntletInProgress:
		return "in_progress"
	case GauntletCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// GauntletOutcome is the terminal result of a completed run.
type GauntletOutcome int

const (
	GauntletUndecided GauntletOutcome = iota
	GauntletCleared                   // every opponent defeated with lives remaining
	GauntletEliminated                // lives exhausted
)

func (o GauntletOutcome) String() string {
	switch o {
	case GauntletCleared:
		return "cleared"
	case GauntletEliminated:
		return "eliminated"
	case GauntletUndecided:
		return "undecided"
	default:
		return "unknown"
	}
}

// Opponent is one rung of the tower: a trainer and the roster they field.
type Opponent struct {
	Trainer *Trainer
	Roster  []*Combatant
}

// GauntletConfig is supplied at run start. Lives budget and HP persistence
// are configuration, not constants.
type GauntletConfig struct {
	Lives int
	Mode  BattleMode
	// Criterion applies when Mode is Optimised.
	Criterion Criterion
	// RestoreOnRetry restores the player's team to full HP before retrying
	// an opponent after a loss. Off by default: damage persists.
	RestoreOnRetry bool
	// RestoreBetweenOpponents restores all player HP when a new opponent is
	// reached.
	RestoreBetweenOpponents bool
	// Engine configures each individual battle.
	Engine EngineConfig
}

// GauntletParams collects the dependencies for a run.
type GauntletParams struct {
	Player           *Trainer
	PlayerRoster     []*Combatant
	Opponents        []Opponent
	Chart            *TypeChart
	Catalog          Catalog
	PlayerProvider   ActionProvider
	OpponentProvider ActionProvider
	Config           GauntletConfig
}

// BattleRecord is one line of the cumulative outcome log.
type BattleRecord struct {
	BattleID      string
	OpponentIndex int
	Opponent      string
	Outcome       BattleOutcome
	Won           bool
	Rounds        int
	LivesLeft     int
	PlayerAlive   int
	LevelUps      []LevelChangeEvent
}

// GauntletResult is the summary of a finished run.
type GauntletResult struct {
	RunID             string
	Outcome           GauntletOutcome
	BattlesFought     int
	OpponentsDefeated int
	LivesLeft         int
	Records           []BattleRecord
}

// Gauntlet runs the battle engine against an ordered sequence of opponents,
// reusing it as a black box. It owns exactly one in-flight battle at a time.
type Gauntlet struct {
	id        string
	player    *Trainer
	roster    []*Combatant
	opponents []Opponent
	chart     *TypeChart
	catalog   Catalog
	provP     ActionProvider
	provO     ActionProvider
	cfg       GauntletConfig

	state     GauntletState
	outcome   GauntletOutcome
	oppIndex  int
	lives     int
	defeated  int
	records   []BattleRecord
	freshFoe  bool // next battle faces an opponent not yet attempted
}

// NewGauntlet validates the configuration and prepares a run in the
// NotStarted state.
func NewGauntlet(p GauntletParams) (*Gauntlet, error) {
	if p.Player == nil || len(p.PlayerRoster) == 0 {
		return nil, configErrorf("gauntlet needs a player trainer with a roster")
	}
	if len(p.Opponents) == 0 {
		return nil, configErrorf("gauntlet needs at least one opponent")
	}
	for i, opp := range p.Opponents {
		if opp.Trainer == nil || len(opp.Roster) == 0 {
			return nil, configErrorf("gauntlet opponent %d has no trainer or roster", i)
		}
	}
	if p.Config.Lives <= 0 {
		return nil, configErrorf("gauntlet lives budget must be positive, got %d", p.Config.Lives)
	}
	if p.Chart == nil {
		return nil, configErrorf("gauntlet needs a type chart")
	}
	if p.PlayerProvider == nil || p.OpponentProvider == nil {
		return nil, configErrorf("gauntlet needs action providers for both sides")
	}
	return &Gauntlet{
		id:        uuid.NewString(),
		player:    p.Player,
		roster:    p.PlayerRoster,
		opponents: p.Opponents,
		chart:     p.Chart,
		catalog:   p.Catalog,
		provP:     p.PlayerProvider,
		provO:     p.OpponentProvider,
		cfg:       p.Config,
		state:     GauntletNotStarted,
		lives:     p.Config.Lives,
		freshFoe:  true,
	}, nil
}

func (g *Gauntlet) RunID() string            { return g.id }
func (g *Gauntlet) State() GauntletState     { return g.state }
func (g *Gauntlet) Outcome() GauntletOutcome { return g.outcome }
func (g *Gauntlet) Lives() int               { return g.lives }
func (g *Gauntlet) OpponentIndex() int       { return g.oppIndex }
func (g *Gauntlet) Records() []BattleRecord  { return g.records }

// Step runs one battle against the current opponent and advances the state
// machine: a win moves to the next opponent, a loss (or draw) costs a life
// and retries the same one.
func (g *Gauntlet) Step(ctx context.Context) (*BattleRecord, error) {
	switch g.state {
	case GauntletCompleted:
		return nil, configErrorf("gauntlet run already completed (%s)", g.outcome)
	case GauntletNotStarted:
		g.state = GauntletInProgress
	}

	if g.freshFoe && g.cfg.RestoreBetweenOpponents {
		g.restorePlayer()
	}
	g.freshFoe = false

	opp := g.opponents[g.oppIndex]
	// Opponents always enter at full strength.
	for _, c := range opp.Roster {
		c.restoreFull()
	}

	playerTeam, err := NewTeam(SideA, g.player, g.roster)
	if err != nil {
		return nil, err
	}
	oppTeam, err := NewTeam(SideB, opp.Trainer, opp.Roster)
	if err != nil {
		return nil, err
	}

	engCfg := g.cfg.Engine
	engCfg.GrantExperience = true
	eng, err := NewEngine(EngineParams{
		TeamA:     playerTeam,
		TeamB:     oppTeam,
		Mode:      g.cfg.Mode,
		Criterion: g.cfg.Criterion,
		Chart:     g.chart,
		Catalog:   g.catalog,
		ProviderA: g.provP,
		ProviderB: g.provO,
		Config:    engCfg,
	})
	if err != nil {
		return nil, err
	}
	res, err := eng.RunBattle(ctx)
	if err != nil {
		return nil, fmt.Errorf("gauntlet battle vs %s: %w", opp.Trainer.Name, err)
	}

	rec := BattleRecord{
		BattleID:      res.BattleID,
		OpponentIndex: g.oppIndex,
		Opponent:      opp.Trainer.Name,
		Outcome:       res.Outcome,
		Won:           res.Outcome == OutcomeTeamAWins,
		Rounds:        res.Rounds,
		PlayerAlive:   res.Survivors[SideA],
		LevelUps:      res.LevelUps,
	}

	if rec.Won {
		g.defeated++
		g.oppIndex++
		g.freshFoe = true
		if g.oppIndex >= len(g.opponents) {
			g.state = GauntletCompleted
			g.outcome = GauntletCleared
		}
	} else {
		g.lives--
		if g.lives <= 0 {
			g.state = GauntletCompleted
			g.outcome = GauntletEliminated
		} else if g.cfg.RestoreOnRetry {
			g.restorePlayer()
		}
	}
	rec.LivesLeft = g.lives
	g.records = append(g.records, rec)
	return &rec, nil
}

// Run steps until the run completes or the context is cancelled.
func (g *Gauntlet) Run(ctx context.Context) (*GauntletResult, error) {
	for g.state != GauntletCompleted {
		if err := ctx.Err(); err != nil {
			return g.resultSoFar(), err
		}
		if _, err := g.Step(ctx); err != nil {
			return g.resultSoFar(), err
		}
	}
	return g.resultSoFar(), nil
}

func (g *Gauntlet) resultSoFar() *GauntletResult {
	return &GauntletResult{
		RunID:             g.id,
		Outcome:           g.outcome,
		BattlesFought:     len(g.records),
		OpponentsDefeated: g.defeated,
		LivesLeft:         g.lives,
		Records:           g.records,
	}
}

func (g *Gauntlet) restorePlayer() {
	for _, c := range g.roster {
		c.restoreFull()
	}
}
