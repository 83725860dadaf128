package battle

import (
	"context"
	"math/rand"
	"sort"
)

// BattleSim is a headless battle harness used by tests and the report CLI.
// It assembles teams from the catalog, wires stock providers, and runs the
// engine with deterministic seeding.
type BattleSim struct {
	Catalog Catalog
	Chart   *TypeChart
	Engine  *Engine

	rng      *rand.Rand
	mode     BattleMode
	crit     Criterion
	cfg      EngineConfig
	nameA    string
	nameB    string
	provA    ActionProvider
	provB    ActionProvider
	membersA []simMember
	membersB []simMember
}

type simMember struct {
	species string
	level   int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, mode, config; applied first
	simOptMember                      // team members, applied after infra
)

// SimOption is a builder function applied to a BattleSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*BattleSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) {
		bs.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation only
	}}
}

// WithMode selects the battle mode.
func WithMode(mode BattleMode) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) { bs.mode = mode }}
}

// WithCriterion selects the Optimised-mode ordering criterion.
func WithCriterion(crit Criterion) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) { bs.crit = crit }}
}

// WithEngineConfig overrides the engine configuration.
func WithEngineConfig(cfg EngineConfig) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) { bs.cfg = cfg }}
}

// WithCatalog replaces the default species catalog.
func WithCatalog(cat Catalog) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) { bs.Catalog = cat }}
}

// WithTrainers names the two sides.
func WithTrainers(a, b string) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) { bs.nameA, bs.nameB = a, b }}
}

// WithProviderA overrides side A's action provider (default: random).
func WithProviderA(p ActionProvider) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) { bs.provA = p }}
}

// WithProviderB overrides side B's action provider (default: random).
func WithProviderB(p ActionProvider) SimOption {
	return SimOption{simOptInfra, func(bs *BattleSim) { bs.provB = p }}
}

// WithTeamAMember fields a combatant of the given species and level on side A.
func WithTeamAMember(species string, level int) SimOption {
	return SimOption{simOptMember, func(bs *BattleSim) {
		bs.membersA = append(bs.membersA, simMember{species, level})
	}}
}

// WithTeamBMember fields a combatant of the given species and level on side B.
func WithTeamBMember(species string, level int) SimOption {
	return SimOption{simOptMember, func(bs *BattleSim) {
		bs.membersB = append(bs.membersB, simMember{species, level})
	}}
}

// NewBattleSim constructs the harness in two ordered passes (infra, then
// members) and builds the engine.
func NewBattleSim(opts ...SimOption) (*BattleSim, error) {
	bs := &BattleSim{
		Catalog: DefaultCatalog(),
		Chart:   DefaultTypeChart(),
		rng:     rand.New(rand.NewSource(1)), // #nosec G404 -- simulation only
		mode:    ModeRotating,
		nameA:   "Ash",
		nameB:   "Gary",
	}
	for _, kind := range []simOptionKind{simOptInfra, simOptMember} {
		for _, opt := range opts {
			if opt.kind == kind {
				opt.fn(bs)
			}
		}
	}
	if bs.provA == nil {
		bs.provA = RandomProvider(bs.rng)
	}
	if bs.provB == nil {
		bs.provB = RandomProvider(bs.rng)
	}
	if len(bs.membersA) == 0 || len(bs.membersB) == 0 {
		return nil, configErrorf("battle sim needs members on both sides")
	}

	rosterA, err := bs.buildRoster(SideA, bs.membersA)
	if err != nil {
		return nil, err
	}
	rosterB, err := bs.buildRoster(SideB, bs.membersB)
	if err != nil {
		return nil, err
	}
	teamA, err := NewTeam(SideA, NewTrainer(bs.nameA), rosterA)
	if err != nil {
		return nil, err
	}
	teamB, err := NewTeam(SideB, NewTrainer(bs.nameB), rosterB)
	if err != nil {
		return nil, err
	}

	bs.Engine, err = NewEngine(EngineParams{
		TeamA:     teamA,
		TeamB:     teamB,
		Mode:      bs.mode,
		Criterion: bs.crit,
		Chart:     bs.Chart,
		Catalog:   bs.Catalog,
		ProviderA: bs.provA,
		ProviderB: bs.provB,
		Config:    bs.cfg,
	})
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (bs *BattleSim) buildRoster(side Side, members []simMember) ([]*Combatant, error) {
	roster := make([]*Combatant, 0, len(members))
	for i, m := range members {
		sp, err := bs.Catalog.Lookup(m.species)
		if err != nil {
			return nil, err
		}
		label := Label(side, i)
		roster = append(roster, NewCombatant(int(side)*TeamLimit+i, label, sp, m.level))
	}
	return roster, nil
}

// Run drives the battle to completion.
func (bs *BattleSim) Run(ctx context.Context) (*BattleResult, error) {
	return bs.Engine.RunBattle(ctx)
}

// Log exposes the engine's turn log.
func (bs *BattleSim) Log() *BattleLog { return bs.Engine.Log() }

// Label builds the conventional combatant label for a side and slot ("A0").
func Label(side Side, slot int) string {
	return side.String() + string(rune('0'+slot))
}

// SortedNames returns catalog species names in deterministic order.
func (c Catalog) SortedNames() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RandomRoster draws n distinct-slot combatants of random species at the
// given level, labelled for the side. Used by the gauntlet CLI to generate
// opponents.
func RandomRoster(cat Catalog, rng *rand.Rand, side Side, n, level int) []*Combatant {
	names := cat.SortedNames()
	roster := make([]*Combatant, 0, n)
	for i := 0; i < n; i++ {
		sp := cat[names[rng.Intn(len(names))]]
		roster = append(roster, NewCombatant(int(side)*TeamLimit+i, Label(side, i), sp, level))
	}
	return roster
}
