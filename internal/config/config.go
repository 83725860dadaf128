// Package config parses the engine's external data files: the
// type-effectiveness table, the species catalog and gauntlet run
// configuration. The battle engine itself never touches files; it consumes
// the already-validated structures produced here. Malformed data surfaces as
// battle.ConfigurationError at load time, never mid-battle.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/winniewing52/Pocket-Monsters/internal/battle"
)

// --- Type chart ---

// TypeChartFile is the YAML shape of an effectiveness table. Pairs absent
// from the file default to x1; listed multipliers must be 0, 0.5, 1 or 2.
type TypeChartFile struct {
	Multipliers map[string]map[string]float64 `yaml:"multipliers"`
}

// LoadTypeChart reads and validates a type chart file.
func LoadTypeChart(path string) (*battle.TypeChart, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("read type chart: %v", err)}
	}
	var f TypeChartFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("parse type chart: %v", err)}
	}
	return buildChart(f)
}

func buildChart(f TypeChartFile) (*battle.TypeChart, error) {
	table := make(map[battle.PokeType]map[battle.PokeType]float64, battle.NumTypes)
	for atk := battle.PokeType(0); int(atk) < battle.NumTypes; atk++ {
		row := make(map[battle.PokeType]float64, battle.NumTypes)
		for def := battle.PokeType(0); int(def) < battle.NumTypes; def++ {
			row[def] = 1
		}
		table[atk] = row
	}
	for atkName, defs := range f.Multipliers {
		atk, ok := battle.ParseType(atkName)
		if !ok {
			return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("type chart: unknown attack type %q", atkName)}
		}
		for defName, mult := range defs {
			def, ok := battle.ParseType(defName)
			if !ok {
				return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("type chart: unknown defense type %q", defName)}
			}
			table[atk][def] = mult
		}
	}
	return battle.NewTypeChart(table)
}

// --- Species catalog ---

// MoveDef is one species move in YAML form.
type MoveDef struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Power int    `yaml:"power"`
}

// SpeciesDef is one catalog entry in YAML form.
type SpeciesDef struct {
	Name        string    `yaml:"name"`
	Types       []string  `yaml:"types"`
	HP          int       `yaml:"hp"`
	Attack      int       `yaml:"attack"`
	Defense     int       `yaml:"defense"`
	Speed       int       `yaml:"speed"`
	EvolvesInto string    `yaml:"evolves_into"`
	EvolveLevel int       `yaml:"evolve_level"`
	Moves       []MoveDef `yaml:"moves"`
}

// CatalogFile is the YAML shape of a species catalog.
type CatalogFile struct {
	Species []SpeciesDef `yaml:"species"`
}

// LoadCatalog reads and validates a species catalog file.
func LoadCatalog(path string) (battle.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("read catalog: %v", err)}
	}
	var f CatalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("parse catalog: %v", err)}
	}
	return buildCatalog(f)
}

func buildCatalog(f CatalogFile) (battle.Catalog, error) {
	cat := make(battle.Catalog, len(f.Species))
	for _, def := range f.Species {
		types := make([]battle.PokeType, 0, len(def.Types))
		for _, tn := range def.Types {
			t, ok := battle.ParseType(tn)
			if !ok {
				return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("species %q: unknown type %q", def.Name, tn)}
			}
			types = append(types, t)
		}
		moves := make([]battle.Move, 0, len(def.Moves))
		for _, md := range def.Moves {
			mt, ok := battle.ParseType(md.Type)
			if !ok {
				return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("species %q move %q: unknown type %q", def.Name, md.Name, md.Type)}
			}
			moves = append(moves, battle.Move{
				Name:     md.Name,
				Type:     mt,
				Power:    md.Power,
				Category: battle.MoveDamage,
			})
		}
		cat[def.Name] = &battle.Species{
			Name:        def.Name,
			Types:       types,
			Base:        battle.Stats{HP: def.HP, Attack: def.Attack, Defense: def.Defense, Speed: def.Speed},
			Moves:       moves,
			EvolvesInto: def.EvolvesInto,
			EvolveLevel: def.EvolveLevel,
		}
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// --- Gauntlet configuration ---

// MemberDef is one team slot in YAML form.
type MemberDef struct {
	Species string `yaml:"species"`
	Level   int    `yaml:"level"`
}

// OpponentDef is one tower rung in YAML form.
type OpponentDef struct {
	Name string      `yaml:"name"`
	Team []MemberDef `yaml:"team"`
}

// GauntletFile is the YAML shape of a tower run configuration.
type GauntletFile struct {
	Lives                   int           `yaml:"lives"`
	Mode                    string        `yaml:"mode"`
	Criterion               string        `yaml:"criterion"`
	RestoreOnRetry          bool          `yaml:"restore_on_retry"`
	RestoreBetweenOpponents bool          `yaml:"restore_between_opponents"`
	Player                  OpponentDef   `yaml:"player"`
	Opponents               []OpponentDef `yaml:"opponents"`
}

// GauntletSpec is the validated, engine-ready form of a gauntlet file.
type GauntletSpec struct {
	Config    battle.GauntletConfig
	Player    OpponentDef
	Opponents []OpponentDef
}

// LoadGauntlet reads and validates a gauntlet configuration file.
func LoadGauntlet(path string) (*GauntletSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("read gauntlet config: %v", err)}
	}
	var f GauntletFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("parse gauntlet config: %v", err)}
	}
	if f.Lives <= 0 {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("gauntlet lives must be positive, got %d", f.Lives)}
	}
	mode, ok := battle.ParseMode(f.Mode)
	if !ok {
		return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("gauntlet: unknown mode %q", f.Mode)}
	}
	crit := battle.CriterionHP
	if f.Criterion != "" {
		crit, ok = battle.ParseCriterion(f.Criterion)
		if !ok {
			return nil, &battle.ConfigurationError{Msg: fmt.Sprintf("gauntlet: unknown criterion %q", f.Criterion)}
		}
	}
	if len(f.Opponents) == 0 {
		return nil, &battle.ConfigurationError{Msg: "gauntlet: no opponents declared"}
	}
	return &GauntletSpec{
		Config: battle.GauntletConfig{
			Lives:                   f.Lives,
			Mode:                    mode,
			Criterion:               crit,
			RestoreOnRetry:          f.RestoreOnRetry,
			RestoreBetweenOpponents: f.RestoreBetweenOpponents,
		},
		Player:    f.Player,
		Opponents: f.Opponents,
	}, nil
}

// BuildRoster turns member definitions into labelled combatants.
func BuildRoster(cat battle.Catalog, side battle.Side, members []MemberDef) ([]*battle.Combatant, error) {
	roster := make([]*battle.Combatant, 0, len(members))
	for i, m := range members {
		sp, err := cat.Lookup(m.Species)
		if err != nil {
			return nil, err
		}
		roster = append(roster, battle.NewCombatant(int(side)*battle.TeamLimit+i, battle.Label(side, i), sp, m.Level))
	}
	return roster, nil
}
