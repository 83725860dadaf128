package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"

	"github.com/winniewing52/Pocket-Monsters/internal/battle"
	"github.com/winniewing52/Pocket-Monsters/internal/config"
	"github.com/winniewing52/Pocket-Monsters/internal/logger"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome           battle.GauntletOutcome
	battlesFought     int
	opponentsDefeated int
	opponentsTotal    int
	livesLeft         int
	totalRounds       int
	levelUps          int
	evolutions        int
	drawBattles       int

	records []battle.BattleRecord
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var modeName string
	var critName string
	var lives int
	var opponents int
	var teamSize int
	var level int
	var fatigue bool
	var restoreRetry bool
	var restoreBetween bool
	var catalogPath string
	var chartPath string
	var gauntletPath string
	var logLevel string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless gauntlet runs")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&modeName, "mode", "rotating", "battle mode: set, rotating or optimised")
	flag.StringVar(&critName, "criterion", "hp", "optimised-mode ordering criterion: hp, attack, defense, speed or level")
	flag.IntVar(&lives, "lives", 3, "player lives budget per run")
	flag.IntVar(&opponents, "opponents", 4, "tower height (generated runs only)")
	flag.IntVar(&teamSize, "team-size", 3, "combatants per team (generated runs only)")
	flag.IntVar(&level, "level", 12, "starting level for generated combatants")
	flag.BoolVar(&fatigue, "fatigue", false, "apply 1 HP round fatigue to both survivors")
	flag.BoolVar(&restoreRetry, "restore-retry", false, "restore player HP before retrying a lost battle")
	flag.BoolVar(&restoreBetween, "restore-between", true, "restore player HP when a new opponent is reached")
	flag.StringVar(&catalogPath, "catalog", "", "optional species catalog YAML (default: built-in)")
	flag.StringVar(&chartPath, "chart", "", "optional type chart YAML (default: built-in)")
	flag.StringVar(&gauntletPath, "gauntlet", "", "optional gauntlet YAML with fixed player and opponents")
	flag.StringVar(&logLevel, "log-level", "warn", "process log level")
	flag.BoolVar(&verbose, "verbose", false, "record per-round HP snapshots in battle logs")
	flag.Parse()

	log := logger.New(logLevel)

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	mode, ok := battle.ParseMode(modeName)
	if !ok {
		fmt.Printf("error: unsupported mode %q (supported: set, rotating, optimised)\n", modeName)
		return
	}
	crit, ok := battle.ParseCriterion(critName)
	if !ok {
		fmt.Printf("error: unsupported criterion %q (supported: hp, attack, defense, speed, level)\n", critName)
		return
	}

	cat := battle.DefaultCatalog()
	chart := battle.DefaultTypeChart()
	var spec *config.GauntletSpec
	var err error
	if catalogPath != "" {
		if cat, err = config.LoadCatalog(catalogPath); err != nil {
			log.Fatal().Err(err).Str("path", catalogPath).Msg("load catalog")
		}
	}
	if chartPath != "" {
		if chart, err = config.LoadTypeChart(chartPath); err != nil {
			log.Fatal().Err(err).Str("path", chartPath).Msg("load type chart")
		}
	}
	if gauntletPath != "" {
		if spec, err = config.LoadGauntlet(gauntletPath); err != nil {
			log.Fatal().Err(err).Str("path", gauntletPath).Msg("load gauntlet config")
		}
	}

	log.Info().
		Int("runs", runs).
		Int64("seed_base", seedBase).
		Str("mode", mode.String()).
		Int("lives", lives).
		Msg("starting headless gauntlet runs")

	fmt.Printf("=== Headless Tower Report ===\n")
	fmt.Printf("mode=%s criterion=%s runs=%d lives=%d seed_base=%d seed_step=%d\n\n",
		mode, crit, runs, lives, seedBase, seedStep)

	cfg := battle.GauntletConfig{
		Lives:                   lives,
		Mode:                    mode,
		Criterion:               crit,
		RestoreOnRetry:          restoreRetry,
		RestoreBetweenOpponents: restoreBetween,
		Engine: battle.EngineConfig{
			RoundFatigue: fatigue,
			Verbose:      verbose,
		},
	}
	if spec != nil {
		// Fixed rosters from file; CLI flags still choose lives/mode if the
		// file left them at defaults the caller wants overridden.
		cfg.Lives = spec.Config.Lives
		cfg.Mode = spec.Config.Mode
		cfg.Criterion = spec.Config.Criterion
		cfg.RestoreOnRetry = spec.Config.RestoreOnRetry
		cfg.RestoreBetweenOpponents = spec.Config.RestoreBetweenOpponents
	}

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runGauntlet(i+1, seed, cat, chart, spec, cfg, opponents, teamSize, level)
		if err != nil {
			log.Error().Err(err).Int("run", i+1).Int64("seed", seed).Msg("gauntlet run failed")
			os.Exit(1)
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all, log)
}

func runGauntlet(runIndex int, seed int64, cat battle.Catalog, chart *battle.TypeChart, spec *config.GauntletSpec, cfg battle.GauntletConfig, opponents, teamSize, level int) (runStats, error) {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation only

	var playerName string
	var playerRoster []*battle.Combatant
	var foes []battle.Opponent
	var err error

	if spec != nil {
		playerName = spec.Player.Name
		if playerName == "" {
			playerName = "Player"
		}
		playerRoster, err = config.BuildRoster(cat, battle.SideA, spec.Player.Team)
		if err != nil {
			return runStats{}, err
		}
		for _, od := range spec.Opponents {
			roster, err := config.BuildRoster(cat, battle.SideB, od.Team)
			if err != nil {
				return runStats{}, err
			}
			foes = append(foes, battle.Opponent{Trainer: battle.NewTrainer(od.Name), Roster: roster})
		}
	} else {
		playerName = "Player"
		playerRoster = battle.RandomRoster(cat, rng, battle.SideA, teamSize, level)
		for i := 0; i < opponents; i++ {
			foes = append(foes, battle.Opponent{
				Trainer: battle.NewTrainer(fmt.Sprintf("Tower Trainer %d", i+1)),
				Roster:  battle.RandomRoster(cat, rng, battle.SideB, teamSize, level+i),
			})
		}
	}

	g, err := battle.NewGauntlet(battle.GauntletParams{
		Player:           battle.NewTrainer(playerName),
		PlayerRoster:     playerRoster,
		Opponents:        foes,
		Chart:            chart,
		Catalog:          cat,
		PlayerProvider:   battle.RandomProvider(rng),
		OpponentProvider: battle.RandomProvider(rng),
		Config:           cfg,
	})
	if err != nil {
		return runStats{}, err
	}

	res, err := g.Run(context.Background())
	if err != nil {
		return runStats{}, err
	}

	stats := runStats{
		runIndex:          runIndex,
		seed:              seed,
		outcome:           res.Outcome,
		battlesFought:     res.BattlesFought,
		opponentsDefeated: res.OpponentsDefeated,
		opponentsTotal:    len(foes),
		livesLeft:         res.LivesLeft,
		records:           res.Records,
	}
	for _, rec := range res.Records {
		stats.totalRounds += rec.Rounds
		if rec.Outcome == battle.OutcomeDraw {
			stats.drawBattles++
		}
		for _, lu := range rec.LevelUps {
			stats.levelUps++
			if lu.Evolved {
				stats.evolutions++
			}
		}
	}
	return stats, nil
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s battles=%d defeated=%d/%d lives_left=%d rounds_total=%d\n",
		rs.outcome, rs.battlesFought, rs.opponentsDefeated, rs.opponentsTotal, rs.livesLeft, rs.totalRounds)
	fmt.Printf("progression: level_ups=%d evolutions=%d draw_battles=%d\n",
		rs.levelUps, rs.evolutions, rs.drawBattles)
	for _, rec := range rs.records {
		verdict := "lost"
		if rec.Won {
			verdict = "won"
		} else if rec.Outcome == battle.OutcomeDraw {
			verdict = "draw"
		}
		fmt.Printf("  battle %d vs %-18s %-4s rounds=%-3d lives_left=%d alive=%d\n",
			rec.OpponentIndex+1, rec.Opponent, verdict, rec.Rounds, rec.LivesLeft, rec.PlayerAlive)
	}
	fmt.Println()
}

func printAggregate(all []runStats, log zerolog.Logger) {
	cleared := 0
	totalBattles := 0
	totalDefeated := 0
	totalLivesLeft := 0
	totalRounds := 0
	totalLevelUps := 0
	totalEvolutions := 0
	totalDraws := 0

	for _, rs := range all {
		if rs.outcome == battle.GauntletCleared {
			cleared++
		}
		totalBattles += rs.battlesFought
		totalDefeated += rs.opponentsDefeated
		totalLivesLeft += rs.livesLeft
		totalRounds += rs.totalRounds
		totalLevelUps += rs.levelUps
		totalEvolutions += rs.evolutions
		totalDraws += rs.drawBattles
	}

	fmt.Println("=== Aggregate Tower Results ===")
	fmt.Printf("runs=%d cleared=%d clear_rate=%.0f%%\n", len(all), cleared, clearRate(all))
	fmt.Printf("avg_per_run: battles=%.1f defeated=%.1f lives_left=%.1f rounds=%.1f\n",
		avg(totalBattles, len(all)), avg(totalDefeated, len(all)), avg(totalLivesLeft, len(all)), avg(totalRounds, len(all)))
	fmt.Printf("progression_totals: level_ups=%d evolutions=%d draw_battles=%d\n",
		totalLevelUps, totalEvolutions, totalDraws)

	log.Info().
		Int("runs", len(all)).
		Int("cleared", cleared).
		Float64("clear_rate", clearRate(all)).
		Msg("headless tower runs complete")
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func clearRate(all []runStats) float64 {
	if len(all) == 0 {
		return 0
	}
	cleared := 0
	for _, rs := range all {
		if rs.outcome == battle.GauntletCleared {
			cleared++
		}
	}
	return float64(cleared) / float64(len(all)) * 100
}
