package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/winniewing52/Pocket-Monsters/internal/battle"
	"github.com/winniewing52/Pocket-Monsters/internal/logger"
)

func main() {
	var seed int64
	var modeName string
	var critName string
	var logLevel string

	flag.Int64Var(&seed, "seed", 42, "RNG seed for the showcased battle")
	flag.StringVar(&modeName, "mode", "optimised", "battle mode: set, rotating or optimised")
	flag.StringVar(&critName, "criterion", "hp", "optimised-mode ordering criterion")
	flag.StringVar(&logLevel, "log-level", "info", "process log level")
	flag.Parse()

	log := logger.New(logLevel)

	mode, ok := battle.ParseMode(modeName)
	if !ok {
		log.Fatal().Str("mode", modeName).Msg("unknown battle mode")
	}
	crit, ok := battle.ParseCriterion(critName)
	if !ok {
		log.Fatal().Str("criterion", critName).Msg("unknown criterion")
	}

	sim, err := battle.NewBattleSim(
		battle.WithSeed(seed),
		battle.WithMode(mode),
		battle.WithCriterion(crit),
		battle.WithTrainers("Ash", "Gary"),
		battle.WithTeamAMember("Charmander", 14),
		battle.WithTeamAMember("Squirtle", 14),
		battle.WithTeamAMember("Pikachu", 14),
		battle.WithTeamBMember("Bulbasaur", 14),
		battle.WithTeamBMember("Geodude", 14),
		battle.WithTeamBMember("Gastly", 14),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("build battle")
	}

	log.Info().
		Int64("seed", seed).
		Str("mode", mode.String()).
		Str("battle_id", sim.Engine.ID()).
		Msg("starting battle viewer")

	ebiten.SetWindowTitle("Pocket Monsters")
	ebiten.SetWindowSize(960, 540)
	if err := ebiten.RunGame(battle.NewViewer(sim.Engine)); err != nil {
		log.Fatal().Err(err).Msg("viewer exited")
	}
}
