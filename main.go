package main

import (
	"flag"
	"fmt"
	"os"

	"quixo/config"
	"quixo/experiments"
	"quixo/game"
	"quixo/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", "", "Path to a YAML config file; the environment is used when empty")
	experiment := flag.String("experiment", "", fmt.Sprintf("Named experiment to run, one of %v", experiments.Names()))
	games := flag.Int("games", 0, fmt.Sprintf("Games per matchup, overrides the config (config default %d)", meta.GAMES))
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *experiment != "" {
		cfg.Experiment = *experiment
	}
	if *games > 0 {
		cfg.Games = *games
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Experiment != "" {
		if err := experiments.RunExperiment(cfg.Experiment, cfg.Settings()); err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", cfg.Experiment)
		}
		return
	}

	result, err := experiments.RunMatchUp(cfg.PlayerZero, cfg.PlayerOne, cfg.Settings())
	if err != nil {
		log.Fatal().Err(err).Msg("matchup failed")
	}
	log.Info().Msgf("player zero won %d, player one won %d, %d unfinished, in %s",
		result.Wins[game.PlayerZero], result.Wins[game.PlayerOne], result.Unfinished, result.Duration)
	fmt.Printf("Win rate: %v\n", result.WinRate(game.PlayerZero))
}
