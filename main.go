package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"boardbots/config"
	"boardbots/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config; defaults are used without one")
	gameName := flag.String("game", "", "Overrides experiment.game (connect4, hlpoker, minesweeper)")
	games := flag.Int("games", 0, "Overrides experiment.games per matchup")
	seed := flag.Uint64("seed", 0, "Overrides search.seed; 0 keeps the configured seed")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *gameName != "" {
		cfg.Experiment.Game = *gameName
		if *configPath == "" {
			cfg.Experiment.Agents = config.DefaultAgents(*gameName)
		}
	}
	if *games > 0 {
		cfg.Experiment.Games = *games
	}
	if *seed != 0 {
		cfg.Search.Seed = *seed
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("unknown log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := experiments.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().Msgf("%d games written to %s", len(report.Games), report.Dir)
}
