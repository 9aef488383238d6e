package experiments

import (
	"context"
	"fmt"
	"time"

	"boardbots/config"
	"boardbots/engine"
	"boardbots/experiments/metrics"
	"boardbots/game"
	"boardbots/game/connect4"
	"boardbots/game/hlpoker"
	"boardbots/game/minesweeper"
	"boardbots/searcher"
	"boardbots/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Report is what an experiment produced. Dir is empty when nothing was
// written.
type Report struct {
	Dir      string
	Configs  []metrics.AgentConfig
	Games    []metrics.GameRecord
	Moves    []metrics.MoveRecord
	Standing []Standing
}

// Run plays every matchup of the configured agents and stores the results
// under cfg.Experiment.OutputDir. Two player games pair every two agents and
// swap seats between games; single player games give each agent its own
// series.
func Run(ctx context.Context, cfg config.Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	report, err := Play(ctx, cfg)
	if err != nil {
		return report, err
	}

	writer, err := metrics.NewWriter(cfg.Experiment.OutputDir, cfg.Experiment.Name, time.Now())
	if err != nil {
		return report, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	report.Dir = writer.Dir()

	if err := writer.WriteAgentConfigs(report.Configs); err != nil {
		return report, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return report, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return report, fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteMoveParquet(report.Moves); err != nil {
		return report, fmt.Errorf("failed to write move parquet: %w", err)
	}
	log.Info().Msgf("stored move records in %s", report.Dir)
	return report, nil
}

// Play runs the games of an experiment without storing them.
func Play(ctx context.Context, cfg config.Config) (Report, error) {
	exp := cfg.Experiment
	configs := agentConfigs(exp.Agents, cfg.Search)
	for _, c := range configs {
		if _, err := agent.New(agent.Kind(c.Kind), exp.Game, cfg.Search, 0); err != nil {
			return Report{}, err
		}
	}

	matchUps := matchUps(exp.Game, configs)
	total := len(matchUps) * exp.Games
	log.Info().Msgf("starting %s experiment: %d agents, %d matchups, %d games of %s",
		exp.Name, len(configs), len(matchUps), total, exp.Game)

	// One errgroup job per matchup; its agents live for the whole series so
	// caches carry over between games.
	games := make([]metrics.GameRecord, total)
	moves := make([][]metrics.MoveRecord, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exp.Parallel)
	for m, matchUp := range matchUps {
		g.Go(func() error {
			agents, err := newAgents(cfg, m+1, matchUp)
			if err != nil {
				return err
			}
			first := m*exp.Games + 1
			records, moveRecords, err := playSeries(gctx, cfg, first, matchUp, agents)
			if err != nil {
				return err
			}
			copy(games[first-1:], records)
			copy(moves[first-1:], moveRecords)
			return nil
		})
	}
	report := Report{Configs: configs}
	if err := g.Wait(); err != nil {
		return report, err
	}

	report.Games = games
	report.Moves = lo.Flatten(moves)
	report.Standing = Standings(configs, games, report.Moves)
	for _, s := range report.Standing {
		log.Info().Msgf("agent %d (%s): %d wins, %d draws, %d losses in %d games, %v per move, %.0f nodes/s",
			s.Agent, s.Kind, s.Wins, s.Draws, s.Losses, s.Games, s.MeanDecision, s.NodesPerSecond)
	}
	log.Info().Msgf("completed %s experiment", exp.Name)
	return report, nil
}

func agentConfigs(kinds []string, search config.Search) []metrics.AgentConfig {
	return lo.Map(kinds, func(kind string, i int) metrics.AgentConfig {
		return metrics.AgentConfig{
			ID:          i + 1,
			Kind:        kind,
			Depth:       search.Depth,
			TimeBudget:  search.TimeBudget,
			Simulations: search.Simulations,
			Exploration: search.Exploration,
			Cutoff:      search.Cutoff,
			Samples:     search.Samples,
			SampleDepth: search.SampleDepth,
		}
	})
}

func matchUps(gameName string, configs []metrics.AgentConfig) [][]metrics.AgentConfig {
	var matchUps [][]metrics.AgentConfig
	if gameName == config.Minesweeper {
		for _, c := range configs {
			matchUps = append(matchUps, []metrics.AgentConfig{c})
		}
		return matchUps
	}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, []metrics.AgentConfig{configs[i], configs[j]})
		}
	}
	return matchUps
}

// seed gives every agent of a matchup and every deal of a game its own
// reproducible stream, or random streams when the experiment is unseeded.
func seed(base uint64, id, slot int) uint64 {
	if base == 0 {
		return 0
	}
	return base + uint64(id)*1000 + uint64(slot)*10
}

// newAgents builds one agent per seat of a matchup.
func newAgents(cfg config.Config, matchUp int, seats []metrics.AgentConfig) ([]agent.Agent, error) {
	agents := make([]agent.Agent, len(seats))
	for i, c := range seats {
		a, err := agent.New(agent.Kind(c.Kind), cfg.Experiment.Game, cfg.Search, seed(cfg.Search.Seed, matchUp, i))
		if err != nil {
			return nil, err
		}
		agents[i] = a
	}
	return agents, nil
}

// playSeries plays cfg.Experiment.Games games between the same agents,
// numbering them from first. Two player games swap seats on every other game.
func playSeries(ctx context.Context, cfg config.Config, first int, seats []metrics.AgentConfig, agents []agent.Agent) ([]metrics.GameRecord, [][]metrics.MoveRecord, error) {
	n := cfg.Experiment.Games
	records := make([]metrics.GameRecord, 0, n)
	moves := make([][]metrics.MoveRecord, 0, n)
	for i := 0; i < n; i++ {
		id := first + i
		s, a := seats, agents
		if len(seats) == 2 && i%2 == 1 {
			s = []metrics.AgentConfig{seats[1], seats[0]}
			a = []agent.Agent{agents[1], agents[0]}
		}
		record, moveMetrics, err := runGame(ctx, cfg, id, s, a)
		if err != nil {
			return nil, nil, fmt.Errorf("game %d: %w", id, err)
		}
		records = append(records, record)
		moves = append(moves, lo.Map(moveMetrics, func(m metrics.MoveMetric, _ int) metrics.MoveRecord {
			return metrics.MoveRecord{Game: id, MoveMetric: m}
		}))
		log.Info().Msgf("completed game %d with winner: %d", id, record.Winner)
	}
	return records, moves, nil
}

// runGame executes a single game between the seated agents
func runGame(ctx context.Context, cfg config.Config, id int, seats []metrics.AgentConfig, agents []agent.Agent) (metrics.GameRecord, []metrics.MoveMetric, error) {
	state, err := newState(cfg.Experiment, searcher.NewRand(seed(cfg.Search.Seed, id, 9)))
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	var e engine.Engine = engine.NewLocalEngine(state, agents, cfg.Experiment.MaxMoves)
	_, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	record := metrics.GameRecord{ID: id, Agent1: seats[0].ID, GameMetric: gameMetric}
	if len(seats) > 1 {
		record.Agent2 = seats[1].ID
	}
	return record, moveMetrics, nil
}

// newState deals the opening position. Poker seats player 0 as dealer; seats
// swap between games instead.
func newState(exp config.Experiment, rng *rand.Rand) (game.State, error) {
	switch exp.Game {
	case config.Connect4:
		return connect4.NewStandardState(), nil
	case config.Poker:
		return hlpoker.NewState(rng, 0), nil
	case config.Minesweeper:
		s, err := minesweeper.NewState(exp.Board.Rows, exp.Board.Cols, exp.Board.Mines, rng)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown game %q", exp.Game)
	}
}
