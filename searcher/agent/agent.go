package agent

import (
	"context"
	"fmt"

	"boardbots/config"
	"boardbots/experiments/metrics"
	"boardbots/game"
	"boardbots/game/connect4"
	"boardbots/game/hlpoker"
	"boardbots/game/minesweeper"
	"boardbots/searcher"
)

type Agent interface {
	// Act returns the action for the player to move in state along with the
	// metrics of the search behind it. Agents return game.ErrNoLegalAction
	// when state offers no action.
	Act(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error)
}

type Kind string

const (
	Minimax    Kind = "minimax"
	MCTS       Kind = "mcts"
	MCTSSample Kind = "mcts-sample"
	Rules      Kind = "rules"
	Sampler    Kind = "sampler"
	Greedy     Kind = "greedy"
	Random     Kind = "random"
)

// New builds an agent of kind for gameName. seed 0 draws a random seed.
func New(kind Kind, gameName string, cfg config.Search, seed uint64) (Agent, error) {
	switch kind {
	case Minimax:
		evaluate, err := evaluator(gameName)
		if err != nil {
			return nil, fmt.Errorf("%s agent: %w", kind, err)
		}
		return NewMinimaxAgent(evaluate, cfg.Depth, alphaBetaOptions(cfg)...), nil
	case MCTS, MCTSSample:
		opts, err := mctsOptions(gameName, cfg, seed)
		if err != nil {
			return nil, fmt.Errorf("%s agent: %w", kind, err)
		}
		mcts := searcher.NewMCTS(opts...)
		if kind == MCTSSample {
			return NewSamplingAgent(mcts, cfg.Temperature, searcher.NewRand(offset(seed, 1))), nil
		}
		return NewMCTSAgent(mcts, searcher.NewRand(offset(seed, 1))), nil
	case Rules:
		if gameName != config.Poker {
			return nil, fmt.Errorf("%s agent only plays %s, not %s", kind, config.Poker, gameName)
		}
		return NewRuleAgent(), nil
	case Sampler:
		score, err := actionScorer(gameName)
		if err != nil {
			return nil, fmt.Errorf("%s agent: %w", kind, err)
		}
		evaluate, _ := evaluator(gameName)
		return NewSamplerAgent(searcher.NewSampler(score, evaluate,
			searcher.WithSamples(cfg.Samples),
			searcher.WithSampleDepth(cfg.SampleDepth),
			searcher.WithSeed(seed),
			searcher.WithMetrics(),
		)), nil
	case Greedy:
		score, err := actionScorer(gameName)
		if err != nil {
			return nil, fmt.Errorf("%s agent: %w", kind, err)
		}
		return NewGreedyAgent(score), nil
	case Random:
		return NewRandomAgent(searcher.NewRand(seed)), nil
	default:
		return nil, fmt.Errorf("unknown agent kind: %q", kind)
	}
}

func evaluator(gameName string) (game.Evaluate, error) {
	switch gameName {
	case config.Connect4:
		return connect4.Evaluate, nil
	case config.Minesweeper:
		return minesweeper.Evaluate, nil
	default:
		return nil, fmt.Errorf("no evaluation function for %s", gameName)
	}
}

func actionScorer(gameName string) (game.ScoreAction, error) {
	switch gameName {
	case config.Connect4:
		return connect4.ScoreDrop, nil
	case config.Minesweeper:
		return minesweeper.Heuristic, nil
	default:
		return nil, fmt.Errorf("no action heuristic for %s", gameName)
	}
}

func alphaBetaOptions(cfg config.Search) []searcher.Option {
	opts := []searcher.Option{
		searcher.WithTimeBudget(cfg.TimeBudget),
		searcher.WithMetrics(),
	}
	if cfg.CacheCapacity > 0 {
		opts = append(opts, searcher.WithCache(searcher.NewBoundedTable(cfg.CacheCapacity/2, 2)))
	}
	return opts
}

func mctsOptions(gameName string, cfg config.Search, seed uint64) ([]searcher.Option, error) {
	opts := []searcher.Option{
		searcher.WithEpisodes(cfg.Simulations),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}
	switch gameName {
	case config.Poker:
		opts = append(opts, searcher.WithRollout(searcher.PreferRollout(hlpoker.Raise, hlpoker.Call)))
	case config.Connect4, config.Minesweeper:
	default:
		return nil, fmt.Errorf("unknown game %s", gameName)
	}
	if cfg.Cutoff > 0 {
		opts = append(opts, searcher.WithCutoff(cfg.Cutoff))
		if evaluate, err := evaluator(gameName); err == nil {
			opts = append(opts, searcher.WithEvaluationFn(evaluate))
		}
	}
	return opts, nil
}

// offset derives a second seed for an agent that owns two random sources.
func offset(seed, n uint64) uint64 {
	if seed == 0 {
		return 0
	}
	return seed + n
}
