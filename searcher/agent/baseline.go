package agent

import (
	"context"
	"fmt"
	"time"

	"boardbots/experiments/metrics"
	"boardbots/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent plays a uniformly random legal action.
func NewRandomAgent(rng *rand.Rand) Agent {
	return &randomAgent{rng: rng}
}

func (a *randomAgent) Act(_ context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Algorithm: "random"}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, metric, game.ErrNoLegalAction
	}
	return actions[a.rng.Intn(len(actions))], metric, nil
}

type greedyAgent struct {
	score game.ScoreAction
}

// NewGreedyAgent plays the action with the highest one-ply score, the first
// one on ties.
func NewGreedyAgent(score game.ScoreAction) Agent {
	return greedyAgent{score: score}
}

func (a greedyAgent) Act(_ context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	start := time.Now()
	metric := metrics.SearchMetric{Algorithm: "greedy"}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, metric, game.ErrNoLegalAction
	}
	var best game.Action
	var bestScore float64
	for _, action := range actions {
		score, err := a.score(state, action)
		if err != nil {
			return nil, metric, fmt.Errorf("scoring %v: %w", action, err)
		}
		metric.Nodes++
		if best == nil || score > bestScore {
			best, bestScore = action, score
		}
	}
	metric.Duration = time.Since(start)
	return best, metric, nil
}
