package agent

import (
	"context"

	"boardbots/experiments/metrics"
	"boardbots/game"
	"boardbots/searcher"
)

type minimaxAgent struct {
	search *searcher.AlphaBeta
	depth  int
}

// NewMinimaxAgent searches depth plies with alpha-beta for the player to move.
// The transposition cache is kept across decisions.
func NewMinimaxAgent(evaluate game.Evaluate, depth int, opts ...searcher.Option) Agent {
	if depth < 1 {
		depth = searcher.DefaultDepth
	}
	return &minimaxAgent{search: searcher.NewAlphaBeta(evaluate, opts...), depth: depth}
}

func (a *minimaxAgent) Act(ctx context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	d, metric, err := a.search.Search(ctx, state, a.depth, state.Player())
	return d.Action, metric, err
}
