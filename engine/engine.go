package engine

import (
	"context"

	"boardbots/experiments/metrics"
	"boardbots/game"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is over, no action is left or a max number of
	// moves is reached. The winner is game.NoPlayer for draws and unfinished
	// games.
	Run(ctx context.Context) (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
