package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boardbots/experiments/metrics"
	"boardbots/game"
	"boardbots/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// LocalEngine runs every agent in process. Agent i plays as player i.
type LocalEngine struct {
	state    game.State
	agents   []agent.Agent
	maxMoves int
}

func NewLocalEngine(state game.State, agents []agent.Agent, maxMoves int) *LocalEngine {
	if len(agents) == 0 {
		panic("need at least one agent")
	}
	if maxMoves <= 0 || maxMoves > MaxMoves {
		maxMoves = MaxMoves
	}
	return &LocalEngine{state: state, agents: agents, maxMoves: maxMoves}
}

// State is the latest position, the final one once Run returns.
func (e *LocalEngine) State() game.State {
	return e.state
}

func (e *LocalEngine) Run(ctx context.Context) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.state.Player()),
		Winner:         int(game.NoPlayer),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	finish := func() metrics.GameMetric {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
		if e.state.IsTerminal() {
			gameMetric.Winner = int(e.state.Winner())
		}
		return gameMetric
	}

	log.Debug().Msgf("player %d is starting", e.state.Player())

	for step := 1; !e.state.IsTerminal() && step <= e.maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return game.NoPlayer, finish(), moveMetrics, err
		}
		player := e.state.Player()
		if int(player) < 0 || int(player) >= len(e.agents) {
			return game.NoPlayer, finish(), moveMetrics, fmt.Errorf("%w: no agent for player %d", game.ErrInvalidState, player)
		}

		legal := e.state.LegalActions()
		action, searchMetric, err := e.agents[player].Act(ctx, e.state)
		if errors.Is(err, game.ErrNoLegalAction) || len(legal) == 0 {
			log.Debug().Int("step", step).Msg("no legal action left, stopping")
			break
		}
		if err != nil {
			return game.NoPlayer, finish(), moveMetrics, fmt.Errorf("player %d at step %d: %w", player, step, err)
		}

		if !lo.Contains(legal, action) {
			log.Warn().Msgf("player %d chose illegal action %v, playing %v instead", player, action, legal[0])
			action = legal[0]
		}

		next, err := e.state.Apply(action)
		if err != nil {
			return game.NoPlayer, finish(), moveMetrics, fmt.Errorf("player %d at step %d: %w", player, step, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Action:       action.String(),
			SearchMetric: searchMetric,
		})
		e.state = next
	}

	if !e.state.IsTerminal() {
		log.Debug().Msgf("stopped after %d moves without a result", len(moveMetrics))
	}
	gm := finish()
	return game.Player(gm.Winner), gm, moveMetrics, nil
}
