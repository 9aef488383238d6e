package agent

import (
	"context"
	"fmt"
	"time"

	"boardbots/experiments/metrics"
	"boardbots/game"
	"boardbots/game/hlpoker"

	"github.com/rs/zerolog/log"
)

type ruleAgent struct{}

// NewRuleAgent plays limit poker from the hand-strength decision table
// without searching.
func NewRuleAgent() Agent {
	return ruleAgent{}
}

func (ruleAgent) Act(_ context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	start := time.Now()
	metric := metrics.SearchMetric{Algorithm: "rules"}
	s, ok := state.(*hlpoker.State)
	if !ok {
		return nil, metric, fmt.Errorf("%w: rule agent cannot play %T", game.ErrInvalidState, state)
	}
	if s.IsTerminal() {
		return nil, metric, game.ErrNoLegalAction
	}

	hole := s.Hole(s.Player())
	action := hlpoker.Decide(s.Round(), hole, s.Board())
	if !s.Validate(action) {
		// Raises are capped; keep the hand going.
		action = hlpoker.Call
	}

	if s.Round() == hlpoker.River {
		if desc, err := hlpoker.Describe(append(hole[:], s.Board()...)); err == nil {
			log.Debug().Str("hand", desc).Str("action", action.String()).Msg("river decision")
		}
	}
	metric.Duration = time.Since(start)
	return action, metric, nil
}
