package agent

import (
	"context"
	"math"
	"sort"

	"boardbots/experiments/metrics"
	"boardbots/game"
	"boardbots/game/hlpoker"
	"boardbots/searcher"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type mctsAgent struct {
	mcts *searcher.MCTS
	rng  *rand.Rand // resamples hidden information
}

// NewMCTSAgent plays the action MCTS rates best. Poker states are determinized
// from the acting player's view before every search.
func NewMCTSAgent(mcts *searcher.MCTS, rng *rand.Rand) Agent {
	return &mctsAgent{mcts: mcts, rng: rng}
}

func (a *mctsAgent) Act(_ context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	d, metric, err := a.mcts.Search(determinize(state, a.rng))
	return d.Action, metric, err
}

type samplingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewSamplingAgent draws its action from the root visit distribution of MCTS
// sharpened or flattened by temperature. It varies play between otherwise
// identical games.
func NewSamplingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	if temperature <= 0 {
		temperature = 1
	}
	return &samplingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a *samplingAgent) Act(_ context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	d, metric, err := a.mcts.Search(determinize(state, a.rng))
	if err != nil {
		return nil, metric, err
	}
	policy := adjustTemperature(d.Policy, a.temperature)
	if len(policy) == 0 {
		return d.Action, metric, nil
	}
	return sample(policy, a.rng), metric, nil
}

func adjustTemperature(policy map[game.Action]float64, temperature float64) map[game.Action]float64 {
	exponent := 1.0 / temperature
	adjusted := lo.MapValues(policy, func(visits float64, _ game.Action) float64 {
		return math.Pow(visits, exponent)
	})
	sum := lo.Sum(lo.Values(adjusted))
	if sum == 0 {
		return adjusted
	}
	for action := range adjusted {
		adjusted[action] /= sum
	}
	return adjusted
}

// sample walks the actions in a fixed order so a seeded rng replays the same
// choice.
func sample(policy map[game.Action]float64, rng *rand.Rand) game.Action {
	actions := lo.Keys(policy)
	sort.Slice(actions, func(i, j int) bool { return actions[i].String() < actions[j].String() })
	sampled := rng.Float64()
	cumulative := 0.0
	for _, action := range actions {
		cumulative += policy[action]
		if sampled < cumulative {
			return action
		}
	}
	return actions[len(actions)-1] // rounding
}

// determinize hides what the player to move cannot see by resampling it.
func determinize(state game.State, rng *rand.Rand) game.State {
	if s, ok := state.(*hlpoker.State); ok && !s.IsTerminal() {
		return s.Determinize(s.Player(), rng)
	}
	return state
}
