package searcher

import (
	"boardbots/game"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// RolloutPolicy picks the next action of a playout from a non-empty actions.
type RolloutPolicy func(state game.State, actions []game.Action, rng *rand.Rand) game.Action

func RandomRollout(_ game.State, actions []game.Action, rng *rand.Rand) game.Action {
	return actions[rng.Intn(len(actions))]
}

// PreferRollout plays the first legal action of preferred, in priority order,
// and falls back to a uniform choice.
func PreferRollout(preferred ...game.Action) RolloutPolicy {
	return func(state game.State, actions []game.Action, rng *rand.Rand) game.Action {
		for _, p := range preferred {
			if lo.Contains(actions, p) {
				return p
			}
		}
		return RandomRollout(state, actions, rng)
	}
}
