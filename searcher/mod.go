package searcher

import (
	"math"
	"time"

	"boardbots/game"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Hyperparameters

const DefaultDepth = 4
const DefaultTimeBudget = time.Second
const DefaultEpisodes = 1000
const Exploration = 1.4 // UCB1 exploration constant
const MaxCutoff = math.MaxInt

const DefaultSamples = 50
const DefaultSampleDepth = 5

// Decision is the outcome of one search.
type Decision struct {
	Action game.Action
	// Value is the minimax value for alpha-beta, the win rate of the chosen
	// child for MCTS and the best rollout score for sampling.
	Value float64
	// Policy holds the visit share of each root action (MCTS only).
	Policy map[game.Action]float64
}

// NewRand returns an owned random source. A zero seed draws one from the
// system entropy pool.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return rand.New(rand.NewSource(seed))
}
