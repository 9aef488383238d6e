package searcher

import (
	"math"

	"boardbots/experiments/metrics"
	"boardbots/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// Sampler is a single-player Monte Carlo searcher. Each round draws an action
// with probability proportional to its shifted heuristic score, plays a short
// random rollout and keeps the action with the best evaluated outcome.
type Sampler struct {
	score    game.ScoreAction
	evaluate game.Evaluate
	samples  int
	depth    int
	rng      *rand.Rand
	metrics  metrics.Collector
}

func NewSampler(score game.ScoreAction, evaluate game.Evaluate, opts ...Option) *Sampler {
	if score == nil || evaluate == nil {
		panic("Must specify action score and evaluation functions")
	}
	o := newOptions(opts)
	return &Sampler{
		score:    score,
		evaluate: evaluate,
		samples:  o.samples,
		depth:    o.sampleDepth,
		rng:      o.rng,
		metrics:  o.metrics,
	}
}

func (s *Sampler) ChooseAction(state game.State) (game.Action, error) {
	d, _, err := s.Search(state)
	return d.Action, err
}

func (s *Sampler) Search(state game.State) (Decision, metrics.SearchMetric, error) {
	s.metrics.Start("sampler")
	actions := state.LegalActions()
	if len(actions) == 0 {
		return Decision{}, s.metrics.Complete(), game.ErrNoLegalAction
	}

	weights, err := s.weights(state, actions)
	if err != nil {
		return Decision{}, s.metrics.Complete(), err
	}

	player := state.Player()
	var best game.Action
	bestScore := math.Inf(-1)
	for i := 0; i < s.samples; i++ {
		action := actions[sample(weights, s.rng)]
		score, err := s.simulate(state, action, player)
		s.metrics.AddEpisode()
		if err != nil {
			s.metrics.AddAbortedPlayout()
			log.Warn().Err(err).Str("action", action.String()).Msg("sample aborted")
			continue
		}
		if score > bestScore {
			best, bestScore = action, score
		}
	}

	if best == nil {
		best = actions[s.rng.Intn(len(actions))]
		log.Debug().Str("action", best.String()).Msg("sampler fell back to a random action")
	}
	return Decision{Action: best, Value: bestScore}, s.metrics.Complete(), nil
}

// weights shifts the action scores so the lowest becomes 1.
func (s *Sampler) weights(state game.State, actions []game.Action) ([]float64, error) {
	scores := make([]float64, len(actions))
	for i, action := range actions {
		score, err := s.score(state, action)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	low := lo.Min(scores)
	return lo.Map(scores, func(score float64, _ int) float64 {
		return score - low + 1
	}), nil
}

func (s *Sampler) simulate(state game.State, action game.Action, player game.Player) (float64, error) {
	state, err := state.Clone().Apply(action)
	if err != nil {
		return 0, err
	}
	for depth := 0; depth < s.depth; depth++ {
		actions := state.LegalActions()
		if len(actions) == 0 {
			break
		}
		next := actions[s.rng.Intn(len(actions))]
		if !state.Validate(next) {
			break
		}
		if state, err = state.Apply(next); err != nil {
			return 0, err
		}
	}
	if state.IsTerminal() {
		s.metrics.AddFullPlayout()
	}
	return s.evaluate(state, player)
}

// sample draws an index with probability proportional to its weight.
func sample(weights []float64, rng *rand.Rand) int {
	r := rng.Float64() * lo.Sum(weights)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}
