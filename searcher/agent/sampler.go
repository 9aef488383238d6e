package agent

import (
	"context"

	"boardbots/experiments/metrics"
	"boardbots/game"
	"boardbots/searcher"
)

type samplerAgent struct {
	sampler *searcher.Sampler
}

// NewSamplerAgent plays the sampled action whose random rollout scored best.
func NewSamplerAgent(sampler *searcher.Sampler) Agent {
	return samplerAgent{sampler: sampler}
}

func (a samplerAgent) Act(_ context.Context, state game.State) (game.Action, metrics.SearchMetric, error) {
	d, metric, err := a.sampler.Search(state)
	return d.Action, metric, err
}
