package searcher

import (
	"time"

	"boardbots/experiments/metrics"
	"boardbots/game"

	"golang.org/x/exp/rand"
)

// Option configures any searcher; each searcher reads the settings it uses.
type Option func(o *options)

type options struct {
	episodes    int
	duration    time.Duration
	cutoff      int
	exploration float64
	evaluate    game.Evaluate
	rollout     RolloutPolicy
	rng         *rand.Rand
	metrics     metrics.Collector
	cache       Cache
	prune       bool
	budget      time.Duration
	now         func() time.Time
	samples     int
	sampleDepth int
}

func newOptions(opts []Option) options {
	o := options{ // Default values
		episodes:    DefaultEpisodes,
		cutoff:      MaxCutoff,
		exploration: Exploration,
		rollout:     RandomRollout,
		metrics:     metrics.NewDummyCollector(),
		prune:       true,
		budget:      DefaultTimeBudget,
		now:         time.Now,
		samples:     DefaultSamples,
		sampleDepth: DefaultSampleDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(0)
	}
	return o
}

// WithEpisodes fixes the number of MCTS simulations per decision.
func WithEpisodes(episodes int) Option {
	return func(o *options) {
		if episodes > 0 {
			o.episodes = episodes
			o.duration = 0
		}
	}
}

// WithDuration runs MCTS simulations until duration elapses instead of for a
// fixed count.
func WithDuration(duration time.Duration) Option {
	return func(o *options) {
		if duration > 0 {
			o.duration = duration
			o.episodes = 0
		}
	}
}

// WithCutoff limits rollouts to depth moves. States reached at the cutoff are
// scored with the evaluation function, or count as draws without one.
func WithCutoff(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.cutoff = depth
		}
	}
}

func WithExploration(c float64) Option {
	return func(o *options) {
		if c >= 0 {
			o.exploration = c
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(o *options) {
		if evaluate != nil {
			o.evaluate = evaluate
		}
	}
}

func WithRollout(policy RolloutPolicy) Option {
	return func(o *options) {
		if policy != nil {
			o.rollout = policy
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = NewRand(seed)
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}

// WithCache replaces the default unbounded transposition table.
func WithCache(cache Cache) Option {
	return func(o *options) {
		if cache != nil {
			o.cache = cache
		}
	}
}

// WithoutCache turns memoization off entirely.
func WithoutCache() Option {
	return func(o *options) {
		o.cache = noCache{}
	}
}

// WithoutPruning searches every child with an open window, making alpha-beta
// an exhaustive minimax.
func WithoutPruning() Option {
	return func(o *options) {
		o.prune = false
	}
}

// WithTimeBudget sets the wall-clock allowance of one alpha-beta decision. A
// non-positive budget disables the deadline.
func WithTimeBudget(budget time.Duration) Option {
	return func(o *options) {
		o.budget = budget
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSamples sets how many sample-and-rollout rounds the sampler runs.
func WithSamples(samples int) Option {
	return func(o *options) {
		if samples > 0 {
			o.samples = samples
		}
	}
}

func WithSampleDepth(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.sampleDepth = depth
		}
	}
}

type noCache struct{}

func (noCache) Get(game.Key) (Entry, bool) { return Entry{}, false }
func (noCache) Put(game.Key, Entry)        {}
func (noCache) Len() int                   { return 0 }
func (noCache) Clear()                     {}
