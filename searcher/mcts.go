package searcher

import (
	"fmt"
	"time"

	"boardbots/experiments/metrics"
	"boardbots/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MCTS is a UCT searcher. Every decision builds a fresh tree that is
// discarded when the decision returns.
type MCTS struct {
	episodes    int
	duration    time.Duration
	cutoff      int
	exploration float64
	evaluate    game.Evaluate
	rollout     RolloutPolicy
	rng         *rand.Rand
	now         func() time.Time
	metrics     metrics.Collector
}

func NewMCTS(opts ...Option) *MCTS {
	o := newOptions(opts)
	if o.episodes <= 0 && o.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return &MCTS{
		episodes:    o.episodes,
		duration:    o.duration,
		cutoff:      o.cutoff,
		exploration: o.exploration,
		evaluate:    o.evaluate,
		rollout:     o.rollout,
		rng:         o.rng,
		now:         o.now,
		metrics:     o.metrics,
	}
}

// ChooseAction returns the root action with the best win rate, or
// ErrNoLegalAction with a nil action when state has none.
func (m *MCTS) ChooseAction(state game.State) (game.Action, error) {
	d, _, err := m.Search(state)
	return d.Action, err
}

func (m *MCTS) Search(state game.State) (Decision, metrics.SearchMetric, error) {
	m.metrics.Start("mcts")
	if len(state.LegalActions()) == 0 {
		return Decision{}, m.metrics.Complete(), game.ErrNoLegalAction
	}

	t := m.build(state)
	best := t.bestChild(0)
	if best == noParent {
		return Decision{}, m.metrics.Complete(), fmt.Errorf("no simulation completed: %w", game.ErrNoLegalAction)
	}
	chosen := &t.nodes[best]
	decision := Decision{
		Action: chosen.action,
		Value:  chosen.winRate(),
		Policy: t.policy(),
	}
	metric := m.metrics.Complete()
	log.Debug().
		Str("action", chosen.action.String()).
		Float64("winRate", decision.Value).
		Int("visits", t.root().visits).
		Int("nodes", len(t.nodes)).
		Msg("mcts decision")
	return decision, metric, nil
}

// build grows a tree from state for the configured budget.
func (m *MCTS) build(state game.State) *tree {
	t := newTree(state)
	if m.episodes > 0 {
		for i := 0; i < m.episodes; i++ {
			m.simulate(t)
			m.metrics.AddEpisode()
		}
		return t
	}
	deadline := m.now().Add(m.duration)
	for m.now().Before(deadline) {
		m.simulate(t)
		m.metrics.AddEpisode()
	}
	return t
}

func (m *MCTS) simulate(t *tree) {
	leaf, err := m.selectThenExpand(t)
	if err == nil {
		var outcome func(game.Player) game.Outcome
		outcome, err = m.playout(t.nodes[leaf].state)
		if err == nil {
			t.backup(leaf, outcome)
			return
		}
	}
	m.metrics.AddAbortedPlayout()
	log.Warn().Err(err).Msg("simulation aborted")
}

// selectThenExpand descends by UCB1 until a node with untried actions or a
// node without children, expanding one child in the former case.
func (m *MCTS) selectThenExpand(t *tree) (int, error) {
	i := 0
	for {
		n := &t.nodes[i]
		if len(n.untried) > 0 {
			child, err := t.expand(i)
			if err != nil {
				return noParent, err
			}
			m.metrics.AddNode()
			return child, nil
		}
		if len(n.children) == 0 {
			return i, nil
		}
		i = t.pickChild(i, m.exploration)
	}
}

// playout runs the rollout policy from a clone of state until the game ends or
// the cutoff is reached and returns the outcome for each player.
func (m *MCTS) playout(state game.State) (func(game.Player) game.Outcome, error) {
	state = state.Clone()
	for depth := 0; !state.IsTerminal() && depth < m.cutoff; depth++ {
		actions := state.LegalActions()
		if len(actions) == 0 {
			break
		}
		action := m.rollout(state, actions, m.rng)
		next, err := state.Apply(action)
		if err != nil {
			return nil, err
		}
		state = next
	}

	if state.IsTerminal() {
		m.metrics.AddFullPlayout()
		return rewarder(state.Winner()), nil
	}
	if m.evaluate == nil {
		return draw, nil
	}
	// Score the cutoff state for the player to move
	actor := state.Player()
	score, err := m.evaluate(state, actor)
	if err != nil {
		return nil, err
	}
	switch {
	case score > 0:
		return rewarder(actor), nil
	case score < 0:
		return func(p game.Player) game.Outcome {
			if p == actor {
				return game.Loss
			}
			return game.Win
		}, nil
	}
	return draw, nil
}

func rewarder(winner game.Player) func(game.Player) game.Outcome {
	return func(player game.Player) game.Outcome {
		return game.OutcomeFor(winner, player)
	}
}

func draw(game.Player) game.Outcome {
	return game.Draw
}
