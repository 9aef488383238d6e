package searcher

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"boardbots/experiments/metrics"
	"boardbots/game"

	"github.com/rs/zerolog/log"
)

// AlphaBeta is a depth-bounded minimax searcher with alpha-beta pruning,
// one-ply move ordering and a transposition cache that outlives decisions.
type AlphaBeta struct {
	evaluate game.Evaluate
	cache    Cache
	prune    bool
	budget   time.Duration
	now      func() time.Time
	metrics  metrics.Collector
}

type candidate struct {
	action game.Action
	state  game.State
	score  float64
}

func NewAlphaBeta(evaluate game.Evaluate, opts ...Option) *AlphaBeta {
	if evaluate == nil {
		panic("Must specify an evaluation function")
	}
	o := newOptions(opts)
	if o.cache == nil {
		o.cache = NewTable()
	}
	return &AlphaBeta{
		evaluate: evaluate,
		cache:    o.cache,
		prune:    o.prune,
		budget:   o.budget,
		now:      o.now,
		metrics:  o.metrics,
	}
}

func (ab *AlphaBeta) Cache() Cache {
	return ab.cache
}

// ChooseAction returns the best action for player, or ErrNoLegalAction with a
// nil action when state has none.
func (ab *AlphaBeta) ChooseAction(ctx context.Context, state game.State, depth int, player game.Player) (game.Action, error) {
	d, _, err := ab.Search(ctx, state, depth, player)
	return d.Action, err
}

// Search scores every top-level candidate to depth plies and returns the best
// one. Once the budget expires between candidates it stops and returns the
// best candidate found so far.
func (ab *AlphaBeta) Search(ctx context.Context, state game.State, depth int, player game.Player) (Decision, metrics.SearchMetric, error) {
	if depth < 1 {
		depth = 1
	}
	ab.metrics.Start("alphabeta")
	if g, ok := ab.cache.(interface{ NextGeneration() }); ok {
		g.NextGeneration()
	}

	candidates, err := ab.expand(state, player, true)
	if err != nil {
		return Decision{}, ab.metrics.Complete(), err
	}
	if len(candidates) == 0 {
		return Decision{}, ab.metrics.Complete(), game.ErrNoLegalAction
	}

	budget := NewBudget(ctx, ab.budget, ab.now)
	alpha, beta := math.Inf(-1), math.Inf(1)
	var best game.Action
	bestValue := math.Inf(-1)
	for i, c := range candidates {
		value, err := ab.minimax(c.state, depth-1, alpha, beta, player)
		if err != nil {
			return Decision{}, ab.metrics.Complete(), fmt.Errorf("searching %v: %w", c.action, err)
		}
		if best == nil || value > bestValue {
			best, bestValue = c.action, value
		}
		if ab.prune && value > alpha {
			alpha = value
		}
		if i < len(candidates)-1 && budget.Expired() {
			ab.metrics.SetTimedOut()
			log.Debug().Int("searched", i+1).Int("candidates", len(candidates)).Msg("alpha-beta budget expired")
			break
		}
	}

	metric := ab.metrics.Complete()
	log.Debug().
		Str("action", best.String()).
		Float64("value", bestValue).
		Int("depth", depth).
		Int("cached", ab.cache.Len()).
		Msg("alpha-beta decision")
	return Decision{Action: best, Value: bestValue}, metric, nil
}

func (ab *AlphaBeta) minimax(state game.State, depth int, alpha, beta float64, player game.Player) (float64, error) {
	ab.metrics.AddNode()
	if !ab.prune {
		alpha, beta = math.Inf(-1), math.Inf(1)
	}
	alphaOrig, betaOrig := alpha, beta

	key := state.Key()
	if entry, ok := ab.cache.Get(key); ok && entry.Depth == depth && entry.Player == player {
		switch entry.Flag {
		case Exact:
			ab.metrics.AddCacheHit()
			return entry.Value, nil
		case LowerBound:
			alpha = math.Max(alpha, entry.Value)
		case UpperBound:
			beta = math.Min(beta, entry.Value)
		}
		if alpha >= beta {
			ab.metrics.AddCacheHit()
			return entry.Value, nil
		}
	}

	if depth <= 0 || state.IsTerminal() {
		return ab.leaf(key, state, depth, player)
	}

	maximizing := state.Player() == player
	children, err := ab.expand(state, player, maximizing)
	if err != nil {
		return 0, err
	}
	if len(children) == 0 {
		return ab.leaf(key, state, depth, player)
	}

	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	for _, c := range children {
		v, err := ab.minimax(c.state, depth-1, alpha, beta, player)
		if err != nil {
			return 0, err
		}
		if maximizing {
			value = math.Max(value, v)
			alpha = math.Max(alpha, value)
		} else {
			value = math.Min(value, v)
			beta = math.Min(beta, value)
		}
		if ab.prune && beta <= alpha {
			ab.metrics.AddCutoff()
			break
		}
	}

	flag := Exact
	if value <= alphaOrig {
		flag = UpperBound
	} else if value >= betaOrig {
		flag = LowerBound
	}
	ab.cache.Put(key, Entry{Value: value, Depth: depth, Player: player, Flag: flag})
	return value, nil
}

func (ab *AlphaBeta) leaf(key game.Key, state game.State, depth int, player game.Player) (float64, error) {
	value, err := ab.evaluate(state, player)
	if err != nil {
		return 0, err
	}
	ab.cache.Put(key, Entry{Value: value, Depth: depth, Player: player, Flag: Exact})
	return value, nil
}

// expand applies every legal action and orders the children by their one-ply
// evaluation, best first for the maximizing side and worst first otherwise.
// Equal scores keep legal-action order.
func (ab *AlphaBeta) expand(state game.State, player game.Player, descending bool) ([]candidate, error) {
	actions := state.LegalActions()
	children := make([]candidate, 0, len(actions))
	for _, action := range actions {
		next, err := state.Apply(action)
		if err != nil {
			return nil, err
		}
		score, err := ab.evaluate(next, player)
		if err != nil {
			return nil, err
		}
		children = append(children, candidate{action: action, state: next, score: score})
	}
	sort.SliceStable(children, func(i, j int) bool {
		if descending {
			return children[i].score > children[j].score
		}
		return children[i].score < children[j].score
	})
	return children, nil
}
