package searcher

import (
	"math"

	"boardbots/game"
)

const noParent = -1

// node is one arena slot. Results are tallied from the perspective of the
// player who chose action, so a parent ranks its children by their win rate.
type node struct {
	parent   int
	action   game.Action
	state    game.State
	player   game.Player
	children []int
	untried  []game.Action
	visits   int
	results  [3]int // indexed by game.Outcome
}

func (n *node) winRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return float64(n.results[game.Win]) / float64(n.visits)
}

// tree is an arena of nodes addressed by index. The root is always index 0
// and nodes are never removed during a decision.
type tree struct {
	nodes []node
}

func newTree(state game.State) *tree {
	root := node{
		parent:  noParent,
		state:   state,
		player:  state.Player(),
		untried: state.LegalActions(),
	}
	return &tree{nodes: []node{root}}
}

func (t *tree) root() *node {
	return &t.nodes[0]
}

// expand pops the last untried action of parent and adds the resulting child.
func (t *tree) expand(parent int) (int, error) {
	p := &t.nodes[parent]
	last := len(p.untried) - 1
	action := p.untried[last]
	next, err := p.state.Apply(action)
	if err != nil {
		return noParent, err
	}
	p.untried = p.untried[:last]

	child := node{
		parent:  parent,
		action:  action,
		state:   next,
		player:  p.state.Player(),
		untried: next.LegalActions(),
	}
	t.nodes = append(t.nodes, child)
	index := len(t.nodes) - 1
	t.nodes[parent].children = append(t.nodes[parent].children, index)
	return index, nil
}

// backup walks from leaf to the root without recursion.
func (t *tree) backup(leaf int, outcome func(game.Player) game.Outcome) {
	for i := leaf; i != noParent; i = t.nodes[i].parent {
		n := &t.nodes[i]
		n.visits++
		n.results[outcome(n.player)]++
	}
}

// pickChild returns the child of parent with the highest UCB1 score. Ties go
// to the child expanded first.
func (t *tree) pickChild(parent int, c float64) int {
	p := &t.nodes[parent]
	if len(p.children) == 0 {
		panic("node has no children")
	}
	for _, i := range p.children {
		if t.nodes[i].visits == 0 {
			return i
		}
	}

	policy := newUCT(c, p.visits)
	best := -1
	bestScore := math.Inf(-1)
	for _, i := range p.children {
		child := &t.nodes[i]
		score := policy.evaluate(float64(child.results[game.Win]), child.visits)
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// bestChild returns the visited child of parent with the strictly highest win
// rate, first expanded on ties, or noParent if no child was visited.
func (t *tree) bestChild(parent int) int {
	best := noParent
	bestRate := 0.0
	for _, i := range t.nodes[parent].children {
		child := &t.nodes[i]
		if child.visits == 0 {
			continue
		}
		if rate := child.winRate(); best == noParent || rate > bestRate {
			best, bestRate = i, rate
		}
	}
	return best
}

// policy is the share of root visits each expanded action received.
func (t *tree) policy() map[game.Action]float64 {
	root := t.root()
	policy := make(map[game.Action]float64, len(root.children))
	if root.visits == 0 {
		return policy
	}
	for _, i := range root.children {
		child := &t.nodes[i]
		policy[child.action] = float64(child.visits) / float64(root.visits)
	}
	return policy
}
