package searcher

import (
	"hash/fnv"
	"strconv"
	"time"

	"boardbots/game"
)

type mockAction int

func (a mockAction) String() string {
	return strconv.Itoa(int(a))
}

// mockState is a uniform two-player tree of fixed height. Players alternate
// and terminal positions are won by player 0 when value is positive.
type mockState struct {
	path   []int
	branch int
	height int
	value  func(path []int) float64
}

func newMockState(branch, height int, value func(path []int) float64) *mockState {
	return &mockState{branch: branch, height: height, value: value}
}

func (s *mockState) Player() game.Player {
	return game.Player(len(s.path) % 2)
}

func (s *mockState) LegalActions() []game.Action {
	if s.IsTerminal() {
		return nil
	}
	actions := make([]game.Action, s.branch)
	for i := range actions {
		actions[i] = mockAction(i)
	}
	return actions
}

func (s *mockState) Validate(action game.Action) bool {
	a, ok := action.(mockAction)
	return ok && !s.IsTerminal() && int(a) >= 0 && int(a) < s.branch
}

func (s *mockState) Apply(action game.Action) (game.State, error) {
	if !s.Validate(action) {
		return nil, game.InvalidAction(action)
	}
	next := s.Clone().(*mockState)
	next.path = append(next.path, int(action.(mockAction)))
	return next, nil
}

func (s *mockState) IsTerminal() bool {
	return len(s.path) >= s.height
}

func (s *mockState) Winner() game.Player {
	if !s.IsTerminal() {
		return game.NoPlayer
	}
	switch v := s.value(s.path); {
	case v > 0:
		return 0
	case v < 0:
		return 1
	}
	return game.NoPlayer
}

func (s *mockState) Clone() game.State {
	path := make([]int, len(s.path), len(s.path)+1)
	copy(path, s.path)
	return &mockState{path: path, branch: s.branch, height: s.height, value: s.value}
}

func (s *mockState) Key() game.Key {
	h := fnv.New64a()
	for _, step := range s.path {
		h.Write([]byte{byte(step), '/'})
	}
	return game.Key(h.Sum64())
}

// hashValue scores a path pseudo-randomly in [-50, 50].
func hashValue(seed uint64) func(path []int) float64 {
	return func(path []int) float64 {
		h := fnv.New64a()
		h.Write([]byte(strconv.FormatUint(seed, 10)))
		for _, step := range path {
			h.Write([]byte{byte(step), '/'})
		}
		return float64(h.Sum64()%101) - 50
	}
}

// mockEvaluate scores any mock state with its value function from player's view.
func mockEvaluate(state game.State, player game.Player) (float64, error) {
	s, ok := state.(*mockState)
	if !ok {
		return 0, game.ErrInvalidState
	}
	v := s.value(s.path)
	if player == 1 {
		return -v, nil
	}
	return v, nil
}

// minimax is an unpruned reference search without memoization.
func minimax(state game.State, depth int, player game.Player, evaluate game.Evaluate) float64 {
	if depth == 0 || state.IsTerminal() {
		v, _ := evaluate(state, player)
		return v
	}
	maximizing := state.Player() == player
	best := 0.0
	for i, action := range state.LegalActions() {
		next, _ := state.Apply(action)
		v := minimax(next, depth-1, player, evaluate)
		if i == 0 || (maximizing && v > best) || (!maximizing && v < best) {
			best = v
		}
	}
	return best
}

type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}
