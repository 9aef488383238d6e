package hlpoker

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"boardbots/game"

	"golang.org/x/exp/rand"
)

type Round int

const (
	Preflop Round = iota
	Flop
	Turn
	River
	Showdown
)

func (r Round) String() string {
	switch r {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	}
	return fmt.Sprintf("round(%d)", int(r))
}

// BoardSize is the number of community cards visible in a round.
func (r Round) BoardSize() int {
	switch r {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	}
	return 5
}

type Action int

const (
	Fold Action = iota
	Call
	Raise
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Raise:
		return "raise"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

const Ante = 1
const SmallBet = 2 // preflop and flop
const BigBet = 4   // turn and river
const MaxRaises = 4

// State is a heads-up limit hold'em hand. The whole runout is dealt up front
// and revealed by round.
type State struct {
	hole     [2][2]Card
	board    [5]Card
	round    Round
	dealer   game.Player
	actor    game.Player
	bets     [2]int
	raises   int
	acted    int
	winner   game.Player
	finished bool
}

// NewState shuffles a deck with rng and deals a hand. The dealer acts first
// in every betting round.
func NewState(rng *rand.Rand, dealer game.Player) *State {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	s, err := Deal([2][2]Card{{deck[0], deck[1]}, {deck[2], deck[3]}}, [5]Card(deck[4:9]), dealer)
	if err != nil {
		panic(err)
	}
	return s
}

// Deal starts a hand with fixed cards. Cards must be valid and distinct.
func Deal(hole [2][2]Card, board [5]Card, dealer game.Player) (*State, error) {
	if dealer != 0 && dealer != 1 {
		return nil, fmt.Errorf("%w: dealer %d", game.ErrInvalidState, dealer)
	}
	seen := make(map[Card]bool, 9)
	for _, c := range append(append(hole[0][:], hole[1][:]...), board[:]...) {
		if !c.Valid() || seen[c] {
			return nil, fmt.Errorf("%w: bad or repeated card %v", game.ErrInvalidState, c)
		}
		seen[c] = true
	}
	return &State{
		hole:   hole,
		board:  board,
		dealer: dealer,
		actor:  dealer,
		bets:   [2]int{Ante, Ante},
		winner: game.NoPlayer,
	}, nil
}

func (s *State) Player() game.Player {
	return s.actor
}

func (s *State) Round() Round {
	return s.round
}

func (s *State) Hole(player game.Player) [2]Card {
	return s.hole[player]
}

// Board returns the community cards revealed so far.
func (s *State) Board() []Card {
	return append([]Card(nil), s.board[:s.round.BoardSize()]...)
}

func (s *State) Bets() [2]int {
	return s.bets
}

func (s *State) Pot() int {
	return s.bets[0] + s.bets[1]
}

func (s *State) Raises() int {
	return s.raises
}

func (s *State) LegalActions() []game.Action {
	if s.finished {
		return nil
	}
	if s.raises < MaxRaises {
		return []game.Action{Fold, Call, Raise}
	}
	return []game.Action{Fold, Call}
}

func (s *State) Validate(action game.Action) bool {
	a, ok := action.(Action)
	if !ok || s.finished {
		return false
	}
	switch a {
	case Fold, Call:
		return true
	case Raise:
		return s.raises < MaxRaises
	}
	return false
}

func (s *State) Apply(action game.Action) (game.State, error) {
	if !s.Validate(action) {
		return nil, game.InvalidAction(action)
	}
	next := *s
	actor, opponent := next.actor, 1-next.actor
	switch action.(Action) {
	case Fold:
		next.winner = opponent
		next.finished = true
		return &next, nil
	case Call:
		next.bets[actor] = next.bets[opponent]
	case Raise:
		next.bets[actor] = next.bets[opponent] + next.betSize()
		next.raises++
	}
	next.acted++

	if next.acted >= 2 && next.bets[0] == next.bets[1] {
		next.round++
		next.acted = 0
		next.raises = 0
		next.actor = next.dealer
		if next.round == Showdown {
			next.finished = true
			next.winner = next.showdown()
		}
		return &next, nil
	}
	next.actor = opponent
	return &next, nil
}

func (s *State) betSize() int {
	if s.round >= Turn {
		return BigBet
	}
	return SmallBet
}

func (s *State) showdown() game.Player {
	var scores [2]int16
	for p := range scores {
		score, err := Strength(s.seven(game.Player(p)))
		if err != nil {
			panic(err)
		}
		scores[p] = score
	}
	switch {
	case scores[0] > scores[1]:
		return 0
	case scores[1] > scores[0]:
		return 1
	}
	return game.NoPlayer
}

func (s *State) seven(player game.Player) [7]Card {
	return [7]Card{s.hole[player][0], s.hole[player][1], s.board[0], s.board[1], s.board[2], s.board[3], s.board[4]}
}

func (s *State) IsTerminal() bool {
	return s.finished
}

// Winner is NoPlayer while the hand runs and after a split pot.
func (s *State) Winner() game.Player {
	return s.winner
}

func (s *State) Clone() game.State {
	next := *s
	return &next
}

func (s *State) Key() game.Key {
	h := fnv.New64a()
	buf := make([]byte, 0, 32)
	for _, hole := range s.hole {
		for _, c := range hole {
			buf = append(buf, byte(c.Rank), byte(c.Suit))
		}
	}
	for _, c := range s.board[:s.round.BoardSize()] {
		buf = append(buf, byte(c.Rank), byte(c.Suit))
	}
	buf = append(buf, byte(s.round), byte(s.actor), byte(s.dealer), byte(s.raises), byte(s.acted))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.bets[0]))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(s.bets[1]))
	if s.finished {
		buf = append(buf, 1, byte(s.winner+1))
	}
	h.Write(buf)
	return game.Key(h.Sum64())
}

// Determinize returns a copy in which every card viewer cannot see, the
// opponent's hole cards and the unrevealed board, is redrawn from the unseen
// deck.
func (s *State) Determinize(viewer game.Player, rng *rand.Rand) *State {
	next := *s
	visible := s.round.BoardSize()
	known := make(map[Card]bool, 7)
	for _, c := range s.hole[viewer] {
		known[c] = true
	}
	for _, c := range s.board[:visible] {
		known[c] = true
	}
	unseen := make([]Card, 0, 52)
	for _, c := range NewDeck() {
		if !known[c] {
			unseen = append(unseen, c)
		}
	}
	rng.Shuffle(len(unseen), func(i, j int) { unseen[i], unseen[j] = unseen[j], unseen[i] })

	opponent := 1 - viewer
	next.hole[opponent] = [2]Card{unseen[0], unseen[1]}
	copy(next.board[visible:], unseen[2:])
	return &next
}

func (s *State) String() string {
	return fmt.Sprintf("%v board=%v bets=%v actor=%d", s.round, s.Board(), s.bets, s.actor)
}
