package hlpoker

import (
	"testing"

	"boardbots/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func deal(t *testing.T, p0, p1, board string, dealer game.Player) *State {
	t.Helper()
	b := cards(t, board)
	require.Len(t, b, 5)
	s, err := Deal([2][2]Card{hole(t, p0), hole(t, p1)}, [5]Card(b), dealer)
	require.NoError(t, err)
	return s
}

func act(t *testing.T, s game.State, actions ...Action) game.State {
	t.Helper()
	for _, a := range actions {
		next, err := s.Apply(a)
		require.NoError(t, err, "%v should be legal in %v", a, s)
		s = next
	}
	return s
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("Th")
	require.NoError(t, err)
	require.Equal(t, Card{Rank: 10, Suit: Hearts}, c)
	require.Equal(t, "Th", c.String())

	c, err = ParseCard("as")
	require.NoError(t, err)
	require.Equal(t, Card{Rank: Ace, Suit: Spades}, c)

	_, err = ParseCard("1x")
	require.Error(t, err)
	require.Len(t, NewDeck(), 52)
}

func TestBetting(t *testing.T) {
	t.Run("checks through to showdown", func(t *testing.T) {
		s := deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 0)
		require.Equal(t, Preflop, s.Round())
		require.Empty(t, s.Board())

		var next game.State = s
		for round := Preflop; round < Showdown; round++ {
			require.Equal(t, round, next.(*State).Round())
			require.Len(t, next.(*State).Board(), round.BoardSize())
			next = act(t, next, Call, Call)
		}
		require.True(t, next.IsTerminal())
		require.Equal(t, game.Player(0), next.Winner(), "Pocket aces should win")
		require.Equal(t, 2*Ante, next.(*State).Pot())
	})

	t.Run("raise and call closes the round", func(t *testing.T) {
		s := act(t, deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 1), Raise)
		require.Equal(t, game.Player(0), s.Player())
		require.Equal(t, [2]int{Ante, Ante + SmallBet}, s.(*State).Bets())

		s = act(t, s, Call)
		require.Equal(t, Flop, s.(*State).Round())
		require.Equal(t, game.Player(1), s.Player(), "Dealer opens every round")
	})

	t.Run("turn bets are doubled", func(t *testing.T) {
		s := act(t, deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 0), Call, Call, Call, Call, Raise)
		require.Equal(t, Turn, s.(*State).Round())
		require.Equal(t, [2]int{Ante + BigBet, Ante}, s.(*State).Bets())
	})

	t.Run("fold ends the hand", func(t *testing.T) {
		s := act(t, deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 0), Raise, Fold)
		require.True(t, s.IsTerminal())
		require.Equal(t, game.Player(0), s.Winner())
		require.Empty(t, s.LegalActions())
		_, err := s.Apply(Call)
		require.ErrorIs(t, err, game.ErrInvalidAction)
	})

	t.Run("raises are capped per round", func(t *testing.T) {
		s := act(t, deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 0), Raise, Raise, Raise, Raise)
		require.False(t, s.Validate(Raise))
		require.NotContains(t, s.LegalActions(), game.Action(Raise))
		_, err := s.Apply(Raise)
		require.ErrorIs(t, err, game.ErrInvalidAction)

		s = act(t, s, Call)
		require.Equal(t, Flop, s.(*State).Round())
		require.True(t, s.Validate(Raise), "Cap resets on a new round")
	})

	t.Run("identical hands split", func(t *testing.T) {
		s := act(t, deal(t, "2c 3d", "2h 3s", "Ah Kh Qh Jh Th", 0), Call, Call, Call, Call, Call, Call, Call, Call)
		require.True(t, s.IsTerminal())
		require.Equal(t, game.NoPlayer, s.Winner())
	})

	t.Run("apply does not mutate", func(t *testing.T) {
		s := deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 0)
		_ = act(t, s, Raise, Call)
		require.Equal(t, Preflop, s.Round())
		require.Equal(t, [2]int{Ante, Ante}, s.Bets())
	})
}

func TestDealRejectsBadCards(t *testing.T) {
	_, err := Deal([2][2]Card{hole(t, "Ah Ad"), hole(t, "Ah 7d")}, [5]Card(cards(t, "Ks 9h 4c 3d Jc")), 0)
	require.ErrorIs(t, err, game.ErrInvalidState)

	_, err = Deal([2][2]Card{hole(t, "Ah Ad"), hole(t, "2c 7d")}, [5]Card(cards(t, "Ks 9h 4c 3d Jc")), 3)
	require.ErrorIs(t, err, game.ErrInvalidState)
}

func TestKey(t *testing.T) {
	a := deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 0)
	b := deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 2d Jc", 0)
	require.Equal(t, a.Key(), b.Key(), "Unrevealed board cards do not matter")

	require.NotEqual(t, a.Key(), act(t, a, Call).Key())
	require.NotEqual(t, act(t, a, Raise, Call).Key(), act(t, a, Call, Call).Key())
}

func TestDeterminize(t *testing.T) {
	s := act(t, deal(t, "Ah Ad", "2c 7d", "Ks 9h 4c 3d Jc", 0), Call, Call).(*State)
	d := s.Determinize(0, rand.New(rand.NewSource(1)))

	require.Equal(t, s.Hole(0), d.Hole(0), "Viewer keeps their cards")
	require.Equal(t, s.Board(), d.Board(), "Revealed board is kept")
	require.Equal(t, s.Bets(), d.Bets())
	require.Equal(t, s.Player(), d.Player())

	require.True(t, distinct(d), "Determinized deal should not repeat cards")
}

func distinct(s *State) bool {
	seen := map[Card]bool{}
	for _, c := range append(append(s.hole[0][:], s.hole[1][:]...), s.board[:]...) {
		if !c.Valid() || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

func TestNewStateDealsDistinctCards(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 20 {
		s := NewState(rng, 1)
		require.Equal(t, game.Player(1), s.Player())
		require.True(t, distinct(s))
	}
}

func TestDescribe(t *testing.T) {
	desc, err := Describe(cards(t, "Th Jh Qh Kh Ah 2c 3d"))
	require.NoError(t, err)
	require.NotEmpty(t, desc)

	strength, err := Strength([7]Card(cards(t, "Th Jh Qh Kh Ah 2c 3d")))
	require.NoError(t, err)
	weaker, err := Strength([7]Card(cards(t, "Th Jh Qh Kh 9h 2c 3d")))
	require.NoError(t, err)
	require.Greater(t, strength, weaker)
}
