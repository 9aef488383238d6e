package connect4

import (
	"testing"

	"boardbots/game"

	"github.com/stretchr/testify/require"
)

const e = Empty

func mustGrid(t *testing.T, cells [][]Cell, toMove game.Player) *State {
	t.Helper()
	s, err := FromGrid(cells, toMove)
	require.NoError(t, err)
	return s
}

func play(t *testing.T, s game.State, cols ...int) game.State {
	t.Helper()
	for _, c := range cols {
		next, err := s.Apply(Drop{Col: c})
		require.NoError(t, err, "drop in column %d should be legal", c)
		s = next
	}
	return s
}

func TestWinDetection(t *testing.T) {
	t.Run("row", func(t *testing.T) {
		s := play(t, NewStandardState(), 0, 0, 1, 1, 2, 2, 3)
		require.True(t, s.IsTerminal(), "Four in the bottom row should end the game")
		require.Equal(t, game.Player(0), s.Winner())
	})

	t.Run("column", func(t *testing.T) {
		s := play(t, NewStandardState(), 0, 1, 0, 1, 0, 1, 0)
		require.True(t, s.IsTerminal())
		require.Equal(t, game.Player(0), s.Winner())
	})

	t.Run("down-right diagonal", func(t *testing.T) {
		s := mustGrid(t, [][]Cell{
			{e, e, e, e, e, e, e},
			{e, e, e, e, e, e, e},
			{1, e, e, e, e, e, e},
			{0, 1, e, e, e, e, e},
			{0, 0, 1, e, e, e, e},
			{0, 0, 0, 1, e, e, e},
		}, 0)
		require.True(t, s.IsTerminal())
		require.Equal(t, game.Player(1), s.Winner())
	})

	t.Run("up-right diagonal", func(t *testing.T) {
		s := mustGrid(t, [][]Cell{
			{e, e, e, e, e, e, e},
			{e, e, e, e, e, e, e},
			{e, e, e, e, e, e, 0},
			{e, e, e, e, e, 0, 1},
			{e, e, e, e, 0, 1, 1},
			{e, e, e, 0, 1, 1, 0},
		}, 1)
		require.True(t, s.IsTerminal())
		require.Equal(t, game.Player(0), s.Winner())
	})

	t.Run("full board without four is a draw", func(t *testing.T) {
		a := []Cell{0, 0, 1, 1, 0, 0, 1}
		b := []Cell{1, 1, 0, 0, 1, 1, 0}
		s := mustGrid(t, [][]Cell{a, b, a, b, a, b}, 0)
		require.True(t, s.IsTerminal(), "Full board should be terminal")
		require.Equal(t, game.NoPlayer, s.Winner(), "Full board without a run should have no winner")
		require.Empty(t, s.LegalActions())
	})

	t.Run("three in a row is not terminal", func(t *testing.T) {
		s := play(t, NewStandardState(), 0, 0, 1, 1, 2)
		require.False(t, s.IsTerminal())
		require.Equal(t, game.NoPlayer, s.Winner())
	})
}

func TestApply(t *testing.T) {
	t.Run("does not mutate the receiver", func(t *testing.T) {
		s := NewStandardState()
		next, err := s.Apply(Drop{Col: 3})
		require.NoError(t, err)
		require.Equal(t, Empty, s.At(5, 3), "Original state should be unchanged")
		require.Equal(t, Cell(0), next.(*State).At(5, 3), "Mark should land on the bottom row")
		require.Equal(t, game.Player(1), next.Player(), "Turn should pass to the opponent")
	})

	t.Run("rejects a full column", func(t *testing.T) {
		s := play(t, NewStandardState(), 2, 2, 2, 2, 2, 2)
		require.False(t, s.Validate(Drop{Col: 2}))
		_, err := s.Apply(Drop{Col: 2})
		require.ErrorIs(t, err, game.ErrInvalidAction)
		require.NotContains(t, s.LegalActions(), game.Action(Drop{Col: 2}))
	})

	t.Run("rejects out of range columns", func(t *testing.T) {
		_, err := NewStandardState().Apply(Drop{Col: 7})
		require.ErrorIs(t, err, game.ErrInvalidAction)
	})
}

func TestKey(t *testing.T) {
	t.Run("transpositions share a key", func(t *testing.T) {
		a := play(t, NewStandardState(), 0, 1, 2, 3)
		b := play(t, NewStandardState(), 2, 3, 0, 1)
		require.Equal(t, a.Key(), b.Key(), "Same marks and player to move should give the same key")
	})

	t.Run("player to move is part of the key", func(t *testing.T) {
		cells := [][]Cell{
			{e, e, e},
			{e, e, e},
			{0, 1, e},
		}
		a := mustGrid(t, cells, 0)
		b := mustGrid(t, cells, 1)
		require.NotEqual(t, a.Key(), b.Key())
	})

	t.Run("incremental and rebuilt keys agree", func(t *testing.T) {
		s := play(t, NewStandardState(), 3, 3, 4, 2).(*State)
		rebuilt := make([][]Cell, s.Rows())
		for r := range rebuilt {
			rebuilt[r] = make([]Cell, s.Cols())
			for c := range rebuilt[r] {
				rebuilt[r][c] = s.At(r, c)
			}
		}
		require.Equal(t, s.Key(), mustGrid(t, rebuilt, s.Player()).Key())
	})

	t.Run("different boards differ", func(t *testing.T) {
		a := play(t, NewStandardState(), 0)
		b := play(t, NewStandardState(), 1)
		require.NotEqual(t, a.Key(), b.Key())
	})
}

func TestFromGridRejectsBadInput(t *testing.T) {
	_, err := FromGrid([][]Cell{{e, e}, {e}}, 0)
	require.ErrorIs(t, err, game.ErrInvalidState)

	_, err = FromGrid([][]Cell{{e, 3}}, 0)
	require.ErrorIs(t, err, game.ErrInvalidState)

	_, err = FromGrid(nil, 0)
	require.ErrorIs(t, err, game.ErrInvalidState)
}
