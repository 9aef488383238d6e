package minesweeper

import (
	"testing"

	"boardbots/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const (
	o = false
	x = true
)

func mustMines(t *testing.T, layout [][]bool) *State {
	t.Helper()
	s, err := FromMines(layout)
	require.NoError(t, err)
	return s
}

func reveal(t *testing.T, s game.State, cells ...Reveal) *State {
	t.Helper()
	for _, c := range cells {
		next, err := s.Apply(c)
		require.NoError(t, err)
		s = next
	}
	return s.(*State)
}

func TestReveal(t *testing.T) {
	t.Run("numbers count adjacent mines", func(t *testing.T) {
		s := reveal(t, mustMines(t, [][]bool{
			{x, o, o},
			{o, o, o},
			{o, o, x},
		}), Reveal{1, 1}, Reveal{0, 1})
		require.Equal(t, Cell(2), s.At(1, 1))
		require.Equal(t, Cell(1), s.At(0, 1))
		require.Equal(t, Hidden, s.At(0, 2))
		require.False(t, s.IsTerminal())
	})

	t.Run("zero cells flood fill", func(t *testing.T) {
		s := reveal(t, mustMines(t, [][]bool{
			{o, o, o, o},
			{o, o, o, o},
			{o, o, o, x},
		}), Reveal{0, 0})
		require.Equal(t, Cell(0), s.At(0, 0))
		require.Equal(t, Cell(1), s.At(1, 3))
		require.Equal(t, Cell(1), s.At(2, 2))
		require.Equal(t, Hidden, s.At(2, 3), "Mines stay hidden")
		require.True(t, s.IsTerminal(), "Every safe cell is revealed")
		require.Equal(t, game.Player(0), s.Winner())
	})

	t.Run("revealing a mine loses", func(t *testing.T) {
		s := reveal(t, mustMines(t, [][]bool{{x, o}, {o, o}}), Reveal{0, 0})
		require.Equal(t, Mine, s.At(0, 0))
		require.True(t, s.Lost())
		require.True(t, s.IsTerminal())
		require.Equal(t, game.NoPlayer, s.Winner())
		require.Empty(t, s.LegalActions())
	})

	t.Run("rejects revealed and out of range cells", func(t *testing.T) {
		s := reveal(t, mustMines(t, [][]bool{{x, o, o}, {o, o, o}}), Reveal{0, 1})
		require.False(t, s.Validate(Reveal{0, 1}))
		_, err := s.Apply(Reveal{0, 1})
		require.ErrorIs(t, err, game.ErrInvalidAction)
		_, err = s.Apply(Reveal{5, 0})
		require.ErrorIs(t, err, game.ErrInvalidAction)
	})

	t.Run("apply does not mutate", func(t *testing.T) {
		s := mustMines(t, [][]bool{{x, o}, {o, o}})
		_ = reveal(t, s, Reveal{1, 1})
		require.Equal(t, Hidden, s.At(1, 1))
		require.Len(t, s.LegalActions(), 4)
	})
}

func TestNewState(t *testing.T) {
	s, err := NewState(5, 6, 7, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	mines := 0
	for _, m := range s.mines {
		if m {
			mines++
		}
	}
	require.Equal(t, 7, mines)
	require.Len(t, s.LegalActions(), 30)

	_, err = NewState(2, 2, 4, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, game.ErrInvalidState)

	_, err = FromMines([][]bool{{o, o}, {o}})
	require.ErrorIs(t, err, game.ErrInvalidState)
}

func TestKey(t *testing.T) {
	s := mustMines(t, [][]bool{{x, o, o}, {o, o, o}})
	a := reveal(t, s, Reveal{0, 1}, Reveal{1, 0})
	b := reveal(t, s, Reveal{1, 0}, Reveal{0, 1})
	require.Equal(t, a.Key(), b.Key(), "Reveal order does not matter")
	require.NotEqual(t, s.Key(), a.Key())
}
