package connect4

import (
	"testing"

	"boardbots/game"

	"github.com/stretchr/testify/require"
)

type notABoard struct{ game.State }

func TestEvaluate(t *testing.T) {
	t.Run("empty board scores zero", func(t *testing.T) {
		score, err := Evaluate(NewStandardState(), 0)
		require.NoError(t, err)
		require.Equal(t, 0.0, score)
	})

	t.Run("counts runs on rows, columns and diagonals", func(t *testing.T) {
		s := mustGrid(t, [][]Cell{
			{e, e, e, e},
			{e, e, e, e},
			{e, 0, e, e},
			{0, 0, 1, 1},
		}, 1)
		// Player 0: row pair, column pair, down-right... none, up-right pair
		// (3,0)-(2,1). Center column 2 holds no mark of 0.
		// Player 1: row pair.
		score, err := Evaluate(s, 0)
		require.NoError(t, err)
		require.Equal(t, float64(3*TwoWeight-TwoWeight), score)
	})

	t.Run("weights threes and fours", func(t *testing.T) {
		s := mustGrid(t, [][]Cell{
			{e, e, e, e, e},
			{0, 0, 0, 0, 1},
			{1, 1, 1, e, e},
		}, 1)
		score, err := Evaluate(s, 0)
		require.NoError(t, err)
		// 0: four on row 1, vertical and diagonal contacts with 1s break runs.
		// 1: three on row 2. Center column 2 holds 0 on row 1.
		require.Equal(t, float64(FourWeight-ThreeWeight+CenterWeight), score)
	})

	t.Run("is antisymmetric without center marks", func(t *testing.T) {
		s := play(t, NewStandardState(), 0, 1, 0, 1, 6)
		mine, err := Evaluate(s, 0)
		require.NoError(t, err)
		theirs, err := Evaluate(s, 1)
		require.NoError(t, err)
		require.Equal(t, mine, -theirs)
	})

	t.Run("is deterministic for a terminal state", func(t *testing.T) {
		s := play(t, NewStandardState(), 0, 0, 1, 1, 2, 2, 3)
		require.True(t, s.IsTerminal())
		first, err := Evaluate(s, 1)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			_, _ = Evaluate(s, 0)
			again, err := Evaluate(s, 1)
			require.NoError(t, err)
			require.Equal(t, first, again, "Repeated evaluation should not change")
		}
	})

	t.Run("rejects states without a grid", func(t *testing.T) {
		_, err := Evaluate(notABoard{}, 0)
		require.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("rejects unknown players", func(t *testing.T) {
		_, err := Evaluate(NewStandardState(), 2)
		require.ErrorIs(t, err, game.ErrInvalidState)
	})
}

func TestScoreDropPrefersCenterOnEmptyBoard(t *testing.T) {
	s := NewStandardState()
	scores := make([]float64, s.Cols())
	for _, a := range s.LegalActions() {
		v, err := ScoreDrop(s, a)
		require.NoError(t, err)
		scores[a.(Drop).Col] = v
	}
	for c, v := range scores {
		if c == 3 {
			continue
		}
		require.Greater(t, scores[3], v, "Center column should beat column %d", c)
	}
	require.Equal(t, float64(CenterWeight), scores[3])
}
