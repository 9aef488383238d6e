package minesweeper

import (
	"fmt"

	"boardbots/game"
)

const MinePenalty = -10
const OpenBonus = 5

// Heuristic scores revealing a cell by its edge-clipped 3x3 neighbourhood,
// the cell included: each visible mine costs 10 and each revealed cell with
// no adjacent mines earns 5.
func Heuristic(state game.State, action game.Action) (float64, error) {
	g, ok := state.(Grid)
	if !ok {
		return 0, fmt.Errorf("%w: %T has no grid", game.ErrInvalidState, state)
	}
	r, ok := action.(Reveal)
	if !ok {
		return 0, game.InvalidAction(action)
	}
	score := 0
	for row := max(0, r.Row-1); row <= min(g.Rows()-1, r.Row+1); row++ {
		for col := max(0, r.Col-1); col <= min(g.Cols()-1, r.Col+1); col++ {
			switch g.At(row, col) {
			case Mine:
				score += MinePenalty
			case 0:
				score += OpenBonus
			}
		}
	}
	return float64(score), nil
}

// Evaluate counts the cells no longer hidden and charges 10 for every
// revealed mine. A cleared board without mines scores its cell count.
func Evaluate(state game.State, _ game.Player) (float64, error) {
	g, ok := state.(Grid)
	if !ok {
		return 0, fmt.Errorf("%w: %T has no grid", game.ErrInvalidState, state)
	}
	score := 0
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.At(row, col)
			if cell != Hidden {
				score++
			}
			if cell == Mine {
				score += MinePenalty
			}
		}
	}
	return float64(score), nil
}
