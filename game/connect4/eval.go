package connect4

import (
	"fmt"

	"boardbots/game"
)

// Pattern weights for runs of a player's marks.
const (
	TwoWeight    = 5
	ThreeWeight  = 10
	FourWeight   = 100
	CenterWeight = 3
)

// Evaluate scores runs of 2, 3 and 4+ marks on every row, column and
// diagonal for player minus the same for the opponent, plus a bonus for
// each row where player holds the center column.
func Evaluate(s game.State, player game.Player) (float64, error) {
	b, ok := s.(Board)
	if !ok {
		return 0, fmt.Errorf("%w: %T has no connect-four grid", game.ErrInvalidState, s)
	}
	if player != 0 && player != 1 {
		return 0, fmt.Errorf("%w: player %d has no marks", game.ErrInvalidState, player)
	}
	opponent := 1 - player

	score := 0
	forEachLine(b, func(line []Cell) {
		score += linePatternScore(line, Cell(player))
		score -= linePatternScore(line, Cell(opponent))
	})

	center := b.Cols() / 2
	for r := 0; r < b.Rows(); r++ {
		if b.At(r, center) == Cell(player) {
			score += CenterWeight
		}
	}
	return float64(score), nil
}

// ScoreDrop is the one-ply lookahead used for move ordering: the pattern
// score of the position after the acting player drops in the column.
func ScoreDrop(s game.State, action game.Action) (float64, error) {
	next, err := s.Apply(action)
	if err != nil {
		return 0, err
	}
	return Evaluate(next, s.Player())
}

func linePatternScore(line []Cell, target Cell) int {
	score := 0
	run := 0
	flush := func() {
		switch {
		case run >= 4:
			score += FourWeight
		case run == 3:
			score += ThreeWeight
		case run == 2:
			score += TwoWeight
		}
		run = 0
	}
	for _, cell := range line {
		if cell == target {
			run++
			continue
		}
		flush()
	}
	flush()
	return score
}

// forEachLine visits every row, column and diagonal of b that is at least
// two cells long.
func forEachLine(b Board, visit func(line []Cell)) {
	rows, cols := b.Rows(), b.Cols()
	line := make([]Cell, 0, max(rows, cols))

	for r := 0; r < rows; r++ {
		line = line[:0]
		for c := 0; c < cols; c++ {
			line = append(line, b.At(r, c))
		}
		visit(line)
	}
	for c := 0; c < cols; c++ {
		line = line[:0]
		for r := 0; r < rows; r++ {
			line = append(line, b.At(r, c))
		}
		visit(line)
	}
	// Down-right diagonals start on the top row or the left column,
	// up-right diagonals on the bottom row or the left column.
	for start := -(rows - 1); start < cols; start++ {
		line = line[:0]
		for r := 0; r < rows; r++ {
			c := start + r
			if c >= 0 && c < cols {
				line = append(line, b.At(r, c))
			}
		}
		if len(line) >= 2 {
			visit(line)
		}
		line = line[:0]
		for r := rows - 1; r >= 0; r-- {
			c := start + (rows - 1 - r)
			if c >= 0 && c < cols {
				line = append(line, b.At(r, c))
			}
		}
		if len(line) >= 2 {
			visit(line)
		}
	}
}
