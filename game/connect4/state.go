package connect4

import (
	"fmt"

	"boardbots/game"
)

const (
	StandardRows = 6
	StandardCols = 7
	// WinLength is the number of aligned marks that wins the game.
	WinLength = 4
)

// Cell holds the mark of a player, or Empty.
type Cell int8

const Empty Cell = -1

// Board is the read-only grid capability the pattern heuristic needs.
// Row 0 is the top row.
type Board interface {
	Rows() int
	Cols() int
	At(row, col int) Cell
	Player() game.Player
}

// Drop places the acting player's mark in the lowest empty cell of Col.
type Drop struct {
	Col int
}

func (d Drop) String() string {
	return fmt.Sprintf("drop(%d)", d.Col)
}

// State is an immutable connect-four position.
type State struct {
	rows   int
	cols   int
	grid   []Cell
	toMove game.Player
	turns  int
	winner game.Player
	hash   uint64
}

// NewState returns an empty board with player 0 to move.
func NewState(rows, cols int) *State {
	grid := make([]Cell, rows*cols)
	for i := range grid {
		grid[i] = Empty
	}
	return &State{
		rows:   rows,
		cols:   cols,
		grid:   grid,
		toMove: 0,
		winner: game.NoPlayer,
	}
}

// NewStandardState returns an empty 6x7 board.
func NewStandardState() *State {
	return NewState(StandardRows, StandardCols)
}

// FromGrid builds a position from explicit rows (top row first). Cells hold
// -1 for empty or the player index.
func FromGrid(cells [][]Cell, toMove game.Player) (*State, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", game.ErrInvalidState)
	}
	if toMove != 0 && toMove != 1 {
		return nil, fmt.Errorf("%w: player %d cannot move", game.ErrInvalidState, toMove)
	}
	s := NewState(len(cells), len(cells[0]))
	s.toMove = toMove
	z := getZobrist(s.rows, s.cols)
	for r, row := range cells {
		if len(row) != s.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", game.ErrInvalidState, r, len(row), s.cols)
		}
		for c, cell := range row {
			if cell != Empty && cell != 0 && cell != 1 {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", game.ErrInvalidState, r, c, cell)
			}
			s.grid[r*s.cols+c] = cell
			if cell != Empty {
				s.turns++
				s.hash ^= z.mark(r, c, game.Player(cell))
			}
		}
	}
	for _, p := range []game.Player{0, 1} {
		if HasFour(s, p) {
			s.winner = p
		}
	}
	return s, nil
}

func (s *State) Rows() int { return s.rows }

func (s *State) Cols() int { return s.cols }

func (s *State) At(row, col int) Cell {
	return s.grid[row*s.cols+col]
}

func (s *State) Player() game.Player {
	return s.toMove
}

// Turns is the number of marks on the board.
func (s *State) Turns() int {
	return s.turns
}

func (s *State) LegalActions() []game.Action {
	if s.IsTerminal() {
		return nil
	}
	actions := make([]game.Action, 0, s.cols)
	for c := 0; c < s.cols; c++ {
		if s.At(0, c) == Empty {
			actions = append(actions, Drop{Col: c})
		}
	}
	return actions
}

func (s *State) Validate(action game.Action) bool {
	drop, ok := action.(Drop)
	if !ok || s.IsTerminal() {
		return false
	}
	return drop.Col >= 0 && drop.Col < s.cols && s.At(0, drop.Col) == Empty
}

func (s *State) Apply(action game.Action) (game.State, error) {
	if !s.Validate(action) {
		return nil, game.InvalidAction(action)
	}
	col := action.(Drop).Col
	next := s.copy()
	row := s.rows - 1
	for next.At(row, col) != Empty {
		row--
	}
	next.grid[row*s.cols+col] = Cell(s.toMove)
	next.hash ^= getZobrist(s.rows, s.cols).mark(row, col, s.toMove)
	next.turns++
	if HasFour(next, s.toMove) {
		next.winner = s.toMove
	}
	next.toMove = 1 - s.toMove
	return next, nil
}

func (s *State) IsTerminal() bool {
	return s.winner != game.NoPlayer || s.turns == s.rows*s.cols
}

func (s *State) Winner() game.Player {
	return s.winner
}

func (s *State) Clone() game.State {
	return s.copy()
}

// Key folds the player to move into the Zobrist hash of the marks.
func (s *State) Key() game.Key {
	return game.Key(s.hash ^ getZobrist(s.rows, s.cols).side(s.toMove))
}

func (s *State) String() string {
	out := make([]byte, 0, (s.cols+1)*s.rows)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			switch s.At(r, c) {
			case 0:
				out = append(out, 'X')
			case 1:
				out = append(out, 'O')
			default:
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

func (s *State) copy() *State {
	grid := make([]Cell, len(s.grid))
	copy(grid, s.grid)
	return &State{
		rows:   s.rows,
		cols:   s.cols,
		grid:   grid,
		toMove: s.toMove,
		turns:  s.turns,
		winner: s.winner,
		hash:   s.hash,
	}
}

// directions scanned for aligned marks: row, column, both diagonals.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// HasFour reports whether player holds WinLength consecutive cells in a row,
// column or either diagonal of b.
func HasFour(b Board, player game.Player) bool {
	target := Cell(player)
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if b.At(r, c) != target {
				continue
			}
			for _, d := range directions {
				n := 1
				for n < WinLength {
					rr, cc := r+d[0]*n, c+d[1]*n
					if rr < 0 || rr >= b.Rows() || cc < 0 || cc >= b.Cols() || b.At(rr, cc) != target {
						break
					}
					n++
				}
				if n == WinLength {
					return true
				}
			}
		}
	}
	return false
}
