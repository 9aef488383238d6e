package minesweeper

import (
	"fmt"
	"hash/fnv"
	"strings"

	"boardbots/game"

	"golang.org/x/exp/rand"
)

// Cell is what the player sees: Hidden, Mine, or the number of adjacent mines
// of a revealed safe cell.
type Cell int8

const (
	Hidden Cell = -1
	Mine   Cell = -2
)

// Grid is the visible board.
type Grid interface {
	Rows() int
	Cols() int
	At(row, col int) Cell
}

type Reveal struct {
	Row, Col int
}

func (r Reveal) String() string {
	return fmt.Sprintf("reveal(%d,%d)", r.Row, r.Col)
}

// State is a single-player minesweeper board. The mine layout is shared
// between states and never modified.
type State struct {
	rows, cols int
	mines      []bool
	grid       []Cell
	safe       int
	revealed   int
	lost       bool
}

// NewState places mines uniformly at random with rng.
func NewState(rows, cols, mines int, rng *rand.Rand) (*State, error) {
	if rows <= 0 || cols <= 0 || mines < 0 || mines >= rows*cols {
		return nil, fmt.Errorf("%w: %dx%d board with %d mines", game.ErrInvalidState, rows, cols, mines)
	}
	layout := make([]bool, rows*cols)
	for _, i := range rng.Perm(rows * cols)[:mines] {
		layout[i] = true
	}
	return newState(rows, cols, layout), nil
}

// FromMines builds a fully hidden board over a fixed layout.
func FromMines(layout [][]bool) (*State, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: empty board", game.ErrInvalidState)
	}
	rows, cols := len(layout), len(layout[0])
	flat := make([]bool, 0, rows*cols)
	for r, row := range layout {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", game.ErrInvalidState, r, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return newState(rows, cols, flat), nil
}

func newState(rows, cols int, layout []bool) *State {
	s := &State{rows: rows, cols: cols, mines: layout, grid: make([]Cell, rows*cols)}
	for i := range s.grid {
		s.grid[i] = Hidden
		if !layout[i] {
			s.safe++
		}
	}
	return s
}

func (s *State) Rows() int { return s.rows }
func (s *State) Cols() int { return s.cols }

func (s *State) At(row, col int) Cell {
	return s.grid[row*s.cols+col]
}

func (s *State) Player() game.Player {
	return 0
}

func (s *State) LegalActions() []game.Action {
	if s.IsTerminal() {
		return nil
	}
	actions := make([]game.Action, 0, len(s.grid)-s.revealed)
	for i, c := range s.grid {
		if c == Hidden {
			actions = append(actions, Reveal{Row: i / s.cols, Col: i % s.cols})
		}
	}
	return actions
}

func (s *State) inBounds(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

func (s *State) Validate(action game.Action) bool {
	r, ok := action.(Reveal)
	return ok && !s.IsTerminal() && s.inBounds(r.Row, r.Col) && s.At(r.Row, r.Col) == Hidden
}

func (s *State) Apply(action game.Action) (game.State, error) {
	if !s.Validate(action) {
		return nil, game.InvalidAction(action)
	}
	r := action.(Reveal)
	next := s.clone()
	i := r.Row*s.cols + r.Col
	if s.mines[i] {
		next.grid[i] = Mine
		next.lost = true
		return next, nil
	}
	next.flood(r.Row, r.Col)
	return next, nil
}

// flood reveals a safe cell and, through cells without adjacent mines, every
// connected safe cell.
func (s *State) flood(row, col int) {
	stack := [][2]int{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i := p[0]*s.cols + p[1]
		if s.grid[i] != Hidden {
			continue
		}
		n := s.adjacentMines(p[0], p[1])
		s.grid[i] = Cell(n)
		s.revealed++
		if n > 0 {
			continue
		}
		s.neighbours(p[0], p[1], func(r, c int) {
			if s.grid[r*s.cols+c] == Hidden {
				stack = append(stack, [2]int{r, c})
			}
		})
	}
}

func (s *State) adjacentMines(row, col int) int {
	n := 0
	s.neighbours(row, col, func(r, c int) {
		if s.mines[r*s.cols+c] {
			n++
		}
	})
	return n
}

func (s *State) neighbours(row, col int, fn func(r, c int)) {
	for r := max(0, row-1); r <= min(s.rows-1, row+1); r++ {
		for c := max(0, col-1); c <= min(s.cols-1, col+1); c++ {
			if r != row || c != col {
				fn(r, c)
			}
		}
	}
}

func (s *State) IsTerminal() bool {
	return s.lost || s.revealed == s.safe
}

func (s *State) Lost() bool {
	return s.lost
}

// Winner is player 0 once every safe cell is revealed.
func (s *State) Winner() game.Player {
	if !s.lost && s.revealed == s.safe {
		return 0
	}
	return game.NoPlayer
}

func (s *State) clone() *State {
	next := *s
	next.grid = append([]Cell(nil), s.grid...)
	return &next
}

func (s *State) Clone() game.State {
	return s.clone()
}

func (s *State) Key() game.Key {
	h := fnv.New64a()
	buf := make([]byte, len(s.grid))
	for i, c := range s.grid {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return game.Key(h.Sum64())
}

func (s *State) String() string {
	var sb strings.Builder
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			switch cell := s.At(r, c); cell {
			case Hidden:
				sb.WriteByte('#')
			case Mine:
				sb.WriteByte('*')
			default:
				sb.WriteByte(byte('0' + cell))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
