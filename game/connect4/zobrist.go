package connect4

import (
	"sync"

	"boardbots/game"
)

type zobristTable struct {
	cols  int
	cells []uint64
	sides [2]uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[[2]int]*zobristTable
}

var zobristTables = &zobristStore{tables: make(map[[2]int]*zobristTable)}

// getZobrist returns the shared table for a board shape. Tables are seeded
// deterministically so keys are stable across runs.
func getZobrist(rows, cols int) *zobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	shape := [2]int{rows, cols}
	if table, ok := zobristTables.tables[shape]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(rows)<<32 ^ uint64(cols)}
	table := &zobristTable{cols: cols, cells: make([]uint64, rows*cols*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	table.sides[0] = rng.next()
	table.sides[1] = rng.next()
	zobristTables.tables[shape] = table
	return table
}

func (z *zobristTable) mark(row, col int, player game.Player) uint64 {
	return z.cells[(row*z.cols+col)*2+int(player)]
}

func (z *zobristTable) side(player game.Player) uint64 {
	return z.sides[player]
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
