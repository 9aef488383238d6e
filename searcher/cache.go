package searcher

import "boardbots/game"

type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "unknown"
}

// Entry is a resolved minimax value. Depth is the remaining depth it was
// searched to and Player the perspective it was scored for.
type Entry struct {
	Value  float64
	Depth  int
	Player game.Player
	Flag   Bound
}

// Cache is a transposition cache keyed by canonical state fingerprints. It is
// owned by a single searcher and is not safe for concurrent use.
type Cache interface {
	Get(key game.Key) (Entry, bool)
	Put(key game.Key, entry Entry)
	Len() int
	Clear()
}

type table struct {
	entries map[game.Key]Entry
}

// NewTable returns an unbounded cache. It lives as long as its owner and
// never evicts.
func NewTable() Cache {
	return &table{entries: make(map[game.Key]Entry)}
}

func (t *table) Get(key game.Key) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

func (t *table) Put(key game.Key, entry Entry) {
	t.entries[key] = entry
}

func (t *table) Len() int {
	return len(t.entries)
}

func (t *table) Clear() {
	clear(t.entries)
}

type slot struct {
	key   game.Key
	entry Entry
	gen   uint32
	valid bool
}

// BoundedTable holds at most size*buckets entries. Each key maps to one bucket
// of slots; a full bucket evicts its shallowest entry, oldest first.
type BoundedTable struct {
	mask    uint64
	buckets int
	slots   []slot
	gen     uint32
	count   int
}

func NewBoundedTable(size uint64, buckets int) *BoundedTable {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if size&(size-1) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &BoundedTable{
		mask:    size - 1,
		buckets: buckets,
		slots:   make([]slot, int(size)*buckets),
		gen:     1,
	}
}

// NextGeneration ages every stored entry by one decision.
func (t *BoundedTable) NextGeneration() {
	t.gen++
	if t.gen == 0 {
		t.gen = 1
	}
}

func (t *BoundedTable) Capacity() int {
	return len(t.slots)
}

func (t *BoundedTable) bucket(key game.Key) []slot {
	start := int(uint64(key)&t.mask) * t.buckets
	return t.slots[start : start+t.buckets]
}

func (t *BoundedTable) Get(key game.Key) (Entry, bool) {
	b := t.bucket(key)
	for i := range b {
		if b[i].valid && b[i].key == key {
			b[i].gen = t.gen
			return b[i].entry, true
		}
	}
	return Entry{}, false
}

func (t *BoundedTable) Put(key game.Key, entry Entry) {
	b := t.bucket(key)
	for i := range b {
		if b[i].valid && b[i].key == key {
			b[i] = slot{key: key, entry: entry, gen: t.gen, valid: true}
			return
		}
	}
	for i := range b {
		if !b[i].valid {
			b[i] = slot{key: key, entry: entry, gen: t.gen, valid: true}
			t.count++
			return
		}
	}

	victim := 0
	for i := 1; i < len(b); i++ {
		if b[i].entry.Depth < b[victim].entry.Depth ||
			(b[i].entry.Depth == b[victim].entry.Depth && t.age(b[i]) > t.age(b[victim])) {
			victim = i
		}
	}
	b[victim] = slot{key: key, entry: entry, gen: t.gen, valid: true}
}

func (t *BoundedTable) age(s slot) uint32 {
	return t.gen - s.gen
}

func (t *BoundedTable) Len() int {
	return t.count
}

func (t *BoundedTable) Clear() {
	clear(t.slots)
	t.count = 0
	t.gen = 1
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}
