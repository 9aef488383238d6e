package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes one decision made by a searcher.
type SearchMetric struct {
	Algorithm       string
	Duration        time.Duration
	Episodes        int
	FullPlayouts    int
	AbortedPlayouts int
	Nodes           int
	CacheHits       int
	Cutoffs         int
	TimedOut        bool
}

type MoveMetric struct {
	Step   int
	Player int
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // -1 for a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(algorithm string)
	AddEpisode()
	AddFullPlayout()
	AddAbortedPlayout()
	AddNode()
	AddCacheHit()
	AddCutoff()
	SetTimedOut()
	Complete() SearchMetric
}

type collector struct {
	algorithm       string
	startTime       time.Time
	episodes        atomic.Int32
	fullPlayouts    atomic.Int32
	abortedPlayouts atomic.Int32
	nodes           atomic.Int64
	cacheHits       atomic.Int64
	cutoffs         atomic.Int64
	timedOut        atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new decision.
func (m *collector) Start(algorithm string) {
	m.algorithm = algorithm
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.abortedPlayouts.Store(0)
	m.nodes.Store(0)
	m.cacheHits.Store(0)
	m.cutoffs.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddAbortedPlayout() {
	m.abortedPlayouts.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:       m.algorithm,
		Duration:        time.Since(m.startTime),
		Episodes:        int(m.episodes.Load()),
		FullPlayouts:    int(m.fullPlayouts.Load()),
		AbortedPlayouts: int(m.abortedPlayouts.Load()),
		Nodes:           int(m.nodes.Load()),
		CacheHits:       int(m.cacheHits.Load()),
		Cutoffs:         int(m.cutoffs.Load()),
		TimedOut:        m.timedOut.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string) {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) AddAbortedPlayout()     {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddCacheHit()           {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) SetTimedOut()           {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
