package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth    int
	Duration time.Duration
	Nodes    int64
	Cutoffs  int64
	Score    int
}

type MoveMetric struct {
	Step     int
	Seat     int  // 0 for the first seat, 1 for the second
	Resolved bool // whether an opponent identity was resolved when the move was chosen
	SearchMetric
}

type GameMetric struct {
	StartingSeat int
	Winner       int    // seat index, -1 for a draw
	Reason       string // how the game ended, e.g. "escape" or "turns"
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddCutoff()
	Complete(score int) SearchMetric
}

type collector struct {
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.depth = depth
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete(score int) SearchMetric {
	return SearchMetric{
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes.Load(),
		Cutoffs:  m.cutoffs.Load(),
		Score:    score,
	}
}

// dummyCollector only remembers the depth and score of a search.
type dummyCollector struct {
	depth int
}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int) { m.depth = depth }
func (m *dummyCollector) AddNode()        {}
func (m *dummyCollector) AddCutoff()      {}
func (m *dummyCollector) Complete(score int) SearchMetric {
	return SearchMetric{Depth: m.depth, Score: score}
}
