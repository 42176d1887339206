package searcher

import (
	"fmt"
	"geister/experiments/metrics"
	"geister/game"
	"geister/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// Engine runs a fixed-depth negamax search with alpha-beta pruning on fully known boards.
// An Engine is not safe for concurrent use; give each player its own.
type Engine struct {
	depth    int
	weights  game.Weights
	evaluate game.Evaluate
	judge    game.Judge
	metrics  metrics.Collector
	last     metrics.SearchMetric
}

func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth >= 0 {
			e.depth = depth
		}
	}
}

func WithWeights(weights game.Weights) Option {
	return func(e *Engine) {
		e.weights = weights
		e.evaluate = weights.Evaluate
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Engine) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

func WithJudge(judge game.Judge) Option {
	return func(e *Engine) {
		if judge != nil {
			e.judge = judge
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{ // Default values
		depth:    meta.SEARCH_DEPTH,
		weights:  game.DefaultWeights,
		evaluate: game.DefaultWeights.Evaluate,
		judge:    game.Board.Winner,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.weights.Bound() >= Inf/2 {
		panic(fmt.Sprintf("evaluation weights %+v can reach mate scores", e.weights))
	}
	return e
}

func (e *Engine) Depth() int { return e.depth }

// LastMetric returns the metrics of the most recent Search.
func (e *Engine) LastMetric() metrics.SearchMetric { return e.last }

// Search picks the own side's move on b and returns it with its score. A weak piece already
// standing on an exit is moved off at once with the maximum score, whatever the depth.
// b must leave the own side at least one legal move.
func (e *Engine) Search(b game.Board) (game.Move, int) {
	return e.SearchWith(b, e.judge)
}

// SearchWith is Search with judge deciding terminal positions for this call only.
func (e *Engine) SearchWith(b game.Board, judge game.Judge) (game.Move, int) {
	if judge == nil {
		judge = e.judge
	}
	if mv, ok := b.EscapeMove(game.Own); ok {
		e.last = metrics.SearchMetric{Depth: e.depth, Score: Inf}
		return mv, Inf
	}
	if len(b.LegalMoves(game.Own)) == 0 {
		panic("cannot search a board without legal moves")
	}

	e.metrics.Start(e.depth)
	s := search{
		depth:    e.depth,
		evaluate: e.evaluate,
		judge:    judge,
		metrics:  e.metrics,
		best:     game.NoMove,
	}
	score := s.negamax(b, 0, -Inf-1, Inf+1)
	e.last = e.metrics.Complete(score)

	log.Debug().
		Int("depth", e.depth).
		Int("score", score).
		Stringer("move", s.best).
		Int64("nodes", e.last.Nodes).
		Msg("search complete")
	return s.best, score
}

// search carries the state of one Search call.
type search struct {
	depth    int
	evaluate game.Evaluate
	judge    game.Judge
	metrics  metrics.Collector
	best     game.Move
}

// negamax scores b for the side to move at depth d, which alternates starting with the own side.
func (s *search) negamax(b game.Board, d int, alpha, beta int) int {
	s.metrics.AddNode()
	player := game.Side(d % 2)

	switch s.judge(b, player) {
	case game.SideToMoveWins:
		return Inf - d
	case game.OpponentWins:
		return -(Inf - d)
	}
	if d == s.depth {
		return s.evaluate(b, player)
	}

	for _, mv := range b.LegalMoves(player) {
		score := -s.negamax(b.Apply(mv), d+1, -beta, -alpha)
		if score > alpha {
			alpha = score
			if d == 0 {
				s.best = mv
			}
		}
		if alpha >= beta {
			s.metrics.AddCutoff()
			return beta
		}
	}
	return alpha
}
