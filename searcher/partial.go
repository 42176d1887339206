package searcher

import (
	"geister/experiments/metrics"
	"geister/game"
	"geister/meta"
	"geister/utils"
)

// Partial picks a move while the opponent's identities are unknown. strongRemaining is the
// number of opponent strong pieces still on the board.
type Partial interface {
	SearchPartial(b game.Board, strongRemaining int) (game.Move, int)
	LastMetric() metrics.SearchMetric
}

// PartialEngine searches a board whose opponent pieces all sit in the opponent weak mask.
// Every unknown piece may escape, and a capture is worth the expected weak share of a piece.
type PartialEngine struct {
	options []Option
	last    metrics.SearchMetric
}

func NewPartial(options ...Option) *PartialEngine {
	return &PartialEngine{options: append([]Option{WithDepth(meta.PARTIAL_DEPTH)}, options...)}
}

func (p *PartialEngine) SearchPartial(b game.Board, strongRemaining int) (game.Move, int) {
	e := NewEngine(p.options...)
	total := game.PopCount(b.Occupied(game.Opp))
	strong := utils.Min(utils.Max(strongRemaining, 0), total)
	e.evaluate = expectedEvaluation(e.weights, total, strong)
	e.judge = judgeUnknown
	mv, score := e.Search(b)
	p.last = e.LastMetric()
	return mv, score
}

func (p *PartialEngine) LastMetric() metrics.SearchMetric { return p.last }

func expectedEvaluation(w game.Weights, total, strong int) game.Evaluate {
	return func(b game.Board, side game.Side) int {
		pieces := b.Occupied(game.Opp)
		opp := -w.Dist * game.GoalDistance(game.Opp, pieces)
		if total > 0 {
			opp += w.Exist * game.PopCount(pieces) * (total - strong) / total
		}
		own := w.Score(b, game.Own)
		if side == game.Own {
			return own - opp
		}
		return opp - own
	}
}
