package agent

import (
	"errors"
	"fmt"
	"geister/experiments/metrics"
	"geister/game"

	"golang.org/x/exp/rand"
)

var ErrNoMoves = errors.New("no legal moves")

type randomAgent struct {
	r *rand.Rand
}

// NewRandom returns an agent playing uniformly random legal moves, escaping whenever it can.
// Agents built with the same seed play the same moves on the same views.
func NewRandom(seed uint64) Agent {
	return &randomAgent{r: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(view game.Layout, _ int) (game.Move, metrics.MoveMetric, error) {
	b, err := game.FromLayout(view)
	if err != nil {
		return game.NoMove, metrics.MoveMetric{}, fmt.Errorf("failed to build board: %w", err)
	}
	if mv, ok := b.EscapeMove(game.Own); ok {
		return mv, metrics.MoveMetric{}, nil
	}
	moves := b.LegalMoves(game.Own)
	if len(moves) == 0 {
		return game.NoMove, metrics.MoveMetric{}, ErrNoMoves
	}
	return moves[a.r.Intn(len(moves))], metrics.MoveMetric{}, nil
}
