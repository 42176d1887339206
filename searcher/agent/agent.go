package agent

import (
	"geister/experiments/metrics"
	"geister/game"
)

type Agent interface {
	// FindMove returns the move for the seat's turn and the metrics collected while choosing it.
	// view is the board from the agent's side with every opponent piece unlabelled, and
	// strongRemaining counts the opponent strong pieces still on it.
	FindMove(view game.Layout, strongRemaining int) (game.Move, metrics.MoveMetric, error)
}
