package engine

import "geister/experiments/metrics"

// Draw is the winner reported when no seat won within the turn limit.
const Draw = -1

type Engine interface {
	// Run plays a game till a seat wins or the turn limit is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
