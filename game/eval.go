package game

import "geister/utils"

// Weights scale the two evaluation terms. Exist must dominate Dist so that material
// always outweighs position.
type Weights struct {
	Exist int // per surviving weak piece
	Dist  int // per step between a piece and its nearer exit
}

var DefaultWeights = Weights{Exist: 100, Dist: 1}

// Score rates side alone: surviving weak pieces minus the total distance of its pieces to its exits.
func (w Weights) Score(b Board, side Side) int {
	return w.Exist*PopCount(b.Weak(side)) - w.Dist*GoalDistance(side, b.Occupied(side))
}

// Evaluate returns side's score minus its opponent's.
func (w Weights) Evaluate(b Board, side Side) int {
	return w.Score(b, side) - w.Score(b, side.Other())
}

// Bound is the largest magnitude Evaluate can return for these weights.
func (w Weights) Bound() int {
	const maxPieces, maxDistance = 2 * MaxPerKind, Width - 1 + Width/2 - 1
	return 2 * (maxPieces*utils.Abs(w.Exist) + maxPieces*maxDistance*utils.Abs(w.Dist))
}
