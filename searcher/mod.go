package searcher

// Inf bounds every score. A decided position at depth d scores Inf-d for the winner, so a
// faster win outranks a slower one. Evaluation weights must keep ordinary scores far below it.
const Inf = 1 << 24

// IsMate reports whether score comes from a decided position rather than the evaluation.
func IsMate(score int) bool {
	return score > Inf/2 || score < -Inf/2
}
