package game

import "geister/utils"

// The 36-bit board is split into two 18-bit halves (rows 0-2 and rows 3-5) so every table
// stays at 2^18 entries. Goal distances are tabulated as if the half held the exit rank;
// the other half is three rows further away, which is added back per piece.
const (
	halfBits  = 18
	halfMask  = 1<<halfBits - 1
	halfRows  = halfBits / Width
	boardMask = uint64(1)<<NumSquares - 1
	offBit    = uint64(1) << Off
)

var (
	popCountTable [1 << halfBits]uint8
	goalTable     [2][1 << halfBits]uint8
)

// exits lists each side's two exit corners on its target rank.
var exits = [2][2]Square{
	Own: {30, 35},
	Opp: {0, 5},
}

func init() {
	var squareDist [2][halfBits]uint8
	for j := 0; j < halfBits; j++ {
		squareDist[Own][j] = uint8(exitDistance(Own, Square(halfBits+j)))
		squareDist[Opp][j] = uint8(exitDistance(Opp, Square(j)))
	}

	for i := 1; i < 1<<halfBits; i++ {
		low := i & -i
		j := 0
		for low>>j != 1 {
			j++
		}
		rest := i &^ low
		popCountTable[i] = popCountTable[rest] + 1
		goalTable[Own][i] = goalTable[Own][rest] + squareDist[Own][j]
		goalTable[Opp][i] = goalTable[Opp][rest] + squareDist[Opp][j]
	}
}

// exitDistance is the Manhattan distance from sq to the nearer of side's exits.
func exitDistance(side Side, sq Square) int {
	best := NumSquares
	for _, exit := range exits[side] {
		best = utils.Min(best, Distance(sq, exit))
	}
	return best
}

// Distance is the Manhattan distance between two on-board squares.
func Distance(a, b Square) int {
	return utils.Abs(a.Row()-b.Row()) + utils.Abs(a.Col()-b.Col())
}

// PopCount counts the on-board bits of m with two table lookups.
func PopCount(m uint64) int {
	return int(popCountTable[m&halfMask]) + int(popCountTable[m>>halfBits&halfMask])
}

// GoalDistance sums, over every on-board bit of m, the distance to the nearer of side's exits.
func GoalDistance(side Side, m uint64) int {
	low, high := m&halfMask, m>>halfBits&halfMask
	if side == Own {
		return int(goalTable[Own][high]) + int(goalTable[Own][low]) + halfRows*int(popCountTable[low])
	}
	return int(goalTable[Opp][low]) + int(goalTable[Opp][high]) + halfRows*int(popCountTable[high])
}

// Exits returns side's two exit corners.
func Exits(side Side) [2]Square {
	return exits[side]
}

// IsExit reports whether sq is one of side's exit corners.
func IsExit(side Side, sq Square) bool {
	return sq == exits[side][0] || sq == exits[side][1]
}
