package game

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPopCount(t *testing.T) {
	t.Run("matching the hardware count over the full board", func(t *testing.T) {
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 1000; i++ {
			m := r.Uint64() & boardMask
			require.Equal(t, bits.OnesCount64(m), PopCount(m), "Count should be exact for mask %x", m)
		}
	})

	t.Run("ignoring the escape bit", func(t *testing.T) {
		require.Equal(t, 1, PopCount(offBit|bit(35)), "Escaped pieces are not on the board")
	})
}

func TestGoalDistance(t *testing.T) {
	naive := func(side Side, m uint64) int {
		total := 0
		for sq := Square(0); sq < NumSquares; sq++ {
			if m&bit(sq) != 0 {
				total += exitDistance(side, sq)
			}
		}
		return total
	}

	t.Run("single squares", func(t *testing.T) {
		require.Equal(t, 0, GoalDistance(Own, bit(30)), "Own exit is at distance 0")
		require.Equal(t, 0, GoalDistance(Own, bit(35)), "Own exit is at distance 0")
		require.Equal(t, 5, GoalDistance(Own, bit(0)), "a1 is five rows from the own exits")
		require.Equal(t, 7, GoalDistance(Own, bit(2)), "c1 is five rows and two files away")
		require.Equal(t, 0, GoalDistance(Opp, bit(5)), "Opponent exit is at distance 0")
		require.Equal(t, 7, GoalDistance(Opp, bit(33)), "d6 is five rows and two files away")
	})

	t.Run("split lookups agree with a square by square sum", func(t *testing.T) {
		r := rand.New(rand.NewSource(11))
		for i := 0; i < 1000; i++ {
			m := r.Uint64() & boardMask
			require.Equal(t, naive(Own, m), GoalDistance(Own, m), "Own distance mismatch for %x", m)
			require.Equal(t, naive(Opp, m), GoalDistance(Opp, m), "Opponent distance mismatch for %x", m)
		}
	})
}

func TestNeighbors(t *testing.T) {
	require.Equal(t, []Square{6, 1}, Neighbors(0), "Corner has two neighbours")
	require.Equal(t, []Square{13, 8, 1, 6}, Neighbors(7), "Inner square has four neighbours in N, E, S, W order")
	require.Equal(t, []Square{34, 29}, Neighbors(35), "Corner has two neighbours")
	require.Equal(t, bit(6)|bit(1), NeighborMask(0))
}
