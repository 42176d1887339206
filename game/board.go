package game

import (
	"errors"
	"fmt"
	"math/bits"
)

const MaxPerKind = 4

var (
	ErrOverlap       = errors.New("pieces overlap")
	ErrTooManyPieces = errors.New("too many pieces")
	ErrOffBoard      = errors.New("piece outside the board")
)

// Board holds four disjoint occupancy masks. Bit Off of a weak mask records an escaped piece.
// Board is a value: Apply returns a modified copy and never touches the receiver.
type Board struct {
	masks [4]uint64 // own strong, own weak, opponent strong, opponent weak
}

func strongIndex(side Side) int { return 2 * int(side) }
func weakIndex(side Side) int   { return 2*int(side) + 1 }

// adjacent lists, for each square, its orthogonal neighbours in north, east, south, west order.
var (
	adjacent    [NumSquares][]Square
	adjacentBit [NumSquares]uint64
)

func init() {
	for sq := Square(0); sq < NumSquares; sq++ {
		row, col := sq.Row(), sq.Col()
		if row+1 < Width {
			adjacent[sq] = append(adjacent[sq], sq+Width)
		}
		if col+1 < Width {
			adjacent[sq] = append(adjacent[sq], sq+1)
		}
		if row > 0 {
			adjacent[sq] = append(adjacent[sq], sq-Width)
		}
		if col > 0 {
			adjacent[sq] = append(adjacent[sq], sq-1)
		}
		for _, n := range adjacent[sq] {
			adjacentBit[sq] |= bit(n)
		}
	}
}

func bit(sq Square) uint64 { return uint64(1) << uint(sq) }

// Neighbors returns the squares orthogonally adjacent to sq. The slice is shared and must not be modified.
func Neighbors(sq Square) []Square { return adjacent[sq] }

// NeighborMask returns the neighbours of sq as a bitmask.
func NeighborMask(sq Square) uint64 { return adjacentBit[sq] }

// NewBoard builds a board from raw masks, rejecting overlapping or over-populated input.
func NewBoard(ownStrong, ownWeak, oppStrong, oppWeak uint64) (Board, error) {
	b := Board{masks: [4]uint64{ownStrong, ownWeak, oppStrong, oppWeak}}
	var seen uint64
	for i, m := range b.masks {
		allowed := boardMask
		if i%2 == 1 {
			allowed |= offBit
		}
		if m&^allowed != 0 {
			return Board{}, fmt.Errorf("mask %d: %w", i, ErrOffBoard)
		}
		if seen&m != 0 {
			return Board{}, fmt.Errorf("mask %d: %w", i, ErrOverlap)
		}
		seen |= m
	}
	if err := b.validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// validate enforces the piece limits: at most four of each own kind, at most four known
// opponent strong pieces and at most eight opponent pieces overall.
func (b Board) validate() error {
	switch {
	case PopCount(b.masks[0]) > MaxPerKind:
		return fmt.Errorf("own strong: %w", ErrTooManyPieces)
	case PopCount(b.masks[1]) > MaxPerKind:
		return fmt.Errorf("own weak: %w", ErrTooManyPieces)
	case PopCount(b.masks[2]) > MaxPerKind:
		return fmt.Errorf("opponent strong: %w", ErrTooManyPieces)
	case PopCount(b.masks[2])+PopCount(b.masks[3]) > 2*MaxPerKind:
		return fmt.Errorf("opponent: %w", ErrTooManyPieces)
	}
	return nil
}

func (b Board) Strong(side Side) uint64 { return b.masks[strongIndex(side)] & boardMask }

func (b Board) Weak(side Side) uint64 { return b.masks[weakIndex(side)] & boardMask }

func (b Board) Occupied(side Side) uint64 { return b.Strong(side) | b.Weak(side) }

// Counts returns side's strong and weak piece counts on the board.
func (b Board) Counts(side Side) (strong, weak int) {
	return PopCount(b.Strong(side)), PopCount(b.Weak(side))
}

// Total counts every piece on the board.
func (b Board) Total() int {
	return PopCount(b.Occupied(Own)) + PopCount(b.Occupied(Opp))
}

// Escaped reports whether side has moved a weak piece off the board.
func (b Board) Escaped(side Side) bool { return b.masks[weakIndex(side)]&offBit != 0 }

// Owner returns which side occupies sq.
func (b Board) Owner(sq Square) (Side, bool) {
	switch {
	case b.Occupied(Own)&bit(sq) != 0:
		return Own, true
	case b.Occupied(Opp)&bit(sq) != 0:
		return Opp, true
	}
	return Own, false
}

// LegalMoves lists side's moves: escapes first, then every step onto a square not held by side.
func (b Board) LegalMoves(side Side) []Move {
	mine := b.Occupied(side)
	moves := make([]Move, 0, 4*2*MaxPerKind)
	for _, exit := range exits[side] {
		if b.Weak(side)&bit(exit) != 0 {
			moves = append(moves, Move{From: exit, To: Off})
		}
	}
	for m := mine; m != 0; m &= m - 1 {
		from := Square(bits.TrailingZeros64(m))
		for _, to := range adjacent[from] {
			if mine&bit(to) == 0 {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// Apply moves the piece on mv.From to mv.To, removing whatever stood on mv.To.
func (b Board) Apply(mv Move) Board {
	if mv.From == mv.To {
		panic("move must change square")
	}
	from, to := bit(mv.From), bit(mv.To)
	for i, m := range b.masks {
		if m&from == 0 {
			continue
		}
		for j := range b.masks {
			b.masks[j] &^= to
		}
		b.masks[i] = m&^from | to
		return b
	}
	panic(fmt.Sprintf("no piece on %v", mv.From))
}

// Winner decides the game relative to side. An escape is checked before anything else;
// a side whose strong or weak pieces have all been captured has lost.
func (b Board) Winner(side Side) Outcome {
	other := side.Other()
	switch {
	case b.Escaped(side):
		return SideToMoveWins
	case b.Escaped(other):
		return OpponentWins
	case b.Strong(side) == 0 || b.Weak(side) == 0:
		return OpponentWins
	case b.Strong(other) == 0 || b.Weak(other) == 0:
		return SideToMoveWins
	}
	return Undecided
}

// EscapeMove returns the step off the board when a weak piece of side stands on one of its exits.
func (b Board) EscapeMove(side Side) (Move, bool) {
	for _, exit := range exits[side] {
		if b.Weak(side)&bit(exit) != 0 {
			return Move{From: exit, To: Off}, true
		}
	}
	return NoMove, false
}

// Flip returns the board as seen from the other seat: rotated half a turn with sides swapped.
func (b Board) Flip() Board {
	return Board{masks: [4]uint64{
		flipMask(b.masks[2]), flipMask(b.masks[3]),
		flipMask(b.masks[0]), flipMask(b.masks[1]),
	}}
}

func flipMask(m uint64) uint64 {
	flipped := m & offBit
	for rest := m & boardMask; rest != 0; rest &= rest - 1 {
		flipped |= bit(Square(bits.TrailingZeros64(rest)).Flip())
	}
	return flipped
}

func (b Board) String() string {
	return b.Layout().String()
}
