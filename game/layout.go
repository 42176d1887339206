package game

import (
	"errors"
	"fmt"
	"strings"
)

// Cell labels one square of a Layout.
type Cell uint8

const (
	Empty Cell = iota
	OwnStrong
	OwnWeak
	Opponent       // an opponent piece of unknown identity
	OpponentStrong // an opponent piece known to be strong
)

var cellRunes = map[Cell]byte{
	Empty:          '.',
	OwnStrong:      'S',
	OwnWeak:        'W',
	Opponent:       'u',
	OpponentStrong: 's',
}

var ErrBadLayout = errors.New("malformed layout")

func (c Cell) IsOwn() bool      { return c == OwnStrong || c == OwnWeak }
func (c Cell) IsOpponent() bool { return c == Opponent || c == OpponentStrong }

// Layout is a fully labelled 36-cell board snapshot from the own side's point of view.
type Layout [NumSquares]Cell

// ParseLayout reads six rows of six cells, top row first (row 5 down to row 0).
// Whitespace between rows is ignored.
func ParseLayout(s string) (Layout, error) {
	var l Layout
	rows := strings.Fields(s)
	if len(rows) != Width {
		return l, fmt.Errorf("%d rows: %w", len(rows), ErrBadLayout)
	}
	for i, row := range rows {
		if len(row) != Width {
			return l, fmt.Errorf("row %q: %w", row, ErrBadLayout)
		}
		r := Width - 1 - i
		for c := 0; c < Width; c++ {
			cell, ok := cellOf(row[c])
			if !ok {
				return l, fmt.Errorf("cell %q: %w", row[c], ErrBadLayout)
			}
			l[r*Width+c] = cell
		}
	}
	return l, nil
}

// MustParseLayout is ParseLayout for literals known to be valid.
func MustParseLayout(s string) Layout {
	l, err := ParseLayout(s)
	if err != nil {
		panic(err)
	}
	return l
}

func cellOf(r byte) (Cell, bool) {
	for cell, cr := range cellRunes {
		if cr == r {
			return cell, true
		}
	}
	return Empty, false
}

func (l Layout) String() string {
	var sb strings.Builder
	for r := Width - 1; r >= 0; r-- {
		for c := 0; c < Width; c++ {
			sb.WriteByte(cellRunes[l[r*Width+c]])
		}
		if r > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Masked hides every opponent identity.
func (l Layout) Masked() Layout {
	for i, c := range l {
		if c == OpponentStrong {
			l[i] = Opponent
		}
	}
	return l
}

// Resolve records that the opponent piece on sq is strong.
func (l Layout) Resolve(sq Square) (Layout, error) {
	if sq < 0 || sq >= NumSquares || !l[sq].IsOpponent() {
		return l, fmt.Errorf("resolve %v: no opponent piece: %w", sq, ErrBadLayout)
	}
	l[sq] = OpponentStrong
	return l, nil
}

// Apply relocates the cell on mv.From to mv.To. An escape simply empties mv.From.
func (l Layout) Apply(mv Move) Layout {
	if !mv.IsEscape() {
		l[mv.To] = l[mv.From]
	}
	l[mv.From] = Empty
	return l
}

// Count returns how many cells hold c.
func (l Layout) Count(c Cell) int {
	n := 0
	for _, cell := range l {
		if cell == c {
			n++
		}
	}
	return n
}

// FromLayout builds a Board. Unknown opponent pieces go to the opponent weak mask,
// known-strong ones to the opponent strong mask.
func FromLayout(l Layout) (Board, error) {
	var b Board
	for i, c := range l {
		sq := bit(Square(i))
		switch c {
		case Empty:
		case OwnStrong:
			b.masks[0] |= sq
		case OwnWeak:
			b.masks[1] |= sq
		case OpponentStrong:
			b.masks[2] |= sq
		case Opponent:
			b.masks[3] |= sq
		default:
			return Board{}, fmt.Errorf("cell %d: %w", i, ErrBadLayout)
		}
	}
	if err := b.validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Layout labels the board's squares; opponent strong pieces are reported as OpponentStrong.
func (b Board) Layout() Layout {
	var l Layout
	for sq := Square(0); sq < NumSquares; sq++ {
		m := bit(sq)
		switch {
		case b.masks[0]&m != 0:
			l[sq] = OwnStrong
		case b.masks[1]&m != 0:
			l[sq] = OwnWeak
		case b.masks[2]&m != 0:
			l[sq] = OpponentStrong
		case b.masks[3]&m != 0:
			l[sq] = Opponent
		}
	}
	return l
}
