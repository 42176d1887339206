package game

import "fmt"

// Square indexes the 6x6 board as row*6 + col. Row 0 is the own back rank, row 5 the opponent's.
type Square int

const (
	Width      = 6
	NumSquares = Width * Width

	// Off is the off-board square a weak piece moves to when it escapes.
	Off Square = NumSquares
	// None marks the absence of a square.
	None Square = -1
)

func (s Square) Row() int { return int(s) / Width }
func (s Square) Col() int { return int(s) % Width }

// Flip mirrors the square through the board centre, mapping one seat's coordinates to the other's.
func (s Square) Flip() Square {
	if s == Off || s == None {
		return s
	}
	return NumSquares - 1 - s
}

func (s Square) String() string {
	switch s {
	case Off:
		return "off"
	case None:
		return "none"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}

// Move relocates the piece on From to To. To is an orthogonal neighbour of From, or Off for an escape.
type Move struct {
	From Square
	To   Square
}

var NoMove = Move{From: None, To: None}

func (m Move) IsEscape() bool { return m.To == Off }

func (m Move) Flip() Move { return Move{From: m.From.Flip(), To: m.To.Flip()} }

func (m Move) String() string { return m.From.String() + "-" + m.To.String() }

// Side identifies who moves: Own is the engine's side, Opp its opponent.
type Side int

const (
	Own Side = iota
	Opp
)

func (s Side) Other() Side { return 1 - s }

func (s Side) String() string {
	if s == Own {
		return "own"
	}
	return "opp"
}

type Outcome int

const (
	Undecided Outcome = iota
	SideToMoveWins
	OpponentWins
)

// Evaluate scores a non-terminal board from side's perspective; larger is better for side.
type Evaluate func(b Board, side Side) int

// Judge decides whether the game on b is over, relative to side.
type Judge func(b Board, side Side) Outcome
