package engine

import (
	"errors"
	"geister/experiments/metrics"
	"geister/game"
	"geister/meta"
	"geister/searcher/agent"
	"geister/utils"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

var ErrIllegalMove = errors.New("illegal move")

// startSquares are a seat's eight starting squares, seen from that seat.
var startSquares = [2 * game.MaxPerKind]game.Square{1, 2, 3, 4, 7, 8, 9, 10}

// Setup marks which starting squares hold strong pieces.
type Setup [2 * game.MaxPerKind]bool

// RandomSetup picks four of the eight starting squares for the strong pieces.
func RandomSetup() Setup {
	var s Setup
	for _, i := range frand.Perm(len(s))[:game.MaxPerKind] {
		s[i] = true
	}
	return s
}

type Option func(e *Local)

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithSetups fixes both seats' setups instead of drawing them at random.
func WithSetups(first, second Setup) Option {
	return func(e *Local) {
		e.setups = [2]Setup{first, second}
	}
}

// WithStartingSeat sets which seat moves first.
func WithStartingSeat(seat int) Option {
	return func(e *Local) {
		e.startingSeat = seat % 2
	}
}

// Local referees a game between two agents in process. The board is kept from the first
// seat's side; the second seat sees it rotated. Agents never see opponent identities.
type Local struct {
	agents       [2]agent.Agent
	setups       [2]Setup
	maxTurns     int
	startingSeat int
	board        game.Board
}

func LocalEngine(agents []agent.Agent, options ...Option) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	e := &Local{ // Default values
		agents:   [2]agent.Agent{agents[0], agents[1]},
		setups:   [2]Setup{RandomSetup(), RandomSetup()},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	e.board = initialBoard(e.setups)
	return e
}

func initialBoard(setups [2]Setup) game.Board {
	var masks [4]uint64
	for seat, setup := range setups {
		for i, strong := range setup {
			sq := startSquares[i]
			if seat == 1 {
				sq = sq.Flip()
			}
			kind := 1
			if strong {
				kind = 0
			}
			masks[2*seat+kind] |= uint64(1) << uint(sq)
		}
	}
	b, err := game.NewBoard(masks[0], masks[1], masks[2], masks[3])
	if err != nil {
		panic(err)
	}
	return b
}

// Board returns the current board from the first seat's side.
func (e *Local) Board() game.Board { return e.board }

// Run executes the entire game loop until a seat wins or the turn limit is reached.
func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingSeat: e.startingSeat,
		Winner:       Draw,
		Reason:       "turns",
		StartTime:    time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Int("seat", e.startingSeat).Msg("starting game")

	seat := e.startingSeat
	for turn := 1; turn <= e.maxTurns; turn++ {
		view := e.viewOf(seat)
		strong, _ := view.Counts(game.Opp)
		mv, moveMetric, err := e.agents[seat].FindMove(view.Layout().Masked(), strong)
		if err == nil && utils.FindIndex(view.LegalMoves(game.Own), mv) < 0 {
			err = ErrIllegalMove
		}
		if err != nil {
			log.Warn().Err(err).Int("seat", seat).Stringer("move", mv).Msg("agent forfeits")
			gameMetric.Winner, gameMetric.Reason = 1-seat, "forfeit"
			break
		}

		moveMetric.Step, moveMetric.Seat = turn, seat
		moveMetrics = append(moveMetrics, moveMetric)
		gameMetric.TotalMoves = turn

		view = view.Apply(mv)
		e.setView(seat, view)
		if outcome := view.Winner(game.Own); outcome != game.Undecided {
			gameMetric.Winner = seat
			if outcome == game.OpponentWins {
				gameMetric.Winner = 1 - seat
			}
			gameMetric.Reason = reason(view)
			break
		}
		seat = 1 - seat
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	log.Info().Int("winner", gameMetric.Winner).Str("reason", gameMetric.Reason).Int("moves", gameMetric.TotalMoves).Msg("game over")
	return gameMetric.Winner, gameMetric, moveMetrics
}

func (e *Local) viewOf(seat int) game.Board {
	if seat == 1 {
		return e.board.Flip()
	}
	return e.board
}

func (e *Local) setView(seat int, view game.Board) {
	if seat == 1 {
		view = view.Flip()
	}
	e.board = view
}

// reason names how a decided game ended.
func reason(b game.Board) string {
	switch {
	case b.Escaped(game.Own) || b.Escaped(game.Opp):
		return "escape"
	case b.Strong(game.Own) == 0 || b.Strong(game.Opp) == 0:
		return "strong"
	}
	return "weak"
}
