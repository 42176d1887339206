package inference

import (
	"cmp"
	"errors"
	"fmt"
	"geister/game"
	"geister/utils"
	"slices"

	"github.com/rs/zerolog/log"
)

var (
	ErrMalformedDiff = errors.New("snapshots do not differ by a single opponent move")
	ErrOutOfOrder    = errors.New("call out of turn order")
	ErrInvalidMove   = errors.New("move does not relocate an own piece")
)

// Weights is the evidence added to a square for each observed behaviour.
type Weights struct {
	Chase        int // stepping next to an own piece
	ChasePressed int // the same while the own side has a single strong piece left
	Corner       int // leaving an exit corner without escaping, or lingering on one
	Race         int // being nearer to an exit corner than every own piece
}

var DefaultWeights = Weights{Chase: 5, ChasePressed: 1, Corner: 1000, Race: 1000}

// Grid holds one likelihood score per square.
type Grid [game.NumSquares]int

// relocate moves the score on mv.From to mv.To, overwriting any captured piece's score.
func (g Grid) relocate(mv game.Move) Grid {
	if !mv.IsEscape() {
		g[mv.To] = g[mv.From]
	}
	g[mv.From] = 0
	return g
}

type phase int

const (
	idle phase = iota
	ownTurn
	oppTurn
)

type Option func(t *Tracker)

func WithWeights(weights Weights) Option {
	return func(t *Tracker) {
		t.weights = weights
	}
}

// WithRace toggles the exit race rule.
func WithRace(enabled bool) Option {
	return func(t *Tracker) {
		t.race = enabled
	}
}

// Tracker accumulates evidence about which opponent pieces are strong. It keeps one masked
// snapshot and one likelihood grid per observed half-move. Scores only ever grow.
// Calls must alternate: Init, then RecordOwnMove and ObserveOpponentTurn in turn.
type Tracker struct {
	weights    Weights
	race       bool
	history    []game.Layout
	likelihood []Grid
	exposed    bool
	phase      phase
}

func NewTracker(options ...Option) *Tracker {
	t := &Tracker{ // Default values
		weights: DefaultWeights,
		race:    true,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Init starts a game from the view at the beginning of the first own turn.
func (t *Tracker) Init(view game.Layout) error {
	if _, err := game.FromLayout(view); err != nil {
		return fmt.Errorf("init tracker: %w", err)
	}
	view = view.Masked()
	t.history = []game.Layout{view}
	t.likelihood = []Grid{{}}
	t.exposed = false
	t.phase = ownTurn
	t.checkExposure(view)
	return nil
}

// RecordOwnMove appends the snapshot after the own move mv. Scores travel with the moved piece.
func (t *Tracker) RecordOwnMove(mv game.Move) error {
	if t.phase != ownTurn {
		return fmt.Errorf("record own move %v: %w", mv, ErrOutOfOrder)
	}
	prev := t.latest()
	if !validOwnMove(prev, mv) {
		return fmt.Errorf("record own move %v: %w", mv, ErrInvalidMove)
	}
	next := prev.Apply(mv)
	t.push(next, t.Scores().relocate(mv))
	t.phase = oppTurn
	t.checkExposure(next)
	return nil
}

func validOwnMove(l game.Layout, mv game.Move) bool {
	if mv.From < 0 || mv.From >= game.NumSquares || !l[mv.From].IsOwn() {
		return false
	}
	if mv.IsEscape() {
		return l[mv.From] == game.OwnWeak && game.IsExit(game.Own, mv.From)
	}
	return mv.To >= 0 && mv.To < game.NumSquares && game.Distance(mv.From, mv.To) == 1 && !l[mv.To].IsOwn()
}

// ObserveOpponentTurn appends the view at the start of an own turn, recovers the opponent's
// move from the difference with the previous snapshot and scores it.
func (t *Tracker) ObserveOpponentTurn(view game.Layout) (game.Move, error) {
	if t.phase != oppTurn {
		return game.NoMove, fmt.Errorf("observe opponent turn: %w", ErrOutOfOrder)
	}
	prev, now := t.latest(), view.Masked()
	mv, err := DetectMove(prev, now)
	if err != nil {
		log.Warn().Err(err).Int("snapshot", len(t.history)).Msg("rejecting opponent turn")
		return game.NoMove, err
	}

	scores := t.Scores().relocate(mv)
	t.addEvidence(&scores, prev, now, mv)
	t.push(now, scores)
	t.phase = ownTurn
	t.checkExposure(now)
	return mv, nil
}

// DetectMove recovers the opponent move that turns prev into now. Exactly two cells must
// differ: an opponent piece leaves one and arrives on an adjacent one.
func DetectMove(prev, now game.Layout) (game.Move, error) {
	var changed []game.Square
	for sq := range prev {
		if prev[sq] != now[sq] {
			changed = append(changed, game.Square(sq))
		}
	}
	if len(changed) != 2 {
		return game.NoMove, fmt.Errorf("%d cells changed: %w", len(changed), ErrMalformedDiff)
	}

	from, to := changed[0], changed[1]
	if now[from] != game.Empty {
		from, to = to, from
	}
	switch {
	case now[from] != game.Empty || !prev[from].IsOpponent():
		return game.NoMove, fmt.Errorf("no opponent piece left a square: %w", ErrMalformedDiff)
	case !now[to].IsOpponent() || prev[to].IsOpponent():
		return game.NoMove, fmt.Errorf("no opponent piece arrived on %v: %w", to, ErrMalformedDiff)
	case game.Distance(from, to) != 1:
		return game.NoMove, fmt.Errorf("%v to %v is not a step: %w", from, to, ErrMalformedDiff)
	}
	return game.Move{From: from, To: to}, nil
}

func (t *Tracker) addEvidence(scores *Grid, prev, now game.Layout, mv game.Move) {
	add := func(rule string, sq game.Square, weight int) {
		scores[sq] += weight
		log.Debug().Str("rule", rule).Stringer("square", sq).Int("weight", weight).Int("score", scores[sq]).Msg("evidence added")
	}

	if isChase(prev, mv) {
		weight := t.weights.Chase
		if prev.Count(game.OwnStrong) == 1 {
			weight = t.weights.ChasePressed
		}
		add("chase", mv.To, weight)
	}
	// A weak piece on the corner would have escaped instead
	if game.IsExit(game.Opp, mv.From) {
		add("corner departure", mv.To, t.weights.Corner)
	}
	if t.race {
		for _, exit := range game.Exits(game.Opp) {
			leader, ok := raceLeader(prev, exit)
			if !ok {
				continue
			}
			if leader == mv.From {
				leader = mv.To
			}
			add("race", leader, t.weights.Race)
		}
	}
	for _, exit := range game.Exits(game.Opp) {
		if now[exit].IsOpponent() && mv.To != exit {
			add("corner occupant", exit, t.weights.Corner)
		}
	}
}

// isChase reports a non-capturing step from a square with no own neighbour to one with an own neighbour.
func isChase(prev game.Layout, mv game.Move) bool {
	if mv.IsEscape() || prev[mv.To].IsOwn() {
		return false
	}
	return !nextToOwn(prev, mv.From) && nextToOwn(prev, mv.To)
}

func nextToOwn(l game.Layout, sq game.Square) bool {
	for _, n := range game.Neighbors(sq) {
		if l[n].IsOwn() {
			return true
		}
	}
	return false
}

// raceLeader returns the opponent piece nearest to exit when it is strictly nearer than every
// own piece. Ties between opponent pieces go to the lowest square.
func raceLeader(l game.Layout, exit game.Square) (game.Square, bool) {
	leader := game.None
	oppBest, ownBest := game.NumSquares, game.NumSquares
	for i, cell := range l {
		sq := game.Square(i)
		switch {
		case cell.IsOpponent():
			if d := game.Distance(sq, exit); d < oppBest {
				leader, oppBest = sq, d
			}
		case cell.IsOwn():
			ownBest = utils.Min(ownBest, game.Distance(sq, exit))
		}
	}
	return leader, leader != game.None && oppBest < ownBest
}

// checkExposure flags an own strong piece standing on an own exit corner.
func (t *Tracker) checkExposure(l game.Layout) {
	for _, exit := range game.Exits(game.Own) {
		if l[exit] == game.OwnStrong && !t.exposed {
			t.exposed = true
			log.Debug().Stringer("square", exit).Msg("own strong piece exposed")
		}
	}
}

func (t *Tracker) push(l game.Layout, g Grid) {
	t.history = append(t.history, l)
	t.likelihood = append(t.likelihood, g)
}

func (t *Tracker) latest() game.Layout {
	if len(t.history) == 0 {
		panic("tracker used before Init")
	}
	return t.history[len(t.history)-1]
}

// Scores returns the newest likelihood grid.
func (t *Tracker) Scores() Grid {
	if len(t.likelihood) == 0 {
		return Grid{}
	}
	return t.likelihood[len(t.likelihood)-1]
}

// Likelihood returns the current score of sq.
func (t *Tracker) Likelihood(sq game.Square) int { return t.Scores()[sq] }

// Len returns the number of snapshots recorded since Init.
func (t *Tracker) Len() int { return len(t.history) }

// Snapshot returns the i-th masked snapshot.
func (t *Tracker) Snapshot(i int) game.Layout { return t.history[i] }

// Exposed reports whether an own strong piece has stood on an own exit corner this game.
func (t *Tracker) Exposed() bool { return t.exposed }

// BestCandidate returns the square with the highest score, provided it reaches threshold.
// Ties go to the highest square.
func (t *Tracker) BestCandidate(threshold int) (game.Square, bool) {
	best, bestScore := game.None, threshold
	for sq, score := range t.Scores() {
		if score >= bestScore {
			best, bestScore = game.Square(sq), score
		}
	}
	return best, best != game.None
}

// Ranked lists every square scoring at least threshold, highest score first.
func (t *Tracker) Ranked(threshold int) []game.Square {
	scores := t.Scores()
	var ranked []game.Square
	for sq, score := range scores {
		if score >= threshold {
			ranked = append(ranked, game.Square(sq))
		}
	}
	slices.SortFunc(ranked, func(a, b game.Square) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})
	return ranked
}
