package agent

import (
	"fmt"
	"geister/experiments/metrics"
	"geister/game"
	"geister/inference"
	"geister/meta"
	"geister/searcher"

	"github.com/rs/zerolog/log"
)

type Option func(p *player)

func WithEngine(engine *searcher.Engine) Option {
	return func(p *player) {
		if engine != nil {
			p.engine = engine
		}
	}
}

func WithPartial(partial searcher.Partial) Option {
	return func(p *player) {
		if partial != nil {
			p.partial = partial
		}
	}
}

// WithThreshold sets the likelihood score at which an opponent piece is taken as strong.
func WithThreshold(threshold int) Option {
	return func(p *player) {
		p.threshold = threshold
	}
}

func WithTracker(tracker *inference.Tracker) Option {
	return func(p *player) {
		if tracker != nil {
			p.tracker = tracker
		}
	}
}

// player infers opponent identities from their moves. Until one piece is resolved it uses
// the partial-information searcher; from then on it searches the board with that piece
// known strong. A player keeps per-game state and plays a single game.
type player struct {
	engine    *searcher.Engine
	partial   searcher.Partial
	tracker   *inference.Tracker
	threshold int
	started   bool
	resolved  game.Square
}

func NewPlayer(options ...Option) Agent {
	p := &player{ // Default values
		threshold: meta.STRONG_THRESHOLD,
		resolved:  game.None,
	}
	for _, option := range options {
		option(p)
	}
	if p.engine == nil {
		p.engine = searcher.NewEngine()
	}
	if p.partial == nil {
		p.partial = searcher.NewPartial()
	}
	if p.tracker == nil {
		p.tracker = inference.NewTracker()
	}
	return p
}

func (p *player) FindMove(view game.Layout, strongRemaining int) (game.Move, metrics.MoveMetric, error) {
	view = view.Masked()
	if err := p.observe(view); err != nil {
		return game.NoMove, metrics.MoveMetric{}, fmt.Errorf("failed to observe opponent: %w", err)
	}
	if p.resolved == game.None {
		if sq, ok := p.tracker.BestCandidate(p.threshold); ok && view[sq].IsOpponent() {
			p.resolved = sq
			log.Debug().Stringer("square", sq).Int("score", p.tracker.Likelihood(sq)).Msg("resolved opponent strong piece")
		}
	}

	mv, metric, err := p.search(view, strongRemaining)
	if err != nil {
		return game.NoMove, metrics.MoveMetric{}, err
	}
	resolved := p.resolved != game.None
	if err := p.tracker.RecordOwnMove(mv); err != nil {
		return game.NoMove, metrics.MoveMetric{}, fmt.Errorf("failed to record own move: %w", err)
	}
	if mv.To == p.resolved {
		p.resolved = game.None
	}
	return mv, metrics.MoveMetric{Resolved: resolved, SearchMetric: metric}, nil
}

// observe starts the tracker on the first call and feeds it the opponent's turn afterwards,
// following the resolved piece when it moves.
func (p *player) observe(view game.Layout) error {
	if !p.started {
		p.started = true
		return p.tracker.Init(view)
	}
	mv, err := p.tracker.ObserveOpponentTurn(view)
	if err != nil {
		return err
	}
	if mv.From == p.resolved {
		p.resolved = mv.To
	}
	return nil
}

func (p *player) search(view game.Layout, strongRemaining int) (game.Move, metrics.SearchMetric, error) {
	if p.resolved == game.None {
		b, err := game.FromLayout(view)
		if err != nil {
			return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("failed to build board: %w", err)
		}
		mv, _ := p.partial.SearchPartial(b, strongRemaining)
		return mv, p.partial.LastMetric(), nil
	}

	layout, err := view.Resolve(p.resolved)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	b, err := game.FromLayout(layout)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("failed to build board: %w", err)
	}
	mv, _ := p.engine.SearchWith(b, searcher.JudgeResolved(b, strongRemaining))
	return mv, p.engine.LastMetric(), nil
}
