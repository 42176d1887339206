package agent

import (
	"geister/game"
	"geister/inference"
	"geister/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

const opening = `
	.uuuu.
	.uuuu.
	......
	......
	.WSWS.
	.SWSW.`

func legal(t *testing.T, view game.Layout, mv game.Move) {
	t.Helper()
	b, err := game.FromLayout(view)
	require.NoError(t, err)
	require.Contains(t, b.LegalMoves(game.Own), mv, "Move should be legal on\n%v", view)
}

func shallowPlayer() Agent {
	return NewPlayer(
		WithEngine(searcher.NewEngine(searcher.WithDepth(1))),
		WithPartial(searcher.NewPartial(searcher.WithDepth(1))),
	)
}

func TestPlayerResolvesCornerDeparture(t *testing.T) {
	p := shallowPlayer()
	view := game.MustParseLayout(`
		...u..
		......
		......
		......
		....S.
		u...W.`)

	mv, metric, err := p.FindMove(view, 1)
	require.NoError(t, err)
	legal(t, view, mv)
	require.False(t, metric.Resolved, "No evidence before the opponent has moved")

	view = view.Apply(mv).Apply(game.Move{From: 0, To: 6})
	mv, metric, err = p.FindMove(view, 1)

	require.NoError(t, err)
	legal(t, view, mv)
	require.True(t, metric.Resolved, "Leaving the exit corner resolves the piece")
	require.Equal(t, 1, metric.Depth, "The full-information engine chose the move")
}

func TestPlayerUsesPartialSearchFirst(t *testing.T) {
	partial := searcher.NewPartial(searcher.WithDepth(2))
	p := NewPlayer(WithPartial(partial), WithTracker(inference.NewTracker(inference.WithRace(false))))
	view := game.MustParseLayout(opening)

	mv, metric, err := p.FindMove(view, 4)

	require.NoError(t, err)
	legal(t, view, mv)
	require.False(t, metric.Resolved)
	require.Equal(t, 2, metric.Depth)
}

func TestPlayerEscapes(t *testing.T) {
	view := game.MustParseLayout(`
		W..u..
		......
		......
		......
		......
		.S..u.`)

	mv, _, err := shallowPlayer().FindMove(view, 1)

	require.NoError(t, err)
	require.Equal(t, game.Move{From: 30, To: game.Off}, mv)
}

func TestPlayerRejectsInconsistentView(t *testing.T) {
	p := shallowPlayer()
	view := game.MustParseLayout(opening)
	_, _, err := p.FindMove(view, 4)
	require.NoError(t, err)

	_, _, err = p.FindMove(view, 4)

	require.ErrorIs(t, err, inference.ErrMalformedDiff, "The own move is missing from the view")
}

func TestRandomAgent(t *testing.T) {
	t.Run("same seed same moves", func(t *testing.T) {
		view := game.MustParseLayout(opening)
		a, b := NewRandom(3), NewRandom(3)
		for i := 0; i < 10; i++ {
			mvA, _, err := a.FindMove(view, 4)
			require.NoError(t, err)
			mvB, _, err := b.FindMove(view, 4)
			require.NoError(t, err)

			require.Equal(t, mvA, mvB)
			legal(t, view, mvA)
		}
	})

	t.Run("prefers escape", func(t *testing.T) {
		view := game.MustParseLayout(`
			.....W
			......
			......
			......
			u.....
			.S....`)

		mv, _, err := NewRandom(1).FindMove(view, 1)

		require.NoError(t, err)
		require.Equal(t, game.Move{From: 35, To: game.Off}, mv)
	})
}

func TestPlayerKeepsDefendingAfterResolution(t *testing.T) {
	tracker := inference.NewTracker(inference.WithRace(false))
	p := NewPlayer(WithTracker(tracker), WithEngine(searcher.NewEngine(searcher.WithDepth(2)))).(*player)
	view := game.MustParseLayout(`
		uu....
		S..W..
		......
		S.....
		.....W
		u....u`)
	require.NoError(t, tracker.Init(view))
	require.NoError(t, tracker.RecordOwnMove(game.Move{From: 27, To: 21}))
	p.started = true

	// a1 leaves its corner next to the own strong piece on a3 while f1 waits to escape
	view = view.Apply(game.Move{From: 27, To: 21}).Apply(game.Move{From: 0, To: 6})
	mv, metric, err := p.FindMove(view, 2)

	require.NoError(t, err)
	require.True(t, metric.Resolved, "The piece on a2 left the exit corner")
	require.False(t, searcher.IsMate(metric.Score), "Capturing one of two strong pieces does not win")
	require.Equal(t, game.Move{From: 11, To: 5}, mv, "Stopping the escape comes first")
}
