package searcher

import (
	"geister/experiments/metrics"
	"geister/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func board(t *testing.T, rows string) game.Board {
	t.Helper()
	b, err := game.FromLayout(game.MustParseLayout(rows))
	require.NoError(t, err)
	return b
}

// minimax is negamax without pruning, used as the reference for alpha-beta results.
func minimax(b game.Board, d, depth int) int {
	player := game.Side(d % 2)
	switch b.Winner(player) {
	case game.SideToMoveWins:
		return Inf - d
	case game.OpponentWins:
		return -(Inf - d)
	}
	if d == depth {
		return game.DefaultWeights.Evaluate(b, player)
	}
	best := -Inf - 1
	for _, mv := range b.LegalMoves(player) {
		if score := -minimax(b.Apply(mv), d+1, depth); score > best {
			best = score
		}
	}
	return best
}

// randomBoard plays random moves from a full opening until the game is still undecided after ply plies.
func randomBoard(t *testing.T, r *rand.Rand, plies int) game.Board {
	t.Helper()
	for {
		b := board(t, `
			.usus.
			.usus.
			......
			......
			.WSWS.
			.SWSW.`)
		side := game.Own
		for i := 0; i < plies && b.Winner(side) == game.Undecided; i++ {
			moves := b.LegalMoves(side)
			b = b.Apply(moves[r.Intn(len(moves))])
			side = side.Other()
		}
		// Searches start with the own side to move
		if side == game.Own && b.Winner(game.Own) == game.Undecided {
			if _, ok := b.EscapeMove(game.Own); !ok {
				return b
			}
		}
	}
}

func TestSearchMatchesMinimax(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 12; i++ {
		b := randomBoard(t, r, 10+2*i)
		depth := 2 + i%2
		e := NewEngine(WithDepth(depth))

		move, score := e.Search(b)

		require.Equal(t, minimax(b, 0, depth), score, "Pruned score should equal the full minimax score on\n%v", b)
		require.Contains(t, b.LegalMoves(game.Own), move, "Best move should be legal")
		require.Equal(t, score, -minimax(b.Apply(move), 1, depth), "Best move should achieve the root score")
	}
}

func TestDepthZeroEqualsEvaluation(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 10; i++ {
		b := randomBoard(t, r, 2*i)
		s := search{depth: 0, evaluate: game.DefaultWeights.Evaluate, judge: game.Board.Winner, metrics: metrics.NewDummyCollector()}

		got := s.negamax(b, 0, -Inf-1, Inf+1)

		require.Equal(t, game.DefaultWeights.Evaluate(b, game.Own), got)
	}
}

func TestSearchCapturesForImmediateWin(t *testing.T) {
	t.Run("capturing the last strong piece", func(t *testing.T) {
		b := board(t, `
			...u..
			......
			......
			......
			s.W...
			S.....`)

		move, score := NewEngine(WithDepth(1)).Search(b)

		require.Equal(t, game.Move{From: 0, To: 6}, move, "Should capture the adjacent piece")
		require.Equal(t, Inf-1, score, "Score should be a win one ply away, not positional")
	})

	t.Run("capturing the last weak piece", func(t *testing.T) {
		b := board(t, `
			...s..
			......
			......
			......
			u.W...
			S.....`)

		move, score := NewEngine(WithDepth(1)).Search(b)

		require.Equal(t, game.Move{From: 0, To: 6}, move)
		require.Equal(t, Inf-1, score)
	})
}

func TestSearchEscapeShortCircuit(t *testing.T) {
	b := board(t, `
		W..u..
		......
		......
		......
		......
		S...s.`)
	for depth := 0; depth <= 4; depth++ {
		collector := metrics.NewCollector()
		e := NewEngine(WithDepth(depth), WithMetrics(collector))

		move, score := e.Search(b)

		require.Equal(t, game.Move{From: 30, To: game.Off}, move, "Depth %d should step off the board", depth)
		require.Equal(t, Inf, score, "Depth %d should report the maximum score", depth)
		require.Zero(t, e.LastMetric().Nodes, "No node should be searched")
		require.Equal(t, depth, e.LastMetric().Depth, "Escape turns report the configured depth")
	}
}

func TestSearchDeeperKeepsForcedWin(t *testing.T) {
	b := board(t, `
		.s....
		u....W
		......
		......
		......
		S.....`)

	_, shallow := NewEngine(WithDepth(2)).Search(b)
	move, exact := NewEngine(WithDepth(3)).Search(b)
	_, deeper := NewEngine(WithDepth(4)).Search(b)

	require.False(t, IsMate(shallow), "Escape needs three plies")
	require.Equal(t, Inf-3, exact, "Reach exit, opponent moves, step off")
	require.Equal(t, game.Move{From: 29, To: 35}, move)
	require.GreaterOrEqual(t, deeper, exact, "A deeper search keeps the win at least as fast")
}

func TestSearchSeesUnavoidableLoss(t *testing.T) {
	// The only own weak piece on a1 is cornered by two opponent pieces: every reply loses it.
	b := board(t, `
		....s.
		......
		......
		......
		uu....
		WS....`)

	_, score := NewEngine(WithDepth(2)).Search(b)

	require.Equal(t, -(Inf - 2), score, "The opponent captures the last weak piece on its first move")
}

func TestMetricsCollected(t *testing.T) {
	collector := metrics.NewCollector()
	e := NewEngine(WithDepth(3), WithMetrics(collector))
	b := randomBoard(t, rand.New(rand.NewSource(1)), 6)

	_, score := e.Search(b)

	metric := e.LastMetric()
	require.Equal(t, 3, metric.Depth)
	require.Equal(t, score, metric.Score)
	require.Positive(t, metric.Nodes)
	require.Positive(t, metric.Cutoffs, "Alpha-beta should cut at least once at depth 3")
}

func TestNewEngineRejectsHugeWeights(t *testing.T) {
	require.Panics(t, func() { NewEngine(WithWeights(game.Weights{Exist: Inf, Dist: 1})) })
}
