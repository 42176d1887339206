package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	t.Run("round trip through String", func(t *testing.T) {
		l := MustParseLayout(opening)

		again, err := ParseLayout(l.String())

		require.NoError(t, err)
		require.Equal(t, l, again)
		require.Equal(t, OwnStrong, l[1], "Bottom row is row 0")
		require.Equal(t, Opponent, l[31], "Top row is row 5")
	})

	t.Run("rejecting short input", func(t *testing.T) {
		_, err := ParseLayout("......\n......")
		require.ErrorIs(t, err, ErrBadLayout)
	})

	t.Run("rejecting unknown cells", func(t *testing.T) {
		_, err := ParseLayout("x.....\n......\n......\n......\n......\n......")
		require.ErrorIs(t, err, ErrBadLayout)
	})
}

func TestFromLayout(t *testing.T) {
	t.Run("rejecting five own weak pieces", func(t *testing.T) {
		_, err := FromLayout(MustParseLayout(`
			.uuuu.
			.uuuu.
			......
			W.....
			.WSWS.
			.SWSW.`))
		require.ErrorIs(t, err, ErrTooManyPieces)
	})

	t.Run("unknown opponents become weak, resolved ones strong", func(t *testing.T) {
		l := MustParseLayout(`
			.uuuu.
			.uuuu.
			......
			......
			.WSWS.
			.SWSW.`)
		l, err := l.Resolve(31)
		require.NoError(t, err)

		b, err := FromLayout(l)

		require.NoError(t, err)
		require.Equal(t, bit(31), b.Strong(Opp))
		require.Equal(t, 7, PopCount(b.Weak(Opp)))
		require.Equal(t, l, b.Layout(), "Board should label squares as the layout did")
	})

	t.Run("resolving an empty square", func(t *testing.T) {
		_, err := MustParseLayout(opening).Resolve(14)
		require.ErrorIs(t, err, ErrBadLayout)
	})
}

func TestLayoutApply(t *testing.T) {
	l := MustParseLayout(opening)

	moved := l.Apply(Move{From: 25, To: 19})

	require.Equal(t, Empty, moved[25])
	require.Equal(t, Opponent, moved[19])
	require.Equal(t, Opponent, l[25], "Receiver should not change")
	require.Equal(t, Empty, MustParseLayout(opening).Apply(Move{From: 1, To: Off})[1], "Escape empties the source")
}

func TestMasked(t *testing.T) {
	l := MustParseLayout(opening).Masked()
	require.Zero(t, l.Count(OpponentStrong))
	require.Equal(t, 8, l.Count(Opponent))
}
