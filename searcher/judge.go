package searcher

import (
	"geister/game"
	"geister/utils"
)

// judgeUnknown decides games where no opponent identity is known: escapes end the game, the
// own side loses on running out of either kind, the opponent only once it has no pieces left.
func judgeUnknown(b game.Board, side game.Side) game.Outcome {
	return decide(b, side, b.Occupied(game.Opp) == 0)
}

// JudgeResolved decides games on a board whose opponent strong mask holds the pieces known to
// be strong and whose weak mask holds the unknown ones. root is the board the search starts
// from and strongRemaining the opponent strong pieces on it. The opponent is only beaten once
// its strong or its weak pieces are gone whatever the unknown pieces turn out to be.
func JudgeResolved(root game.Board, strongRemaining int) game.Judge {
	rootStrong, rootUnknown := root.Counts(game.Opp)
	strongRemaining = utils.Min(utils.Max(strongRemaining, rootStrong), rootStrong+rootUnknown)

	return func(b game.Board, side game.Side) game.Outcome {
		strong, unknown := b.Counts(game.Opp)
		// Strong pieces not yet captured as known ones; captured unknown pieces may be among them
		left := strongRemaining - (rootStrong - strong)
		maxStrong := utils.Min(left, strong+unknown)
		minStrong := utils.Max(strong, left-(rootUnknown-unknown))
		return decide(b, side, maxStrong <= 0 || strong+unknown <= minStrong)
	}
}

// decide applies the escape and own elimination rules, then oppBeaten, relative to side.
func decide(b game.Board, side game.Side, oppBeaten bool) game.Outcome {
	other := side.Other()
	var loser game.Side
	switch {
	case b.Escaped(side):
		return game.SideToMoveWins
	case b.Escaped(other):
		return game.OpponentWins
	case b.Strong(game.Own) == 0 || b.Weak(game.Own) == 0:
		loser = game.Own
	case oppBeaten:
		loser = game.Opp
	default:
		return game.Undecided
	}
	if loser == side {
		return game.OpponentWins
	}
	return game.SideToMoveWins
}
