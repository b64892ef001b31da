package rules

import "github.com/brensch/corners/game"

// TurnResult is the outcome of advancing the turn from one color.
type TurnResult struct {
	// Next is the new active color. When Terminal is set it is only a
	// placeholder (the last color checked); no further moves will be
	// requested from it.
	Next game.Color
	// Out carries the updated sticky out flags.
	Out [4]bool
	// Neutral is the updated neutral-rotation pointer (3-party mode). It
	// advances by one each time the cyclic walk passes the neutral color's
	// slot, whether that slot is skipped or played.
	Neutral int
	// PlayedBy is the party controlling Next. For the neutral color it is
	// the party that held the rotation when the walk reached the slot.
	PlayedBy int
	// Terminal is set once all four colors are confirmed out.
	Terminal bool
}

// AdvanceTurn walks forward cyclically from current, marking colors with no
// legal move as out, and returns the first color that can still place a
// piece. Out is sticky: a color marked out is never probed or returned
// again. Terminal is only reported when all four colors are out.
func AdvanceTurn(current game.Color, board *game.Board, used [4][]int, firstMove [4]bool, out [4]bool, mode game.Mode, neutral int) TurnResult {
	res := TurnResult{Out: out, Neutral: neutral, PlayedBy: -1}
	neutralColor := mode.NeutralColor()

	last := current
	for i := 1; i <= 4; i++ {
		c := game.Color((int(current) + i) % 4)
		last = c

		holder := res.Neutral
		if c == neutralColor {
			res.Neutral = (res.Neutral + 1) % 3
		}

		if res.Out[c] {
			continue
		}
		if !HasAnyValidMove(board, c, used[c], firstMove[c]) {
			res.Out[c] = true
			continue
		}

		res.Next = c
		if c == neutralColor {
			res.PlayedBy = holder
		} else {
			res.PlayedBy = mode.PartyOf(c)
		}
		return res
	}

	res.Next = last
	res.Terminal = true
	return res
}
