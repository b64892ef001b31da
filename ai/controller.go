package ai

import (
	"math/rand"

	"github.com/brensch/corners/game"
	"github.com/brensch/corners/rules"
)

// ChooseMove generates every legal move for color and selects one under the
// tier's heuristics. holder is the party currently holding the neutral
// color's rotation (3-party mode); callers pass the resolver's PlayedBy
// value when color is the neutral color, and the state's pointer otherwise.
// Returns nil when the color has no legal move, signalling a pass.
func ChooseMove(rng *rand.Rand, state *game.GameState, color game.Color, tier Tier, holder int) *game.Move {
	moves := rules.GenerateAllMoves(&state.Board, color, state.Used[color], state.FirstMove[color])
	if len(moves) == 0 {
		return nil
	}

	ctx := Context{
		Board:     &state.Board,
		Color:     color,
		Tier:      tier,
		FirstMove: state.FirstMove[color],
		Parties:   state.Mode.Parties(),
		Allies:    state.Mode.Allies(color, holder),
		Opponents: state.Mode.Opponents(color, holder),
		Recent:    state.Recent,
		Placed:    state.Placed,
	}
	return SelectMove(rng, moves, ctx)
}
