package rules

import (
	"fmt"

	"github.com/brensch/corners/game"
)

// Apply commits a validated move for color and returns the resulting state.
// The input state is never mutated. The returned error wraps the validation
// reason when the move is illegal.
func Apply(state *game.GameState, color game.Color, move game.Move) (*game.GameState, error) {
	if state.HasUsed(color, move.Piece) {
		return nil, fmt.Errorf("piece %d already placed by color %d", move.Piece, color)
	}

	res := Validate(&state.Board, move.Row, move.Col, move.Shape, color, state.FirstMove[color])
	if !res.Valid {
		return nil, fmt.Errorf("illegal placement for color %d: %s", color, res.Reason)
	}

	next := state.Clone()
	move.CellsOn(func(row, col int) {
		next.Board[row][col] = int8(color)
	})
	next.RecordPlacement(color, move.Piece)
	return next, nil
}
