package main

import (
	"fmt"

	"github.com/brensch/corners/game"
	"github.com/brensch/corners/pieces"
)

// resolveMove turns a wire move request into an engine move by looking up
// the catalog piece and the variant matching the requested rotation/mirror
// tags. Symmetric pieces drop duplicate variants, so not every tag pair
// exists for every piece.
func resolveMove(req MoveRequest) (game.Move, error) {
	p := pieces.ByID(req.Piece)
	if p == nil {
		return game.Move{}, fmt.Errorf("unknown piece id %d", req.Piece)
	}

	for _, v := range pieces.VariantsFor(p.ID) {
		if v.Rotation != req.Rotation || v.Mirrored != req.Mirrored {
			continue
		}
		return game.Move{
			Piece:    p.ID,
			Shape:    v.Shape,
			Rotation: v.Rotation,
			Mirrored: v.Mirrored,
			Row:      req.Row,
			Col:      req.Col,
			Height:   v.Shape.Height(),
			Width:    v.Shape.Width(),
			Cells:    p.Cells,
		}, nil
	}
	return game.Move{}, fmt.Errorf("piece %q has no variant rotation=%d mirrored=%v",
		p.Name, req.Rotation, req.Mirrored)
}
