package rules

import (
	"sort"

	"github.com/brensch/corners/game"
	"github.com/brensch/corners/pieces"
)

// overhang is how far the anchor scan extends past the board on every side.
// The anchor is a bounding-box origin rather than a filled cell, so a shape
// can hang its origin off-board while all filled cells land on it.
const overhang = 4

// GenerateAllMoves enumerates every legal (piece, variant, anchor) triple
// for the color. An empty result means the color has no legal move right
// now, which is a normal outcome, not an error.
func GenerateAllMoves(board *game.Board, color game.Color, used []int, firstMove bool) []game.Move {
	usedSet := make(map[int]bool, len(used))
	for _, id := range used {
		usedSet[id] = true
	}

	var moves []game.Move
	for _, p := range pieces.Catalog {
		if usedSet[p.ID] {
			continue
		}
		for _, v := range pieces.VariantsFor(p.ID) {
			h, w := v.Shape.Height(), v.Shape.Width()
			for row := -overhang; row < game.BoardSize+overhang; row++ {
				for col := -overhang; col < game.BoardSize+overhang; col++ {
					if !Validate(board, row, col, v.Shape, color, firstMove).Valid {
						continue
					}
					moves = append(moves, game.Move{
						Piece:    p.ID,
						Shape:    v.Shape,
						Rotation: v.Rotation,
						Mirrored: v.Mirrored,
						Row:      row,
						Col:      col,
						Height:   h,
						Width:    w,
						Cells:    p.Cells,
					})
				}
			}
		}
	}
	return moves
}

// HasAnyValidMove reports whether the color has at least one legal
// placement. It is the existence probe behind out-of-game detection, so it
// scans anchors exhaustively: a sampled scan can miss a placement that only
// exists at an odd offset and would wrongly mark the color out for the rest
// of the game. Pieces are tried smallest first since a small piece is the
// most likely to still fit.
func HasAnyValidMove(board *game.Board, color game.Color, used []int, firstMove bool) bool {
	usedSet := make(map[int]bool, len(used))
	for _, id := range used {
		usedSet[id] = true
	}

	order := make([]pieces.Piece, 0, pieces.Count)
	for _, p := range pieces.Catalog {
		if !usedSet[p.ID] {
			order = append(order, p)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Cells < order[j].Cells
	})

	for _, p := range order {
		for _, v := range pieces.VariantsFor(p.ID) {
			for row := -overhang; row < game.BoardSize+overhang; row++ {
				for col := -overhang; col < game.BoardSize+overhang; col++ {
					if Validate(board, row, col, v.Shape, color, firstMove).Valid {
						return true
					}
				}
			}
		}
	}
	return false
}
