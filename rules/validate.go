// Package rules implements the legality protocol for the corners game:
// placement validation, full move enumeration, and turn advancement.
//
// Every function here is pure. Board and state inputs are never mutated;
// Apply returns a fresh snapshot instead.
package rules

import (
	"github.com/brensch/corners/game"
	"github.com/brensch/corners/pieces"
)

// Reason classifies why a placement is invalid.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonOverlap
	ReasonMissingCornerTouch
	ReasonEdgeAdjacency
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOutOfBounds:
		return "out of bounds"
	case ReasonOverlap:
		return "overlap"
	case ReasonMissingCornerTouch:
		return "missing corner touch"
	case ReasonEdgeAdjacency:
		return "edge adjacency"
	}
	return "unknown"
}

// Result is the outcome of Validate. Success carries no payload.
type Result struct {
	Valid  bool
	Reason Reason
}

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
var orthogonals = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Validate decides whether placing shape with its bounding-box origin at
// (row, col) is legal for color. Checks run in a fixed order and
// short-circuit on the first failure:
//
//  1. every filled cell lands on the board
//  2. no filled cell lands on an occupied cell
//  3. first move covers the color's starting corner and skips the rest
//  4. no filled cell touches a same-color cell orthogonally
//  5. the move touches a same-color cell diagonally
func Validate(board *game.Board, row, col int, shape pieces.Shape, color game.Color, firstMove bool) Result {
	h, w := shape.Height(), shape.Width()

	// 1. Bounds
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if shape[r][c] == 0 {
				continue
			}
			if !game.InBounds(row+r, col+c) {
				return Result{Reason: ReasonOutOfBounds}
			}
		}
	}

	// 2. Overlap
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if shape[r][c] == 0 {
				continue
			}
			if board[row+r][col+c] != game.Empty {
				return Result{Reason: ReasonOverlap}
			}
		}
	}

	// 3. Corner contact
	if firstMove {
		corner := pieces.StartingCorners[color]
		covered := false
		for r := 0; r < h && !covered; r++ {
			for c := 0; c < w; c++ {
				if shape[r][c] != 0 && row+r == corner.Row && col+c == corner.Col {
					covered = true
					break
				}
			}
		}
		if !covered {
			return Result{Reason: ReasonMissingCornerTouch}
		}
		return Result{Valid: true}
	}

	// 4. Edge exclusion
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if shape[r][c] == 0 {
				continue
			}
			for _, d := range orthogonals {
				nr, nc := row+r+d[0], col+c+d[1]
				if game.InBounds(nr, nc) && board[nr][nc] == int8(color) {
					return Result{Reason: ReasonEdgeAdjacency}
				}
			}
		}
	}

	// 5. Diagonal contact
	touchesCorner := false
	for r := 0; r < h && !touchesCorner; r++ {
		for c := 0; c < w; c++ {
			if shape[r][c] == 0 {
				continue
			}
			for _, d := range diagonals {
				nr, nc := row+r+d[0], col+c+d[1]
				if game.InBounds(nr, nc) && board[nr][nc] == int8(color) {
					touchesCorner = true
					break
				}
			}
			if touchesCorner {
				break
			}
		}
	}
	if !touchesCorner {
		return Result{Reason: ReasonMissingCornerTouch}
	}

	return Result{Valid: true}
}
