// Package pieces holds the static piece catalog for the corners game and
// derives the oriented variants of each canonical shape.
//
// The catalog is pure data: 21 shapes of 1 to 5 cells each, plus the fixed
// starting corner assigned to each color. Nothing here touches board state.
package pieces

// Shape is a rectangular 0/1 matrix. A 1 marks a filled cell.
type Shape [][]int

// Piece is one catalog entry. Pieces are shared and never mutated.
type Piece struct {
	ID    int
	Name  string
	Cells int
	Shape Shape
}

// Count is the number of pieces in the catalog.
const Count = 21

// Catalog lists all 21 pieces in ascending cell-count order.
// IDs are stable and equal to the slice index.
var Catalog = []Piece{
	{0, "one", 1, Shape{{1}}},
	{1, "two", 2, Shape{{1, 1}}},
	{2, "three-i", 3, Shape{{1, 1, 1}}},
	{3, "three-v", 3, Shape{{1, 0}, {1, 1}}},
	{4, "four-i", 4, Shape{{1, 1, 1, 1}}},
	{5, "four-l", 4, Shape{{1, 0}, {1, 0}, {1, 1}}},
	{6, "four-t", 4, Shape{{1, 1, 1}, {0, 1, 0}}},
	{7, "four-s", 4, Shape{{0, 1, 1}, {1, 1, 0}}},
	{8, "four-o", 4, Shape{{1, 1}, {1, 1}}},
	{9, "five-f", 5, Shape{{0, 1, 1}, {1, 1, 0}, {0, 1, 0}}},
	{10, "five-i", 5, Shape{{1, 1, 1, 1, 1}}},
	{11, "five-l", 5, Shape{{1, 0}, {1, 0}, {1, 0}, {1, 1}}},
	{12, "five-n", 5, Shape{{0, 1}, {0, 1}, {1, 1}, {1, 0}}},
	{13, "five-p", 5, Shape{{1, 1}, {1, 1}, {1, 0}}},
	{14, "five-t", 5, Shape{{1, 1, 1}, {0, 1, 0}, {0, 1, 0}}},
	{15, "five-u", 5, Shape{{1, 0, 1}, {1, 1, 1}}},
	{16, "five-v", 5, Shape{{1, 0, 0}, {1, 0, 0}, {1, 1, 1}}},
	{17, "five-w", 5, Shape{{1, 0, 0}, {1, 1, 0}, {0, 1, 1}}},
	{18, "five-x", 5, Shape{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}}},
	{19, "five-y", 5, Shape{{0, 1}, {1, 1}, {0, 1}, {0, 1}}},
	{20, "five-z", 5, Shape{{1, 1, 0}, {0, 1, 0}, {0, 1, 1}}},
}

// Corner is a board coordinate.
type Corner struct {
	Row int
	Col int
}

// StartingCorners maps color index 0-3 to its assigned board corner.
// First moves must cover the color's corner cell.
var StartingCorners = [4]Corner{
	{0, 0},
	{0, 19},
	{19, 19},
	{19, 0},
}

// ByID returns the catalog entry for the given piece id, or nil if the id is
// outside the catalog.
func ByID(id int) *Piece {
	if id < 0 || id >= len(Catalog) {
		return nil
	}
	return &Catalog[id]
}

// Height returns the number of rows in the shape.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// CellCount returns the number of filled cells in the shape.
func (s Shape) CellCount() int {
	n := 0
	for _, row := range s {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
