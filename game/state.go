// Package game defines the core state types for the corners engine.
//
// These types represent the minimal state needed for rules evaluation and
// move scoring. The state is designed to be efficiently clonable so that
// search and undo can work on immutable snapshots.
package game

import "github.com/brensch/corners/pieces"

// BoardSize is the fixed board dimension.
const BoardSize = 20

// Empty marks an unclaimed board cell.
const Empty int8 = -1

// Color identifies one of the four board-claiming identities, 0 through 3.
type Color int8

// Board is the 20x20 grid. Each cell is Empty or a color id.
// The array has value semantics, so assignment copies the whole grid.
type Board [BoardSize][BoardSize]int8

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Move is a candidate or committed placement. Row/Col anchor the variant's
// bounding-box origin, which may lie outside the board as long as every
// filled cell lands on it.
type Move struct {
	Piece    int
	Shape    pieces.Shape
	Rotation int
	Mirrored bool
	Row      int
	Col      int
	Height   int
	Width    int
	Cells    int
}

// CellsOn calls fn for every board cell the move fills.
func (m Move) CellsOn(fn func(row, col int)) {
	for r := 0; r < m.Height; r++ {
		for c := 0; c < m.Width; c++ {
			if m.Shape[r][c] != 0 {
				fn(m.Row+r, m.Col+c)
			}
		}
	}
}

// recentKept is how many recently placed piece ids are remembered per color.
// The evaluator's anti-repetition term only looks this far back.
const recentKept = 3

// GameState is a complete snapshot of one game.
type GameState struct {
	Board     Board
	Used      [4][]int // piece ids placed, per color
	FirstMove [4]bool  // true until the color's first successful placement
	Recent    [4][]int // most recent piece ids per color, newest first
	Placed    int      // total pieces placed across all colors

	Mode     Mode
	Active   Color
	Holder   int // party controlling the active color
	Neutral  int // party index holding the neutral color next (3-party only)
	Out      [4]bool
	Terminal bool
}

// NewGameState returns the initial state for the given topology.
// Color 0 always moves first.
func NewGameState(mode Mode) *GameState {
	s := &GameState{Mode: mode}
	for r := range s.Board {
		for c := range s.Board[r] {
			s.Board[r][c] = Empty
		}
	}
	for i := range s.FirstMove {
		s.FirstMove[i] = true
	}
	return s
}

// Clone performs a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	out := &GameState{
		Board:    s.Board,
		Placed:   s.Placed,
		Mode:     s.Mode,
		Active:   s.Active,
		Holder:   s.Holder,
		Neutral:  s.Neutral,
		Out:      s.Out,
		Terminal: s.Terminal,
	}
	out.FirstMove = s.FirstMove

	for i := 0; i < 4; i++ {
		if len(s.Used[i]) > 0 {
			out.Used[i] = make([]int, len(s.Used[i]))
			copy(out.Used[i], s.Used[i])
		}
		if len(s.Recent[i]) > 0 {
			out.Recent[i] = make([]int, len(s.Recent[i]))
			copy(out.Recent[i], s.Recent[i])
		}
	}
	return out
}

// HasUsed reports whether the color has already placed the piece id.
func (s *GameState) HasUsed(color Color, piece int) bool {
	for _, id := range s.Used[color] {
		if id == piece {
			return true
		}
	}
	return false
}

// RecordPlacement updates the bookkeeping after a move's cells have been
// written to the board: used set, first-move flag, recent pieces and the
// global placement counter.
func (s *GameState) RecordPlacement(color Color, piece int) {
	s.Used[color] = append(s.Used[color], piece)
	s.FirstMove[color] = false
	s.Recent[color] = append([]int{piece}, s.Recent[color]...)
	if len(s.Recent[color]) > recentKept {
		s.Recent[color] = s.Recent[color][:recentKept]
	}
	s.Placed++
}

// Scores returns the remaining cell count per color: the sum of cell counts
// of pieces not yet placed. Lower is better.
func (s *GameState) Scores() [4]int {
	var out [4]int
	for color := 0; color < 4; color++ {
		used := make(map[int]bool, len(s.Used[color]))
		for _, id := range s.Used[color] {
			used[id] = true
		}
		for _, p := range pieces.Catalog {
			if !used[p.ID] {
				out[color] += p.Cells
			}
		}
	}
	return out
}

// PartyScores folds per-color scores into per-party totals for the state's
// topology. The neutral color in 3-party mode is not owned by any party and
// is excluded.
func (s *GameState) PartyScores() []int {
	colors := s.Scores()
	out := make([]int, s.Mode.Parties())
	for c := Color(0); c < 4; c++ {
		if s.Mode == ThreeParty && c == s.Mode.NeutralColor() {
			continue
		}
		out[s.Mode.PartyOf(c)] += colors[c]
	}
	return out
}
