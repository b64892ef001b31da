// Package ai scores legal moves under tiered heuristics and picks one.
//
// All scoring is pure: candidates are evaluated independently against
// hypothetical board copies, and every random decision flows through an
// injected *rand.Rand so runs are reproducible under a fixed seed.
package ai

import (
	"math"
	"math/rand"
	"sort"

	"github.com/brensch/corners/game"
)

// Tier is a difficulty level.
type Tier int

const (
	Novice Tier = iota
	Balanced
	Advanced
)

func (t Tier) String() string {
	switch t {
	case Novice:
		return "novice"
	case Balanced:
		return "balanced"
	case Advanced:
		return "advanced"
	}
	return "unknown"
}

// game phase buckets
const (
	phaseEarly = iota
	phaseMid
	phaseLate
)

// Context carries everything the evaluator needs beyond the candidate list.
// Allies includes the moving color itself; Opponents is the complement.
type Context struct {
	Board     *game.Board
	Color     game.Color
	Tier      Tier
	FirstMove bool
	Parties   int
	Allies    []game.Color
	Opponents []game.Color
	// Recent holds the most recently placed piece ids per color, newest
	// first, used by the anti-repetition term.
	Recent [4][]int
	// Placed is the total number of pieces placed across all colors,
	// which determines the game phase.
	Placed int
}

// SelectMove scores every candidate under the context's tier, sorts
// descending, and picks uniformly at random among the top K of the sorted
// list. K is 40% of the list (floor 1) for novice, min(5, N) for balanced
// and min(3, N) for advanced. Returns nil iff moves is empty.
func SelectMove(rng *rand.Rand, moves []game.Move, ctx Context) *game.Move {
	if len(moves) == 0 {
		return nil
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(moves))
	for i := range moves {
		ranked[i] = scored{idx: i, score: scoreMove(rng, moves[i], ctx)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var k int
	switch ctx.Tier {
	case Novice:
		k = len(moves) * 40 / 100
		if k < 1 {
			k = 1
		}
	case Balanced:
		k = minInt(5, len(moves))
	default:
		k = minInt(3, len(moves))
	}

	pick := ranked[rng.Intn(k)].idx
	m := moves[pick]
	return &m
}

// phase buckets total placements into early/mid/late per tier.
func phase(tier Tier, placed int) int {
	switch tier {
	case Balanced:
		if placed < 20 {
			return phaseEarly
		}
		return phaseMid
	case Advanced:
		switch {
		case placed < 16:
			return phaseEarly
		case placed < 48:
			return phaseMid
		default:
			return phaseLate
		}
	default:
		// Novice plays the same way all game.
		return phaseMid
	}
}

func scoreMove(rng *rand.Rand, m game.Move, ctx Context) float64 {
	ph := phase(ctx.Tier, ctx.Placed)

	var score float64
	switch ctx.Tier {
	case Novice:
		score += 2.0 * float64(m.Cells)
		score += centerBonus(m, 20)
		score += rng.Float64() * 2.0

	case Balanced:
		if ph == phaseEarly {
			score += 3.0 * float64(m.Cells)
		} else {
			score += 1.0 * float64(m.Cells)
		}
		score += centerBonus(m, 20)
		if touchesBoardEdge(m) {
			score -= 4.0
		}

		after := applyHypothetical(ctx.Board, m, ctx.Color)
		score += 1.0 * float64(cornerConnectivity(after, m, ctx))
		score += 0.8 * float64(territory(after, ctx))
		score += varietyBonus(m, ctx)
		score += rng.Float64() * 1.0

	default: // Advanced
		switch ph {
		case phaseEarly:
			score += 4.0 * float64(m.Cells)
		case phaseMid:
			score += 2.0 * float64(m.Cells)
		default:
			score += 3.0 * float64(6-m.Cells)
		}

		radius := 25.0
		if ph == phaseLate {
			radius = 12.0
		}
		score += centerBonus(m, radius)

		after := applyHypothetical(ctx.Board, m, ctx.Color)
		score += 1.5 * float64(cornerConnectivity(after, m, ctx))
		score += 0.8 * float64(territory(after, ctx))

		blockWeight := 2.0
		if ctx.Parties == 3 {
			blockWeight = 3.0
		}
		score += blockWeight * float64(blockingValue(after, m, ctx))

		if ph == phaseLate {
			score += 1.0 * float64(allyContact(after, m, ctx))
		}
		if ctx.Parties == 2 {
			score += synergy(after, ctx)
		}
		score += varietyBonus(m, ctx)
		score += rng.Float64() * 0.5
	}

	return score
}

// centerBonus rewards moves whose filled-cell centroid sits near the board
// center, decaying linearly to zero at the given radius.
func centerBonus(m game.Move, radius float64) float64 {
	var sr, sc, n float64
	m.CellsOn(func(row, col int) {
		sr += float64(row)
		sc += float64(col)
		n++
	})
	if n == 0 {
		return 0
	}
	d := math.Hypot(sr/n-10, sc/n-10)
	if d >= radius {
		return 0
	}
	return (radius - d) * 0.5
}

// touchesBoardEdge reports whether the move's bounding box comes within one
// cell of the board boundary.
func touchesBoardEdge(m game.Move) bool {
	return m.Row <= 1 || m.Col <= 1 ||
		m.Row+m.Height >= game.BoardSize-1 || m.Col+m.Width >= game.BoardSize-1
}

// applyHypothetical returns a board copy with the move's cells written.
// Board is an array type, so the copy is a plain assignment.
func applyHypothetical(board *game.Board, m game.Move, color game.Color) *game.Board {
	after := *board
	m.CellsOn(func(row, col int) {
		after[row][col] = int8(color)
	})
	return &after
}

var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// cornerConnectivity counts diagonal neighbors of the move's cells that are
// empty or hold an ally color other than the moving color: a proxy for
// future placement flexibility.
func cornerConnectivity(after *game.Board, m game.Move, ctx Context) int {
	count := 0
	m.CellsOn(func(row, col int) {
		for _, d := range diagonals {
			nr, nc := row+d[0], col+d[1]
			if !game.InBounds(nr, nc) {
				continue
			}
			v := after[nr][nc]
			if v == game.Empty {
				count++
				continue
			}
			for _, a := range ctx.Allies {
				if a != ctx.Color && v == int8(a) {
					count++
					break
				}
			}
		}
	})
	return count
}

// territory counts empty cells diagonally adjacent to any ally-colored cell
// on the whole board, deduplicated by cell. A one-step diagonal reach, not
// a flood fill.
func territory(after *game.Board, ctx Context) int {
	allied := alliedSet(ctx)
	count := 0
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if after[r][c] != game.Empty {
				continue
			}
			for _, d := range diagonals {
				nr, nc := r+d[0], c+d[1]
				if game.InBounds(nr, nc) && after[nr][nc] >= 0 && allied[after[nr][nc]] {
					count++
					break
				}
			}
		}
	}
	return count
}

// blockingValue counts the move's newly occupied cells that sit diagonally
// adjacent to an opponent-colored cell, denying that opponent expansion
// room.
func blockingValue(after *game.Board, m game.Move, ctx Context) int {
	opposed := make(map[int8]bool, len(ctx.Opponents))
	for _, o := range ctx.Opponents {
		opposed[int8(o)] = true
	}
	count := 0
	m.CellsOn(func(row, col int) {
		for _, d := range diagonals {
			nr, nc := row+d[0], col+d[1]
			if game.InBounds(nr, nc) && after[nr][nc] >= 0 && opposed[after[nr][nc]] {
				count++
				break
			}
		}
	})
	return count
}

// allyContact counts the move's cells' diagonal neighbors occupied by an
// ally color, an anti-isolation term for the late game.
func allyContact(after *game.Board, m game.Move, ctx Context) int {
	allied := alliedSet(ctx)
	count := 0
	m.CellsOn(func(row, col int) {
		for _, d := range diagonals {
			nr, nc := row+d[0], col+d[1]
			if game.InBounds(nr, nc) && after[nr][nc] >= 0 && allied[after[nr][nc]] {
				count++
			}
		}
	})
	return count
}

// synergy rewards ally colors building toward each other in 2-party mode:
// for every cell of the moving party's first color, nearby cells of its
// second color within a 7x7 window add a bonus decaying with Manhattan
// distance.
func synergy(after *game.Board, ctx Context) float64 {
	if len(ctx.Allies) < 2 {
		return 0
	}
	a, b := int8(ctx.Allies[0]), int8(ctx.Allies[1])

	var total float64
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			if after[r][c] != a {
				continue
			}
			for dr := -3; dr <= 3; dr++ {
				for dc := -3; dc <= 3; dc++ {
					nr, nc := r+dr, c+dc
					if !game.InBounds(nr, nc) || after[nr][nc] != b {
						continue
					}
					dist := abs(dr) + abs(dc)
					if dist < 7 {
						total += float64(7-dist) * 0.05
					}
				}
			}
		}
	}
	return total
}

// varietyBonus discourages mirroring opponents' piece choices: a small
// bonus, scaled by color id, cut down when any opponent's three most recent
// pieces include this candidate's piece.
func varietyBonus(m game.Move, ctx Context) float64 {
	bonus := 0.3 * float64(ctx.Color+1)
	for _, o := range ctx.Opponents {
		recent := ctx.Recent[o]
		if len(recent) > 3 {
			recent = recent[:3]
		}
		for _, id := range recent {
			if id == m.Piece {
				return bonus * 0.25
			}
		}
	}
	return bonus
}

func alliedSet(ctx Context) map[int8]bool {
	allied := make(map[int8]bool, len(ctx.Allies))
	for _, a := range ctx.Allies {
		allied[int8(a)] = true
	}
	return allied
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
