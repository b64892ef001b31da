package ai

import (
	"math/rand"
	"testing"

	"github.com/brensch/corners/game"
	"github.com/brensch/corners/pieces"
	"github.com/brensch/corners/rules"
)

func firstMoveCandidates(t *testing.T, n int) ([]game.Move, *game.Board) {
	t.Helper()
	state := game.NewGameState(game.FourParty)
	moves := rules.GenerateAllMoves(&state.Board, 0, nil, true)
	if len(moves) < n {
		t.Fatalf("only %d first moves available, want at least %d", len(moves), n)
	}
	return moves[:n], &state.Board
}

// sameMove compares the identifying fields of two moves. Move carries its
// shape matrix, so the struct itself is not comparable.
func sameMove(a, b game.Move) bool {
	return a.Piece == b.Piece && a.Rotation == b.Rotation && a.Mirrored == b.Mirrored &&
		a.Row == b.Row && a.Col == b.Col
}

func advancedContext(board *game.Board) Context {
	return Context{
		Board:     board,
		Color:     0,
		Tier:      Advanced,
		FirstMove: true,
		Parties:   4,
		Allies:    []game.Color{0},
		Opponents: []game.Color{1, 2, 3},
	}
}

// A fixed seed must reproduce the same selection across runs.
func TestSelectMove_DeterministicUnderFixedSeed(t *testing.T) {
	moves, board := firstMoveCandidates(t, 10)
	ctx := advancedContext(board)

	first := SelectMove(rand.New(rand.NewSource(42)), moves, ctx)
	if first == nil {
		t.Fatal("nil move for non-empty candidate list")
	}
	for i := 0; i < 5; i++ {
		again := SelectMove(rand.New(rand.NewSource(42)), moves, ctx)
		if again == nil || !sameMove(*again, *first) {
			t.Fatalf("run %d chose a different move", i)
		}
	}
}

func TestSelectMove_NilOnEmptyList(t *testing.T) {
	_, board := firstMoveCandidates(t, 1)
	for _, tier := range []Tier{Novice, Balanced, Advanced} {
		ctx := advancedContext(board)
		ctx.Tier = tier
		if got := SelectMove(rand.New(rand.NewSource(1)), nil, ctx); got != nil {
			t.Fatalf("%s: expected nil for empty list", tier)
		}
	}
}

func TestSelectMove_ReturnsMemberOfList(t *testing.T) {
	moves, board := firstMoveCandidates(t, 25)
	for _, tier := range []Tier{Novice, Balanced, Advanced} {
		ctx := advancedContext(board)
		ctx.Tier = tier
		got := SelectMove(rand.New(rand.NewSource(7)), moves, ctx)
		if got == nil {
			t.Fatalf("%s: nil move", tier)
		}
		found := false
		for _, m := range moves {
			if sameMove(m, *got) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%s: selected move not in candidate list", tier)
		}
	}
}

func TestSelectMove_SingleCandidate(t *testing.T) {
	moves, board := firstMoveCandidates(t, 1)
	ctx := advancedContext(board)
	got := SelectMove(rand.New(rand.NewSource(3)), moves, ctx)
	if got == nil || !sameMove(*got, moves[0]) {
		t.Fatal("single candidate must always be chosen")
	}
}

func TestPhaseBuckets(t *testing.T) {
	cases := []struct {
		tier   Tier
		placed int
		want   int
	}{
		{Novice, 0, phaseMid},
		{Novice, 80, phaseMid},
		{Balanced, 19, phaseEarly},
		{Balanced, 20, phaseMid},
		{Advanced, 15, phaseEarly},
		{Advanced, 16, phaseMid},
		{Advanced, 47, phaseMid},
		{Advanced, 48, phaseLate},
	}
	for _, tc := range cases {
		if got := phase(tc.tier, tc.placed); got != tc.want {
			t.Errorf("phase(%s, %d)=%d want=%d", tc.tier, tc.placed, got, tc.want)
		}
	}
}

func TestVarietyBonus_PenalizesMirroring(t *testing.T) {
	_, board := firstMoveCandidates(t, 1)
	ctx := advancedContext(board)
	ctx.Recent[1] = []int{4, 9, 12}

	m := game.Move{Piece: 9, Cells: 5}
	fresh := game.Move{Piece: 2, Cells: 3}

	repeated := varietyBonus(m, ctx)
	novel := varietyBonus(fresh, ctx)
	if repeated >= novel {
		t.Fatalf("repeated piece bonus %.2f should be below novel %.2f", repeated, novel)
	}
}

func TestChooseMove_ProducesApplicableMove(t *testing.T) {
	state := game.NewGameState(game.TwoParty)
	rng := rand.New(rand.NewSource(11))

	move := ChooseMove(rng, state, 0, Advanced, 0)
	if move == nil {
		t.Fatal("no move on an empty board")
	}
	if _, err := rules.Apply(state, 0, *move); err != nil {
		t.Fatalf("chosen move does not apply: %v", err)
	}
}

func monoMove(row, col int) game.Move {
	return game.Move{
		Piece: 0, Shape: pieces.Catalog[0].Shape,
		Row: row, Col: col, Height: 1, Width: 1, Cells: 1,
	}
}

func TestBlockingValue_CountsDeniedOpponentDiagonals(t *testing.T) {
	state := game.NewGameState(game.FourParty)
	state.Board[5][5] = 1
	ctx := advancedContext(&state.Board)

	m := monoMove(4, 4)
	after := applyHypothetical(&state.Board, m, 0)
	if got := blockingValue(after, m, ctx); got != 1 {
		t.Fatalf("diagonal deny count=%d want=1", got)
	}

	far := monoMove(12, 12)
	after = applyHypothetical(&state.Board, far, 0)
	if got := blockingValue(after, far, ctx); got != 0 {
		t.Fatalf("distant move deny count=%d want=0", got)
	}
}

func TestAllyContact_CountsAdjacentAllyCells(t *testing.T) {
	state := game.NewGameState(game.TwoParty)
	state.Board[4][4] = 2
	state.Board[4][6] = 1
	ctx := advancedContext(&state.Board)
	ctx.Parties = 2
	ctx.Allies = []game.Color{0, 2}
	ctx.Opponents = []game.Color{1, 3}

	// (5,5) touches the ally at (4,4) diagonally; the opponent at (4,6)
	// also sits diagonal but must not count.
	m := monoMove(5, 5)
	after := applyHypothetical(&state.Board, m, 0)
	if got := allyContact(after, m, ctx); got != 1 {
		t.Fatalf("ally contact=%d want=1", got)
	}

	lone := monoMove(15, 15)
	after = applyHypothetical(&state.Board, lone, 0)
	if got := allyContact(after, lone, ctx); got != 0 {
		t.Fatalf("isolated move contact=%d want=0", got)
	}
}

func TestSynergy_RewardsNearbyPartnerColor(t *testing.T) {
	state := game.NewGameState(game.TwoParty)
	ctx := advancedContext(&state.Board)
	ctx.Parties = 2
	ctx.Allies = []game.Color{0, 2}
	ctx.Opponents = []game.Color{1, 3}

	near := state.Board
	near[5][5] = 0
	near[6][6] = 2

	far := state.Board
	far[5][5] = 0
	far[15][15] = 2

	nearScore := synergy(&near, ctx)
	if nearScore <= 0 {
		t.Fatalf("adjacent partner colors scored %.3f want > 0", nearScore)
	}
	if farScore := synergy(&far, ctx); farScore != 0 {
		t.Fatalf("partner outside the window scored %.3f want 0", farScore)
	}
}

// Two interior/edge moves at the same distance from center differ only by
// the edge penalty, so with identical jitter draws the edge move must score
// lower under the balanced tier.
func TestBalancedTier_PenalizesBoardEdge(t *testing.T) {
	state := game.NewGameState(game.FourParty)
	ctx := advancedContext(&state.Board)
	ctx.Tier = Balanced

	interior := monoMove(2, 10)
	edge := monoMove(18, 10)
	if touchesBoardEdge(interior) {
		t.Fatal("(2,10) should not count as edge-adjacent")
	}
	if !touchesBoardEdge(edge) {
		t.Fatal("(18,10) should count as edge-adjacent")
	}

	a := scoreMove(rand.New(rand.NewSource(5)), interior, ctx)
	b := scoreMove(rand.New(rand.NewSource(5)), edge, ctx)
	if a <= b {
		t.Fatalf("edge move scored %.2f, interior %.2f; edge should be lower", b, a)
	}
}

func TestChooseMove_NilWhenNoPiecesLeft(t *testing.T) {
	state := game.NewGameState(game.FourParty)
	for id := 0; id < pieces.Count; id++ {
		state.Used[0] = append(state.Used[0], id)
	}
	if move := ChooseMove(rand.New(rand.NewSource(2)), state, 0, Novice, 0); move != nil {
		t.Fatal("expected nil when the color has no pieces")
	}
}
