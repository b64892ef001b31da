// Command simulate plays corners games between AI tiers and archives the
// results: every placement goes to parquet batches, final standings go to
// the SQLite results database. A TUI shows live throughput; -no-tui falls
// back to plain log output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/corners/ai"
	"github.com/brensch/corners/game"
	"github.com/brensch/corners/rules"
	"github.com/brensch/corners/store"
)

var totalMoves atomic.Int64
var totalGames atomic.Int64
var gameSeq atomic.Int64

// claimGame hands out the next game sequence number, refusing once the bound
// is reached. A claimed number does not count as a played game; totalGames
// only advances after a game completes with placements.
func claimGame(seq *atomic.Int64, maxGames int64) (int64, bool) {
	n := seq.Add(1)
	if maxGames > 0 && n > maxGames {
		return 0, false
	}
	return n, true
}

type GameUpdate struct {
	WorkerID int
	GameID   string
	Mode     game.Mode
	Winner   int
	Turns    int
}

type gameWriteRequest struct {
	rows []store.MoveRow
}

var modes = []game.Mode{game.TwoParty, game.ThreeParty, game.FourParty}

// playGame runs one full AI-vs-AI game and returns its placements and final
// standings. tiers is indexed by party.
func playGame(rng *rand.Rand, gameID string, mode game.Mode, tiers []ai.Tier) ([]store.Placement, store.GameResult, []store.ColorResult) {
	state := game.NewGameState(mode)
	var placements []store.Placement

	for !state.Terminal {
		color := state.Active
		tier := tiers[state.Holder]

		move := ai.ChooseMove(rng, state, color, tier, state.Holder)
		if move != nil {
			next, err := rules.Apply(state, color, *move)
			if err != nil {
				// Generated moves always re-validate; abandon the game if not.
				log.Printf("illegal generated move in %s: %v", gameID, err)
				break
			}
			placements = append(placements, store.Placement{
				Turn:  state.Placed,
				Color: color,
				Party: state.Holder,
				Tier:  tier.String(),
				Move:  *move,
			})
			state = next
			totalMoves.Add(1)
		}

		res := rules.AdvanceTurn(state.Active, &state.Board, state.Used,
			state.FirstMove, state.Out, state.Mode, state.Neutral)
		state.Active = res.Next
		state.Out = res.Out
		state.Neutral = res.Neutral
		state.Terminal = res.Terminal
		if res.PlayedBy >= 0 {
			state.Holder = res.PlayedBy
		}
	}

	partyScores := state.PartyScores()
	winner := 0
	for p, s := range partyScores {
		if s < partyScores[winner] {
			winner = p
		}
	}

	result := store.GameResult{
		ID:          gameID,
		Mode:        mode.String(),
		Turns:       state.Placed,
		WinnerParty: winner,
	}

	colorScores := state.Scores()
	colors := make([]store.ColorResult, 0, 4)
	for c := 0; c < 4; c++ {
		party := mode.PartyOf(game.Color(c))
		tierName := "neutral"
		if party >= 0 {
			tierName = tiers[party].String()
		}
		colors = append(colors, store.ColorResult{
			GameID: gameID,
			Color:  c,
			Party:  party,
			Tier:   tierName,
			Score:  colorScores[c],
		})
	}

	return placements, result, colors
}

// randomTiers draws one tier per party.
func randomTiers(rng *rand.Rand, parties int) []ai.Tier {
	tiers := make([]ai.Tier, parties)
	for i := range tiers {
		tiers[i] = ai.Tier(rng.Intn(3))
	}
	return tiers
}

func main() {
	outDir := flag.String("out-dir", "data/games", "Output directory for parquet game batches")
	dbPath := flag.String("db", "data/results.db", "SQLite results database path")
	workers := flag.Int("workers", 8, "Number of self-play workers")
	gamesPerFlush := flag.Int("games-per-flush", 20, "Number of games to buffer per parquet flush")
	maxGames := flag.Int64("max-games", 0, "If > 0, stop after this many games (across all workers)")
	seed := flag.Int64("seed", 0, "Base RNG seed (0 = time-based); worker i uses seed+i")
	noTUI := flag.Bool("no-tui", false, "Disable the TUI and log stats instead")
	flag.Parse()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open results db: %v", err)
	}
	defer db.Close()

	updates := make(chan GameUpdate, *workers)
	writeReqs := make(chan gameWriteRequest, (*workers)*4)

	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(*outDir, *gamesPerFlush, writeReqs)
		close(writerDone)
	}()

	var workerWG sync.WaitGroup
	for i := 0; i < *workers; i++ {
		workerWG.Add(1)
		go func(workerID int) {
			defer workerWG.Done()
			rng := rand.New(rand.NewSource(baseSeed + int64(workerID)))

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				seq, ok := claimGame(&gameSeq, *maxGames)
				if !ok {
					cancel()
					return
				}

				gameID := fmt.Sprintf("sim_%d_%06d", baseSeed, seq)
				mode := modes[int(seq)%len(modes)]
				tiers := randomTiers(rng, mode.Parties())

				placements, result, colors := playGame(rng, gameID, mode, tiers)
				if len(placements) == 0 {
					log.Printf("Worker %d: game %s produced no placements", workerID, gameID)
					continue
				}
				totalGames.Add(1)

				if err := db.InsertResult(result, colors); err != nil {
					log.Printf("Worker %d: insert result: %v", workerID, err)
				}
				writeReqs <- gameWriteRequest{rows: store.BuildMoveRows(gameID, mode, placements)}

				// Avoid blocking shutdown if the UI loop stops consuming.
				select {
				case updates <- GameUpdate{
					WorkerID: workerID,
					GameID:   gameID,
					Mode:     mode,
					Winner:   result.WinnerParty,
					Turns:    result.Turns,
				}:
				default:
				}
			}
		}(i)
	}

	if *noTUI {
		runLogLoop(ctx, cancel, updates)
	} else {
		p := tea.NewProgram(initialModel(updates), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal(err)
		}
		cancel()
	}

	workerWG.Wait()
	close(writeReqs)
	<-writerDone
	log.Printf("Shutdown complete: final parquet flush done (games=%d)", totalGames.Load())
}

func runLogLoop(ctx context.Context, cancel context.CancelFunc, updates <-chan GameUpdate) {
	startTime := time.Now()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			log.Printf("Worker %d: %s %s winner=party%d turns=%d",
				update.WorkerID, update.GameID, update.Mode, update.Winner, update.Turns)
		case <-ticker.C:
			duration := time.Since(startTime)
			moves := totalMoves.Load()
			log.Printf("Stats: games=%d moves/s=%.2f", totalGames.Load(), float64(moves)/duration.Seconds())
		}
	}
}

func parquetWriterLoop(outDir string, gamesPerFlush int, in <-chan gameWriteRequest) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 20
	}

	pendingRows := make([]store.MoveRow, 0, 128*gamesPerFlush)
	pendingGames := 0

	flush := func() {
		outPath, err := store.WriteBatchParquetAtomic(outDir, pendingRows)
		if err != nil {
			log.Printf("Parquet flush failed (games=%d rows=%d): %v", pendingGames, len(pendingRows), err)
		} else {
			log.Printf("Parquet flush ok: %s (games=%d rows=%d)", outPath, pendingGames, len(pendingRows))
		}
		pendingRows = pendingRows[:0]
		pendingGames = 0
	}

	for req := range in {
		if len(req.rows) == 0 {
			continue
		}
		pendingRows = append(pendingRows, req.rows...)
		pendingGames++

		if pendingGames >= gamesPerFlush {
			flush()
		}
	}

	if pendingGames > 0 && len(pendingRows) > 0 {
		flush()
	}
}
