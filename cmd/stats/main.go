// Command stats summarizes archived games. Placement-level aggregates come
// from the parquet archive via DuckDB's read_parquet; win rates come from
// the SQLite results database.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/brensch/corners/store"
)

func main() {
	gamesDir := flag.String("games-dir", "data/games", "Directory of parquet game batches")
	dbPath := flag.String("db", "data/results.db", "SQLite results database path")
	flag.Parse()

	glob := filepath.Join(*gamesDir, "*.parquet")

	duck, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Fatalf("Failed to open duckdb: %v", err)
	}
	defer duck.Close()

	fmt.Println("Placements by tier:")
	rows, err := duck.Query(`
		SELECT tier, mode, COUNT(*) AS placements, AVG(cells) AS avg_cells
		FROM read_parquet('` + glob + `')
		GROUP BY tier, mode
		ORDER BY tier, mode`)
	if err != nil {
		log.Fatalf("DuckDB query failed: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier, mode string
		var placements int64
		var avgCells float64
		if err := rows.Scan(&tier, &mode, &placements, &avgCells); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("  %-10s %-12s placements=%-8d avg_cells=%.2f\n", tier, mode, placements, avgCells)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}

	fmt.Println("\nMost played pieces:")
	pieceRows, err := duck.Query(`
		SELECT piece, COUNT(*) AS n
		FROM read_parquet('` + glob + `')
		GROUP BY piece
		ORDER BY n DESC
		LIMIT 5`)
	if err != nil {
		log.Fatalf("DuckDB query failed: %v", err)
	}
	defer pieceRows.Close()

	for pieceRows.Next() {
		var piece, n int64
		if err := pieceRows.Scan(&piece, &n); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("  piece %-3d placed %d times\n", piece, n)
	}
	if err := pieceRows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open results db: %v", err)
	}
	defer db.Close()

	totalGames, avgTurns, err := db.Stats()
	if err != nil {
		log.Fatalf("Results stats failed: %v", err)
	}
	fmt.Printf("\nGames recorded: %d (avg %.1f placements per game)\n", totalGames, avgTurns)

	for _, mode := range []string{"two-party", "three-party", "four-party"} {
		wins, err := db.WinCounts(mode)
		if err != nil {
			log.Fatalf("Win counts failed: %v", err)
		}
		if len(wins) == 0 {
			continue
		}
		parties := make([]int, 0, len(wins))
		for p := range wins {
			parties = append(parties, p)
		}
		sort.Ints(parties)
		fmt.Printf("%s wins:", mode)
		for _, p := range parties {
			fmt.Printf(" party%d=%d", p, wins[p])
		}
		fmt.Println()
	}
}
