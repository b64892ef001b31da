// Package main implements the corners game server.
//
// The server hosts games over a small JSON API: create a game with a party
// topology and per-party difficulty tiers, submit validated human moves,
// trigger the AI for the active color, undo, and spectate live over a
// websocket.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/brensch/corners/ai"
	"github.com/brensch/corners/game"
	"github.com/brensch/corners/rules"
)

// Session is one hosted game.
type Session struct {
	ID string

	mu      sync.Mutex
	state   *game.GameState
	history game.History
	tiers   []ai.Tier // indexed by party
	human   []bool    // indexed by party
	rng     *rand.Rand
	hub     *Hub
}

// Registry holds the in-memory session table.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	nextID   int
	seed     int64
}

func NewRegistry(seed int64) *Registry {
	return &Registry{sessions: make(map[string]*Session), seed: seed}
}

func (r *Registry) Create(mode game.Mode, tiers []ai.Tier, human []bool) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := fmt.Sprintf("g%06d", r.nextID)

	seed := r.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		ID:    id,
		state: game.NewGameState(mode),
		tiers: tiers,
		human: human,
		rng:   rand.New(rand.NewSource(seed + int64(r.nextID))),
		hub:   NewHub(),
	}
	r.sessions[id] = s
	return s
}

func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

// API types

type CreateRequest struct {
	Mode  string   `json:"mode"` // two-party, three-party, four-party
	Tiers []string `json:"tiers"`
	Human []bool   `json:"human,omitempty"`
}

type MoveRequest struct {
	Color    int  `json:"color"`
	Piece    int  `json:"piece"`
	Rotation int  `json:"rotation"`
	Mirrored bool `json:"mirrored"`
	Row      int  `json:"row"`
	Col      int  `json:"col"`
}

type StatePayload struct {
	ID          string   `json:"id"`
	Mode        string   `json:"mode"`
	Board       [][]int  `json:"board"`
	Active      int      `json:"active"`
	Holder      int      `json:"holder"`
	Out         [4]bool  `json:"out"`
	Terminal    bool     `json:"terminal"`
	FirstMove   [4]bool  `json:"first_move"`
	Scores      [4]int   `json:"scores"`
	PartyScores []int    `json:"party_scores"`
	Placed      int      `json:"placed"`
	Used        [4][]int `json:"used"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func (s *Session) payload() StatePayload {
	board := make([][]int, game.BoardSize)
	for r := 0; r < game.BoardSize; r++ {
		board[r] = make([]int, game.BoardSize)
		for c := 0; c < game.BoardSize; c++ {
			board[r][c] = int(s.state.Board[r][c])
		}
	}
	return StatePayload{
		ID:          s.ID,
		Mode:        s.state.Mode.String(),
		Board:       board,
		Active:      int(s.state.Active),
		Holder:      s.state.Holder,
		Out:         s.state.Out,
		Terminal:    s.state.Terminal,
		FirstMove:   s.state.FirstMove,
		Scores:      s.state.Scores(),
		PartyScores: s.state.PartyScores(),
		Placed:      s.state.Placed,
		Used:        s.state.Used,
	}
}

// advance runs the turn resolver and folds the result into the live state.
// Callers hold s.mu.
func (s *Session) advance() {
	res := rules.AdvanceTurn(s.state.Active, &s.state.Board, s.state.Used,
		s.state.FirstMove, s.state.Out, s.state.Mode, s.state.Neutral)
	s.state.Active = res.Next
	s.state.Out = res.Out
	s.state.Neutral = res.Neutral
	s.state.Terminal = res.Terminal
	if res.PlayedBy >= 0 {
		s.state.Holder = res.PlayedBy
	}
}

// broadcast pushes the current snapshot to spectators. Callers hold s.mu.
func (s *Session) broadcast() {
	payload, err := json.Marshal(s.payload())
	if err != nil {
		log.Printf("marshal broadcast: %v", err)
		return
	}
	s.hub.Broadcast(payload)
}

// Server routes requests to sessions.
type Server struct {
	registry *Registry
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseMode(s string) (game.Mode, error) {
	switch s {
	case "two-party":
		return game.TwoParty, nil
	case "three-party":
		return game.ThreeParty, nil
	case "four-party":
		return game.FourParty, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func parseTier(s string) (ai.Tier, error) {
	switch s {
	case "novice":
		return ai.Novice, nil
	case "balanced":
		return ai.Balanced, nil
	case "advanced":
		return ai.Advanced, nil
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

func (srv *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	mode, err := parseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	parties := mode.Parties()
	if len(req.Tiers) != parties {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("expected %d tiers for %s, got %d", parties, mode, len(req.Tiers)),
		})
		return
	}

	tiers := make([]ai.Tier, parties)
	for i, t := range req.Tiers {
		tier, err := parseTier(t)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		tiers[i] = tier
	}

	human := make([]bool, parties)
	copy(human, req.Human)

	session := srv.registry.Create(mode, tiers, human)
	log.Printf("Game created: %s mode=%s", session.ID, mode)
	writeJSON(w, http.StatusCreated, session.payload())
}

func (srv *Server) session(w http.ResponseWriter, r *http.Request) *Session {
	s := srv.registry.Get(r.PathValue("id"))
	if s == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "game not found"})
	}
	return s
}

func (srv *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s := srv.session(w, r)
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.payload())
}

// handleMove commits a human placement for the active color.
func (srv *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	s := srv.session(w, r)
	if s == nil {
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "game is over"})
		return
	}
	color := game.Color(req.Color)
	if color != s.state.Active {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error: fmt.Sprintf("color %d is not active", req.Color),
		})
		return
	}

	move, err := resolveMove(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snapshot := s.state.Clone()
	next, err := rules.Apply(s.state, color, move)
	if err != nil {
		res := rules.Validate(&s.state.Board, move.Row, move.Col, move.Shape, color, s.state.FirstMove[color])
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  err.Error(),
			Reason: res.Reason.String(),
		})
		return
	}

	s.history.Push(snapshot)
	s.state = next
	s.advance()
	s.broadcast()
	writeJSON(w, http.StatusOK, s.payload())
}

// handleAI runs the evaluator for the active color and commits its choice.
func (srv *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	s := srv.session(w, r)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "game is over"})
		return
	}

	if s.state.Holder >= 0 && s.state.Holder < len(s.human) && s.human[s.state.Holder] {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error: fmt.Sprintf("party %d is human-controlled", s.state.Holder),
		})
		return
	}

	color := s.state.Active
	tier := s.tiers[s.state.Holder]
	move := ai.ChooseMove(s.rng, s.state, color, tier, s.state.Holder)
	if move == nil {
		// No legal move: pass, letting the resolver mark the color out.
		s.advance()
		s.broadcast()
		writeJSON(w, http.StatusOK, s.payload())
		return
	}

	snapshot := s.state.Clone()
	next, err := rules.Apply(s.state, color, *move)
	if err != nil {
		// Generated moves always re-validate; reaching this is a bug.
		log.Printf("ai produced illegal move for %s: %v", s.ID, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	s.history.Push(snapshot)
	s.state = next
	s.advance()
	s.broadcast()
	writeJSON(w, http.StatusOK, s.payload())
}

func (srv *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s := srv.session(w, r)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.history.Pop()
	if snapshot == nil {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "nothing to undo"})
		return
	}
	s.state = snapshot
	s.broadcast()
	writeJSON(w, http.StatusOK, s.payload())
}

func (srv *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s := srv.registry.Get(r.PathValue("id"))
	if s == nil {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	initial, _ := json.Marshal(s.payload())
	s.mu.Unlock()
	s.hub.ServeWS(w, r, initial)
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	listen := fs.String("listen", ":8080", "HTTP listen address")
	seed := fs.Int64("seed", 0, "Base RNG seed for AI selection (0 = time-based)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("flag parse: %v", err)
	}

	srv := &Server{registry: NewRegistry(*seed)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", srv.handleCreate)
	mux.HandleFunc("GET /games/{id}", srv.handleGet)
	mux.HandleFunc("POST /games/{id}/move", srv.handleMove)
	mux.HandleFunc("POST /games/{id}/ai", srv.handleAI)
	mux.HandleFunc("POST /games/{id}/undo", srv.handleUndo)
	mux.HandleFunc("GET /games/{id}/ws", srv.handleWS)

	httpSrv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Corners server listening on http://%s", *listen)
	log.Fatal(httpSrv.ListenAndServe())
}
