package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"tttt/engine"
	"tttt/game"
	"tttt/searcher"
)

// Server exposes game sessions over HTTP and streams state changes
// over websockets. Each game is an independent engine.Session guarded
// by its own lock; the server-level lock only protects the game map.
type Server struct {
	logger   zerolog.Logger
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	games map[string]*gameEntry
}

type gameEntry struct {
	mu      sync.Mutex
	session *engine.Session
	hub     *hub
}

func New(logger zerolog.Logger) *Server {
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			// The service carries no credentials and the state feed is
			// read-only, so cross-origin subscribers are fine.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		games: make(map[string]*gameEntry),
	}
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Post("/games", s.createGame)
	r.Post("/evaluate", s.evaluate)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", s.getState)
		r.Delete("/", s.deleteGame)
		r.Post("/moves/human", s.humanMove)
		r.Post("/moves/machine", s.machineMove)
		r.Post("/undo", s.undo)
		r.Put("/board", s.setBoard)
		r.Post("/winner/refresh", s.refreshWinner)
		r.Put("/weights", s.setWeights)
		r.Put("/randomized", s.setRandomized)
		r.Get("/best-move", s.bestMove)
		r.Get("/ws", s.subscribe)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// GameState is the state document returned by every game endpoint and
// pushed to websocket subscribers after every mutation.
type GameState struct {
	ID           string `json:"id"`
	Board        string `json:"board"`
	Winner       string `json:"winner"`
	WinningCells []int  `json:"winning_cells,omitempty"`
	Randomized   bool   `json:"randomized"`
	Weights      []int  `json:"weights"`
}

func (s *Server) stateOf(id string, entry *gameEntry) GameState {
	state := GameState{
		ID:         id,
		Board:      entry.session.BoardString(),
		Winner:     entry.session.Winner().String(),
		Randomized: entry.session.Randomized(),
		Weights:    entry.session.Weights().Flatten(),
	}
	if cells, ok := entry.session.WinningLine(); ok {
		state.WinningCells = cells
	}
	return state
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine sentinel errors onto HTTP statuses: conflicts
// for rejected moves, bad request for malformed input.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidMove):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrOutOfRange), errors.Is(err, engine.ErrMalformedBoard):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, *gameEntry, bool) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	entry, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown game " + id})
		return "", nil, false
	}
	return id, entry, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

type createGameRequest struct {
	Randomized bool `json:"randomized"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if r.ContentLength > 0 && !decode(w, r, &req) {
		return
	}

	id := uuid.NewString()
	entry := &gameEntry{
		session: engine.NewSession(engine.WithSelector(searcher.New(searcher.WithRandomized(req.Randomized)))),
		hub:     newHub(),
	}
	s.mu.Lock()
	s.games[id] = entry
	s.mu.Unlock()

	s.logger.Info().Str("game", id).Bool("randomized", req.Randomized).Msg("game created")
	writeJSON(w, http.StatusCreated, s.stateOf(id, entry))
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	entry.mu.Lock()
	state := s.stateOf(id, entry)
	entry.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.games, id)
	s.mu.Unlock()
	entry.hub.closeAll()
	s.logger.Info().Str("game", id).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

type cellRequest struct {
	Cell int `json:"cell"`
}

type moveResponse struct {
	Cell  int       `json:"cell"`
	State GameState `json:"state"`
}

// mutate runs fn under the game lock and, on success, broadcasts the
// new state to the game's subscribers.
func (s *Server) mutate(w http.ResponseWriter, id string, entry *gameEntry, fn func() (int, error)) {
	entry.mu.Lock()
	cell, err := fn()
	if err != nil {
		entry.mu.Unlock()
		writeError(w, err)
		return
	}
	state := s.stateOf(id, entry)
	entry.mu.Unlock()

	entry.hub.broadcast(state)
	writeJSON(w, http.StatusOK, moveResponse{Cell: cell, State: state})
}

func (s *Server) humanMove(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req cellRequest
	if !decode(w, r, &req) {
		return
	}
	s.mutate(w, id, entry, func() (int, error) {
		return req.Cell, entry.session.HumanMove(req.Cell)
	})
}

func (s *Server) machineMove(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mutate(w, id, entry, func() (int, error) {
		return entry.session.MachineMove()
	})
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req cellRequest
	if !decode(w, r, &req) {
		return
	}
	s.mutate(w, id, entry, func() (int, error) {
		return req.Cell, entry.session.Undo(req.Cell)
	})
}

type boardRequest struct {
	Board string `json:"board"`
}

func (s *Server) setBoard(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req boardRequest
	if !decode(w, r, &req) {
		return
	}
	s.mutate(w, id, entry, func() (int, error) {
		return -1, entry.session.SetBoardString(req.Board)
	})
}

func (s *Server) refreshWinner(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mutate(w, id, entry, func() (int, error) {
		entry.session.RefreshWinner()
		return -1, nil
	})
}

type weightsRequest struct {
	Weights []int `json:"weights"`
}

func (s *Server) setWeights(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req weightsRequest
	if !decode(w, r, &req) {
		return
	}
	weights, err := game.WeightsFromSlice(req.Weights)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.mutate(w, id, entry, func() (int, error) {
		entry.session.SetWeights(weights)
		return -1, nil
	})
}

type randomizedRequest struct {
	Randomized bool `json:"randomized"`
}

func (s *Server) setRandomized(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req randomizedRequest
	if !decode(w, r, &req) {
		return
	}
	s.mutate(w, id, entry, func() (int, error) {
		entry.session.SetRandomized(req.Randomized)
		return -1, nil
	})
}

type bestMoveResponse struct {
	Player string `json:"player"`
	Cell   int    `json:"cell"`
}

func (s *Server) bestMove(w http.ResponseWriter, r *http.Request) {
	_, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var player game.Player
	switch r.URL.Query().Get("player") {
	case "human":
		player = game.Human
	case "machine", "":
		player = game.Machine
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player must be human or machine"})
		return
	}

	entry.mu.Lock()
	cell, err := entry.session.BestMove(player)
	entry.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bestMoveResponse{Player: player.String(), Cell: cell})
}

type evaluateRequest struct {
	Board   string `json:"board"`
	Weights []int  `json:"weights,omitempty"`
}

type evaluateResponse struct {
	Score int `json:"score"`
}

// evaluate scores a board without any game: the stateless counterpart
// of the per-game endpoints. Weights default to the stock matrix.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decode(w, r, &req) {
		return
	}

	board, err := game.ParseBoard(req.Board)
	if err != nil {
		writeError(w, err)
		return
	}
	weights := game.DefaultWeights()
	if len(req.Weights) > 0 {
		weights, err = game.WeightsFromSlice(req.Weights)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, evaluateResponse{Score: game.Score(board, weights)})
}

// subscribe upgrades to a websocket and streams the game's state after
// every mutation. The current state is sent immediately on connect.
func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.lookup(w, r)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("game", id).Msg("websocket upgrade failed")
		return
	}

	// Snapshot and registration happen under the game lock, so a
	// mutation committing concurrently is either in the snapshot or
	// broadcast to the new subscriber, never lost between the two.
	entry.mu.Lock()
	state := s.stateOf(id, entry)
	err = entry.hub.join(conn, state)
	entry.mu.Unlock()
	if err != nil {
		return
	}
	s.logger.Info().Str("game", id).Msg("subscriber joined")

	// Drain the connection until the client goes away; the feed is
	// one-directional.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				entry.hub.remove(conn)
				return
			}
		}
	}()
}
