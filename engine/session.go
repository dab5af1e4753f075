package engine

import (
	"fmt"

	"tttt/game"
	"tttt/searcher"
)

// Session is one independent game: a board, the detected winner, the
// weight matrix and the move selector. Sessions are cheap and any
// number can coexist. A session is not safe for concurrent use; callers
// running one across goroutines serialize access themselves.
type Session struct {
	board    game.Board
	winner   game.Player
	winCells [game.WinSize]int
	decided  bool
	weights  game.Weights
	selector *searcher.Selector
}

type Option func(s *Session)

func WithWeights(w game.Weights) Option {
	return func(s *Session) {
		s.weights = w
	}
}

func WithRandomized(randomized bool) Option {
	return func(s *Session) {
		s.selector.SetRandomized(randomized)
	}
}

// WithSelector replaces the default selector, letting callers seed the
// tie-break for reproducible games.
func WithSelector(sel *searcher.Selector) Option {
	return func(s *Session) {
		if sel != nil {
			s.selector = sel
		}
	}
}

func NewSession(options ...Option) *Session {
	s := &Session{
		weights:  game.DefaultWeights(),
		selector: searcher.New(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Reset clears the board and winner and restores the default weights.
// The randomized flag keeps its value.
func (s *Session) Reset() {
	s.board = game.Board{}
	s.winner = game.Nobody
	s.winCells = [game.WinSize]int{}
	s.decided = false
	s.weights = game.DefaultWeights()
}

func (s *Session) Board() game.Board {
	return s.board
}

func (s *Session) BoardString() string {
	return s.board.String()
}

// SetBoardString replaces the board wholesale. No legality or winner
// check runs; call RefreshWinner afterwards to bring the winner state in
// line with the new position.
func (s *Session) SetBoardString(rep string) error {
	b, err := game.ParseBoard(rep)
	if err != nil {
		return err
	}
	s.board = b
	return nil
}

// RefreshWinner re-runs win detection against the current board.
func (s *Session) RefreshWinner() {
	s.detect()
}

// HumanMove places the human piece on the cell.
func (s *Session) HumanMove(cell int) error {
	if cell < 0 || cell >= game.Positions {
		return fmt.Errorf("%w: cell %d", ErrOutOfRange, cell)
	}
	if s.decided {
		return fmt.Errorf("%w: game already decided", ErrInvalidMove)
	}
	if s.board[cell] != game.Nobody {
		return fmt.Errorf("%w: cell %d is occupied", ErrInvalidMove, cell)
	}
	s.board[cell] = game.Human
	s.detect()
	return nil
}

// MachineMove lets the selector choose and commit the machine's move,
// returning the chosen cell.
func (s *Session) MachineMove() (int, error) {
	if s.decided {
		return -1, fmt.Errorf("%w: game already decided", ErrInvalidMove)
	}
	cell, ok := s.selector.Pick(s.board, s.weights, game.Machine)
	if !ok {
		return -1, fmt.Errorf("%w: board is full", ErrInvalidMove)
	}
	s.board[cell] = game.Machine
	s.detect()
	return cell, nil
}

// Undo clears the cell and re-runs win detection, so taking back the
// winning move puts the game back in progress.
func (s *Session) Undo(cell int) error {
	if cell < 0 || cell >= game.Positions {
		return fmt.Errorf("%w: cell %d", ErrOutOfRange, cell)
	}
	if s.board[cell] == game.Nobody {
		return fmt.Errorf("%w: cell %d is empty", ErrInvalidMove, cell)
	}
	s.board[cell] = game.Nobody
	s.detect()
	return nil
}

func (s *Session) Winner() game.Player {
	return s.winner
}

// WinningLine returns the four cells of the winning line, ascending.
// ok is false while the game is undecided.
func (s *Session) WinningLine() ([]int, bool) {
	if !s.decided {
		return nil, false
	}
	cells := make([]int, game.WinSize)
	for i, c := range s.winCells {
		cells[i] = c
	}
	return cells, true
}

// WinnerBoardString renders the board with the winning line's cells
// replaced by '*'. Undecided games render plainly.
func (s *Session) WinnerBoardString() string {
	rep := []byte(s.board.String())
	if s.decided {
		for _, cell := range s.winCells {
			rep[cell] = '*'
		}
	}
	return string(rep)
}

// EvaluateBoard scores an arbitrary board string under the session's
// weights without touching the session state.
func (s *Session) EvaluateBoard(rep string) (int, error) {
	b, err := game.ParseBoard(rep)
	if err != nil {
		return 0, err
	}
	return game.Score(b, s.weights), nil
}

// BestMove reports where the player should move without committing
// anything. The query is deterministic regardless of the randomized
// flag.
func (s *Session) BestMove(p game.Player) (int, error) {
	if p != game.Human && p != game.Machine {
		return -1, fmt.Errorf("%w: no such player", ErrInvalidMove)
	}
	cell, ok := searcher.BestMove(s.board, s.weights, p)
	if !ok {
		return -1, fmt.Errorf("%w: board is full", ErrInvalidMove)
	}
	return cell, nil
}

func (s *Session) SetWeights(w game.Weights) {
	s.weights = w
}

func (s *Session) Weights() game.Weights {
	return s.weights
}

func (s *Session) SetRandomized(randomized bool) {
	s.selector.SetRandomized(randomized)
}

func (s *Session) Randomized() bool {
	return s.selector.Randomized()
}

func (s *Session) detect() {
	win, found := game.DetectWin(s.board)
	if !found {
		s.winner = game.Nobody
		s.winCells = [game.WinSize]int{}
		s.decided = false
		return
	}
	s.winner = win.Winner
	s.winCells = win.Cells
	s.decided = true
}
