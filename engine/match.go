package engine

import (
	"fmt"
	"time"

	"tttt/game"
	"tttt/searcher"
)

// Match plays one full game between two weight matrices: X opens under
// xWeights, O answers under oWeights, and both sides pick moves through
// the same selector. Play can be called repeatedly; every call starts
// from an empty board.
type Match struct {
	xWeights game.Weights
	oWeights game.Weights
	selector *searcher.Selector
	timeout  time.Duration
	moveCap  int
}

type MatchOption func(m *Match)

// WithMatchSelector replaces the default deterministic selector, e.g.
// with a seeded randomized one.
func WithMatchSelector(sel *searcher.Selector) MatchOption {
	return func(m *Match) {
		if sel != nil {
			m.selector = sel
		}
	}
}

// WithTimeout aborts a game running longer than d. Zero disables the
// guard.
func WithTimeout(d time.Duration) MatchOption {
	return func(m *Match) {
		m.timeout = d
	}
}

// WithMoveCap fails a game still undecided after n moves. The board
// bounds play at 64 moves anyway, so the default cap never fires; lower
// caps cut runaway experiments short. Zero disables the guard.
func WithMoveCap(n int) MatchOption {
	return func(m *Match) {
		m.moveCap = n
	}
}

func NewMatch(xWeights, oWeights game.Weights, options ...MatchOption) *Match {
	m := &Match{
		xWeights: xWeights,
		oWeights: oWeights,
		selector: searcher.New(),
		moveCap:  game.Positions,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// MatchResult is the outcome of one played game. Winner is Nobody when
// the board filled without a line.
type MatchResult struct {
	Winner   game.Player
	Moves    int
	Duration time.Duration
	Final    game.Board
}

// Play runs the game loop until a line completes or the board fills.
func (m *Match) Play() (MatchResult, error) {
	start := time.Now()
	var board game.Board
	side := game.Human // X opens
	moves := 0

	for {
		if m.timeout > 0 && time.Since(start) > m.timeout {
			return MatchResult{}, fmt.Errorf("game ran past %s after %d moves", m.timeout, moves)
		}
		if board.Full() {
			return MatchResult{
				Winner:   game.Nobody,
				Moves:    moves,
				Duration: time.Since(start),
				Final:    board,
			}, nil
		}
		if m.moveCap > 0 && moves >= m.moveCap {
			return MatchResult{}, fmt.Errorf("game undecided after %d moves", moves)
		}

		weights := m.xWeights
		if side == game.Machine {
			weights = m.oWeights
		}
		cell, ok := m.selector.Pick(board, weights, side)
		if !ok {
			return MatchResult{}, fmt.Errorf("no move available for %s after %d moves", side, moves)
		}
		board[cell] = side
		moves++

		if win, found := game.DetectWin(board); found {
			return MatchResult{
				Winner:   win.Winner,
				Moves:    moves,
				Duration: time.Since(start),
				Final:    board,
			}, nil
		}
		side = side.Opponent()
	}
}
