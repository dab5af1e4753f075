package engine

import (
	"errors"

	"tttt/game"
)

var (
	// ErrInvalidMove covers moves into occupied cells, moves after the
	// game is decided, and move requests with no cell left to take.
	ErrInvalidMove = errors.New("invalid move")
	// ErrOutOfRange reports a cell index outside 0-63.
	ErrOutOfRange = errors.New("cell out of range")
	// ErrMalformedBoard is game.ErrMalformedBoard, re-exported so
	// callers can branch on every session error from one package.
	ErrMalformedBoard = game.ErrMalformedBoard
)
