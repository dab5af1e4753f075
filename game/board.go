package game

import (
	"errors"
	"fmt"
)

// Player marks who occupies a cell. Nobody means the cell is empty.
type Player uint8

const (
	Nobody Player = iota
	Machine
	Human
)

func (p Player) String() string {
	switch p {
	case Machine:
		return "machine"
	case Human:
		return "human"
	default:
		return "nobody"
	}
}

// Mark is the board-string character for the player.
func (p Player) Mark() byte {
	switch p {
	case Machine:
		return 'O'
	case Human:
		return 'X'
	default:
		return '.'
	}
}

// Opponent returns the other side. Nobody has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Machine:
		return Human
	case Human:
		return Machine
	default:
		return Nobody
	}
}

const (
	// Positions is the number of cells in the 4x4x4 cube.
	Positions = 64
	// Lines is the number of four-in-a-row winning lines through the cube.
	Lines = 76
	// WinSize is the number of cells in a winning line.
	WinSize = 4
)

// ErrMalformedBoard reports a board string that is not 64 cells of
// 'X', 'O' and empty markers.
var ErrMalformedBoard = errors.New("malformed board string")

// Board is the 4x4x4 cube flattened to 64 cells. Cell i sits at layer
// i/16, row (i%16)/4, column i%4. Index 0 is the top-left cell of the
// top layer.
type Board [Positions]Player

// ParseBoard decodes a 64-character board string: 'X' human, 'O' machine,
// '.' or '_' empty. Anything else is ErrMalformedBoard.
func ParseBoard(s string) (Board, error) {
	var b Board
	if len(s) != Positions {
		return b, fmt.Errorf("%w: got %d characters, want %d", ErrMalformedBoard, len(s), Positions)
	}
	for i := 0; i < Positions; i++ {
		switch s[i] {
		case 'X':
			b[i] = Human
		case 'O':
			b[i] = Machine
		case '.', '_':
			b[i] = Nobody
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q at cell %d", ErrMalformedBoard, s[i], i)
		}
	}
	return b, nil
}

// String renders the board as a 64-character string with '.' for empty cells.
func (b Board) String() string {
	var out [Positions]byte
	for i, p := range b {
		out[i] = p.Mark()
	}
	return string(out[:])
}

// Count returns the number of cells held by each side.
func (b Board) Count() (human, machine int) {
	for _, p := range b {
		switch p {
		case Human:
			human++
		case Machine:
			machine++
		}
	}
	return human, machine
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for _, p := range b {
		if p == Nobody {
			return false
		}
	}
	return true
}

// Coords maps a cell index to its layer, row and column.
func Coords(cell int) (layer, row, col int) {
	return cell / 16, (cell % 16) / 4, cell % 4
}

// CellAt maps layer, row and column back to a cell index.
func CellAt(layer, row, col int) int {
	return layer*16 + row*4 + col
}
