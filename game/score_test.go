package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	t.Run("scores the empty board as zero under defaults", func(t *testing.T) {
		require.Equal(t, 0, Score(Board{}, DefaultWeights()))
	})

	t.Run("scores a lone human corner piece", func(t *testing.T) {
		var b Board
		b[0] = Human

		// Cell 0 sits on seven lines, each now 1 human / 0 machine.
		require.Equal(t, 7*2, Score(b, DefaultWeights()))
	})

	t.Run("scores a lone machine corner piece", func(t *testing.T) {
		var b Board
		b[0] = Machine

		require.Equal(t, 7*-2, Score(b, DefaultWeights()))
	})

	t.Run("matches the known midgame value", func(t *testing.T) {
		b, err := ParseBoard("......X......................................................OOX")
		require.NoError(t, err)

		require.Equal(t, 8, Score(b, DefaultWeights()),
			"Scoring should reproduce the reference value for this position")
	})

	t.Run("follows a replacement matrix", func(t *testing.T) {
		var w Weights
		w[0][0] = 1

		require.Equal(t, Lines, Score(Board{}, w),
			"Empty board should score once per line under a unit empty-line weight")
	})
}

func TestDetectWin(t *testing.T) {
	t.Run("finds no winner on an empty board", func(t *testing.T) {
		_, found := DetectWin(Board{})

		require.False(t, found)
	})

	t.Run("finds no winner on scattered pieces", func(t *testing.T) {
		b, err := ParseBoard("XOX" + strings.Repeat(".", 58) + "OXO")
		require.NoError(t, err)

		_, found := DetectWin(b)

		require.False(t, found)
	})

	t.Run("finds a machine row", func(t *testing.T) {
		var b Board
		for _, cell := range []int{0, 1, 2, 3} {
			b[cell] = Machine
		}

		win, found := DetectWin(b)

		require.True(t, found)
		require.Equal(t, Machine, win.Winner)
		require.Equal(t, [WinSize]int{0, 1, 2, 3}, win.Cells)
	})

	t.Run("finds a human space diagonal", func(t *testing.T) {
		var b Board
		for _, cell := range []int{0, 21, 42, 63} {
			b[cell] = Human
		}

		win, found := DetectWin(b)

		require.True(t, found)
		require.Equal(t, Human, win.Winner)
		require.Equal(t, [WinSize]int{0, 21, 42, 63}, win.Cells)
	})

	t.Run("prefers the later line when a set board completes two at once", func(t *testing.T) {
		var b Board
		for _, cell := range []int{0, 1, 2, 3} { // line 0
			b[cell] = Machine
		}
		for _, cell := range []int{4, 5, 6, 7} { // line 1
			b[cell] = Human
		}

		win, found := DetectWin(b)

		require.True(t, found)
		require.Equal(t, Human, win.Winner, "The higher line id should decide the winner")
		require.Equal(t, [WinSize]int{4, 5, 6, 7}, win.Cells)
	})

	t.Run("leaves the board untouched", func(t *testing.T) {
		var b Board
		for _, cell := range []int{0, 1, 2, 3} {
			b[cell] = Machine
		}
		before := b

		DetectWin(b)

		require.Equal(t, before, b)
	})
}
