package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWinLinesTable(t *testing.T) {
	t.Run("references every line by exactly four cells", func(t *testing.T) {
		refs := map[int]int{}
		for cell := 0; cell < Positions; cell++ {
			for _, line := range winLines[cell] {
				if line == noLine {
					continue
				}
				require.GreaterOrEqual(t, line, 0, "Line ids should not go below the sentinel")
				require.Less(t, line, Lines, "Line ids should stay below the line count")
				refs[line]++
			}
		}

		require.Len(t, refs, Lines, "Every line id should appear in the table")
		for line, count := range refs {
			require.Equal(t, WinSize, count, "Line %d should run through exactly four cells", line)
		}
	})

	t.Run("puts every cell on four to seven lines", func(t *testing.T) {
		for cell := 0; cell < Positions; cell++ {
			count := 0
			for _, line := range winLines[cell] {
				if line != noLine {
					count++
				}
			}
			require.GreaterOrEqual(t, count, WinSize, "Cell %d should sit on at least four lines", cell)
			require.LessOrEqual(t, count, linesPerCell, "Cell %d should sit on at most seven lines", cell)
		}
	})
}

func TestLineCells(t *testing.T) {
	t.Run("finds the first row line", func(t *testing.T) {
		require.Equal(t, [WinSize]int{0, 1, 2, 3}, lineCells(0))
	})

	t.Run("finds the main space diagonal", func(t *testing.T) {
		require.Equal(t, [WinSize]int{0, 21, 42, 63}, lineCells(64))
	})

	t.Run("returns cells in ascending order for every line", func(t *testing.T) {
		for line := 0; line < Lines; line++ {
			cells := lineCells(line)
			for i := 1; i < WinSize; i++ {
				require.Greater(t, cells[i], cells[i-1],
					"Cells of line %d should ascend", line)
			}
		}
	})
}
