package searcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tttt/game"
)

func mustBoard(t *testing.T, s string) game.Board {
	t.Helper()
	b, err := game.ParseBoard(s)
	require.NoError(t, err)
	return b
}

// The sixteen cells sitting on seven lines each: corners and centers.
// On an empty board they share the best score for either player.
var sevenLineCells = []int{0, 3, 12, 15, 21, 22, 25, 26, 37, 38, 41, 42, 48, 51, 60, 63}

func TestBestMove(t *testing.T) {
	t.Run("opens on the first seven-line cell", func(t *testing.T) {
		cell, ok := BestMove(game.Board{}, game.DefaultWeights(), game.Machine)

		require.True(t, ok)
		require.Equal(t, 0, cell, "Machine should take the first cell of the best-scoring set")

		cell, ok = BestMove(game.Board{}, game.DefaultWeights(), game.Human)

		require.True(t, ok)
		require.Equal(t, 0, cell, "Human scan should land on the same opening cell")
	})

	t.Run("completes its own row", func(t *testing.T) {
		b := mustBoard(t, "OOO" + strings.Repeat(".", 61))

		cell, ok := BestMove(b, game.DefaultWeights(), game.Machine)

		require.True(t, ok)
		require.Equal(t, 3, cell, "Machine should finish the three-in-a-row")
	})

	t.Run("blocks the human row", func(t *testing.T) {
		b := mustBoard(t, "XXX" + strings.Repeat(".", 61))

		cell, ok := BestMove(b, game.DefaultWeights(), game.Machine)

		require.True(t, ok)
		require.Equal(t, 3, cell, "Machine should deny the human's fourth cell")
	})

	t.Run("matches the known midgame move", func(t *testing.T) {
		b := mustBoard(t, "......XX.....................................................OOX")

		cell, ok := BestMove(b, game.DefaultWeights(), game.Machine)

		require.True(t, ok)
		require.Equal(t, 0, cell)
	})

	t.Run("is idempotent", func(t *testing.T) {
		b := mustBoard(t, "X.O" + strings.Repeat(".", 61))

		first, ok := BestMove(b, game.DefaultWeights(), game.Machine)
		require.True(t, ok)
		for i := 0; i < 10; i++ {
			again, ok := BestMove(b, game.DefaultWeights(), game.Machine)
			require.True(t, ok)
			require.Equal(t, first, again, "Repeated scans should return the same cell")
		}
	})

	t.Run("reports no move on a full board", func(t *testing.T) {
		var b game.Board
		for i := range b {
			b[i] = game.Human
		}

		_, ok := BestMove(b, game.DefaultWeights(), game.Machine)

		require.False(t, ok)
	})

	t.Run("handles weight magnitudes beyond the stock matrix", func(t *testing.T) {
		// Every empty-board score under this matrix is in the millions.
		var w game.Weights
		w[0][0] = 100000

		cell, ok := BestMove(game.Board{}, w, game.Machine)
		require.True(t, ok, "an empty board always has a move")
		require.Equal(t, 0, cell, "Machine minimizes, so it wants the cell on the most lines")

		cell, ok = BestMove(game.Board{}, w, game.Human)
		require.True(t, ok)
		require.Equal(t, 1, cell, "Human maximizes, so it wants the first cell on the fewest lines")
	})
}

func TestSelectorPick(t *testing.T) {
	t.Run("deterministic mode matches BestMove", func(t *testing.T) {
		s := New()
		b := mustBoard(t, "..X..O" + strings.Repeat(".", 58))

		want, ok := BestMove(b, game.DefaultWeights(), game.Machine)
		require.True(t, ok)

		got, ok := s.Pick(b, game.DefaultWeights(), game.Machine)
		require.True(t, ok)
		require.Equal(t, want, got)
	})

	t.Run("randomized mode stays inside the best-scoring set", func(t *testing.T) {
		s := New(WithRandomized(true), WithSeed(42))
		tied := map[int]bool{}
		for _, cell := range sevenLineCells {
			tied[cell] = true
		}

		seen := map[int]bool{}
		for i := 0; i < 200; i++ {
			cell, ok := s.Pick(game.Board{}, game.DefaultWeights(), game.Machine)
			require.True(t, ok)
			require.True(t, tied[cell], "Pick %d landed outside the tied set", cell)
			seen[cell] = true
		}

		require.Greater(t, len(seen), 1, "Randomized picks should spread over the tied cells")
	})

	t.Run("randomized mode still takes a forced move", func(t *testing.T) {
		s := New(WithRandomized(true), WithSeed(7))
		b := mustBoard(t, "OOO" + strings.Repeat(".", 61))

		for i := 0; i < 20; i++ {
			cell, ok := s.Pick(b, game.DefaultWeights(), game.Machine)
			require.True(t, ok)
			require.Equal(t, 3, cell, "A unique best move leaves nothing to draw")
		}
	})

	t.Run("randomized mode works for the human side", func(t *testing.T) {
		s := New(WithRandomized(true), WithSeed(11))
		tied := map[int]bool{}
		for _, cell := range sevenLineCells {
			tied[cell] = true
		}

		for i := 0; i < 50; i++ {
			cell, ok := s.Pick(game.Board{}, game.DefaultWeights(), game.Human)
			require.True(t, ok)
			require.True(t, tied[cell], "Human pick %d landed outside the tied set", cell)
		}
	})

	t.Run("reports no move on a full board", func(t *testing.T) {
		s := New(WithRandomized(true), WithSeed(1))
		var b game.Board
		for i := range b {
			b[i] = game.Machine
		}

		_, ok := s.Pick(b, game.DefaultWeights(), game.Machine)

		require.False(t, ok)
	})

	t.Run("handles weight magnitudes beyond the stock matrix", func(t *testing.T) {
		var w game.Weights
		w[0][0] = 100000
		s := New(WithRandomized(true), WithSeed(9))

		cell, ok := s.Pick(game.Board{}, w, game.Machine)
		require.True(t, ok)
		require.Contains(t, sevenLineCells, cell)
	})

	t.Run("draws both cells of a two-way tie", func(t *testing.T) {
		b := mustBoard(t, "X.."+strings.Repeat("X", 61))
		w := game.DefaultWeights()

		// The two empty cells mirror each other, so their tentative
		// scores tie.
		b[1] = game.Machine
		first := game.Score(b, w)
		b[1] = game.Nobody
		b[2] = game.Machine
		second := game.Score(b, w)
		b[2] = game.Nobody
		require.Equal(t, first, second)

		s := New(WithRandomized(true), WithSeed(123))
		seen := map[int]bool{}
		for i := 0; i < 200; i++ {
			cell, ok := s.Pick(b, w, game.Machine)
			require.True(t, ok)
			require.Contains(t, []int{1, 2}, cell, "Pick must stay on the tied cells")
			seen[cell] = true
		}
		require.True(t, seen[1] && seen[2], "200 draws should hit both tied cells")
	})

	t.Run("does not disturb the caller's board", func(t *testing.T) {
		s := New(WithRandomized(true), WithSeed(3))
		b := mustBoard(t, "X.O" + strings.Repeat(".", 61))
		before := b

		s.Pick(b, game.DefaultWeights(), game.Machine)

		require.Equal(t, before, b)
	})
}

func TestSelectorRandomized(t *testing.T) {
	s := New()
	require.False(t, s.Randomized())

	s.SetRandomized(true)
	require.True(t, s.Randomized())

	s.SetRandomized(false)
	require.False(t, s.Randomized())
}
