package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()

	require.Equal(t, -16, w[0][4], "Four machine pieces on a line should weigh heavily negative")
	require.Equal(t, 16, w[4][0], "Four human pieces on a line should weigh heavily positive")
	require.Equal(t, 1, w[2][2], "Contested two-two lines should carry the small bonus")
	require.Equal(t, 0, w[0][0], "Empty lines should weigh nothing")
}

func TestWeightsFromSlice(t *testing.T) {
	t.Run("round trips through Flatten", func(t *testing.T) {
		w := DefaultWeights()

		got, err := WeightsFromSlice(w.Flatten())

		require.NoError(t, err)
		require.Equal(t, w, got)
	})

	t.Run("rejects short input", func(t *testing.T) {
		_, err := WeightsFromSlice([]int{1, 2, 3})

		require.Error(t, err)
	})

	t.Run("fills row-major", func(t *testing.T) {
		values := make([]int, 25)
		values[7] = 42 // row 1, column 2

		w, err := WeightsFromSlice(values)

		require.NoError(t, err)
		require.Equal(t, 42, w[1][2])
	})
}

func TestParseWeights(t *testing.T) {
	t.Run("parses the default matrix string", func(t *testing.T) {
		in := "0 -2 -4 -8 -16 2 0 0 0 0 4 0 1 0 0 8 0 0 0 0 16 0 0 0 0"

		w, err := ParseWeights(in)

		require.NoError(t, err)
		require.Equal(t, DefaultWeights(), w)
	})

	t.Run("round trips through String", func(t *testing.T) {
		w := DefaultWeights()

		got, err := ParseWeights(w.String())

		require.NoError(t, err)
		require.Equal(t, w, got)
	})

	t.Run("rejects non-integer tokens", func(t *testing.T) {
		_, err := ParseWeights("0 -2 four -8 -16 2 0 0 0 0 4 0 1 0 0 8 0 0 0 0 16 0 0 0 0")

		require.Error(t, err)
	})

	t.Run("rejects wrong count", func(t *testing.T) {
		_, err := ParseWeights("1 2 3")

		require.Error(t, err)
	})
}
