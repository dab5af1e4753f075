package game

import (
	"fmt"
	"strconv"
	"strings"
)

// WeightMatrixSize is the side of the weight matrix: piece counts 0-4.
const WeightMatrixSize = 5

// Weights scores a single line: Weights[h][m] is the contribution of a
// line holding h human and m machine pieces. Lower totals favor the
// machine. Replacement is whole-matrix only; there is no per-entry API.
type Weights [WeightMatrixSize][WeightMatrixSize]int

// DefaultWeights returns the stock heuristic matrix. It is asymmetric:
// human threats grow positive (2, 4, 8, 16) and machine threats negative
// (-2, -4, -8, -16), with a small bonus for contested two-two lines.
func DefaultWeights() Weights {
	return Weights{
		{0, -2, -4, -8, -16},
		{2, 0, 0, 0, 0},
		{4, 0, 1, 0, 0},
		{8, 0, 0, 0, 0},
		{16, 0, 0, 0, 0},
	}
}

// Flatten lays the matrix out row-major as 25 values.
func (w Weights) Flatten() []int {
	out := make([]int, 0, WeightMatrixSize*WeightMatrixSize)
	for _, row := range w {
		out = append(out, row[:]...)
	}
	return out
}

// WeightsFromSlice rebuilds a matrix from 25 row-major values.
func WeightsFromSlice(values []int) (Weights, error) {
	var w Weights
	if len(values) != WeightMatrixSize*WeightMatrixSize {
		return w, fmt.Errorf("weight matrix needs %d values, got %d", WeightMatrixSize*WeightMatrixSize, len(values))
	}
	for i, v := range values {
		w[i/WeightMatrixSize][i%WeightMatrixSize] = v
	}
	return w, nil
}

// ParseWeights reads 25 space-separated integers, the command-line form
// of a weight matrix.
func ParseWeights(s string) (Weights, error) {
	fields := strings.Fields(s)
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Weights{}, fmt.Errorf("weight %q is not an integer", f)
		}
		values = append(values, v)
	}
	return WeightsFromSlice(values)
}

// String renders the matrix as 25 space-separated row-major values,
// the inverse of ParseWeights.
func (w Weights) String() string {
	flat := w.Flatten()
	parts := make([]string, len(flat))
	for i, v := range flat {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
