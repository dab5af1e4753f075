package tournament

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tttt/game"
)

const (
	// MaxMatrices caps the roster; beyond it round-robin game counts
	// get out of hand.
	MaxMatrices = 50
	// MaxIterations caps games per matchup order.
	MaxIterations = 10000
)

// matrixColumns is label + 25 weight values.
const matrixColumns = 1 + game.WeightMatrixSize*game.WeightMatrixSize

var validFormats = map[string]bool{"json": true, "csv": true, "text": true}

// Config is a complete tournament setup: the roster, how many games
// each pair plays per playing order, whether tied best moves are broken
// randomly, and which report formats to write.
type Config struct {
	Matrices   []Matrix
	Iterations int
	Randomized bool
	Formats    []string
	ConfigPath string
}

func (c Config) Validate() error {
	if len(c.Matrices) < 2 {
		return fmt.Errorf("tournament needs at least 2 matrices, got %d", len(c.Matrices))
	}
	if len(c.Matrices) > MaxMatrices {
		return fmt.Errorf("tournament holds at most %d matrices, got %d", MaxMatrices, len(c.Matrices))
	}
	seen := map[string]bool{}
	for _, m := range c.Matrices {
		if err := m.validate(); err != nil {
			return err
		}
		if seen[m.Label] {
			return fmt.Errorf("duplicate matrix label %q", m.Label)
		}
		seen[m.Label] = true
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations per matchup must be positive, got %d", c.Iterations)
	}
	if c.Iterations > MaxIterations {
		return fmt.Errorf("iterations per matchup capped at %d, got %d", MaxIterations, c.Iterations)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("at least one output format is required")
	}
	seenFormat := map[string]bool{}
	for _, f := range c.Formats {
		if !validFormats[f] {
			return fmt.Errorf("unknown output format %q (valid: csv, json, text)", f)
		}
		if seenFormat[f] {
			return fmt.Errorf("duplicate output format %q", f)
		}
		seenFormat[f] = true
	}
	return nil
}

// Matchups lists every unordered pair of entrants, in roster order.
func (c Config) Matchups() [][2]Matrix {
	var pairs [][2]Matrix
	for i := 0; i < len(c.Matrices); i++ {
		for j := i + 1; j < len(c.Matrices); j++ {
			pairs = append(pairs, [2]Matrix{c.Matrices[i], c.Matrices[j]})
		}
	}
	return pairs
}

// TotalGames is the number of games a full run plays: every pair, both
// playing orders, Iterations times.
func (c Config) TotalGames() int {
	return len(c.Matchups()) * 2 * c.Iterations
}

// MatrixByLabel finds an entrant by label.
func (c Config) MatrixByLabel(label string) (Matrix, bool) {
	for _, m := range c.Matrices {
		if m.Label == label {
			return m, true
		}
	}
	return Matrix{}, false
}

// LoadMatrices reads a tournament roster from CSV. The file carries a
// header row ("label" plus 25 weight columns) and one row per matrix:
// the label followed by the weight values row-major. Blank rows are
// skipped.
func LoadMatrices(path string) ([]Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // row width checked per record

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster file is empty")
	}

	header := records[0]
	if len(header) != matrixColumns {
		return nil, fmt.Errorf("roster header needs %d columns (label + 25 weights), got %d", matrixColumns, len(header))
	}
	if strings.ToLower(header[0]) != "label" {
		return nil, fmt.Errorf("first roster column must be \"label\", got %q", header[0])
	}

	var matrices []Matrix
	seen := map[string]bool{}
	for i, row := range records[1:] {
		rowNum := i + 2 // header is row 1
		if blankRow(row) {
			continue
		}
		if len(row) != matrixColumns {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", rowNum, matrixColumns, len(row))
		}
		label := strings.TrimSpace(row[0])
		m := Matrix{Label: label}
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if seen[label] {
			return nil, fmt.Errorf("row %d: duplicate label %q", rowNum, label)
		}
		seen[label] = true

		values := make([]int, 0, matrixColumns-1)
		for col, field := range row[1:] {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("row %d: weight column %d value %q is not an integer", rowNum, col+1, field)
			}
			values = append(values, v)
		}
		w, err := game.WeightsFromSlice(values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		m.Weights = w
		matrices = append(matrices, m)
	}

	if len(matrices) == 0 {
		return nil, fmt.Errorf("roster holds no matrices")
	}
	return matrices, nil
}

func blankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
