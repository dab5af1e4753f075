package tournament

import (
	"fmt"
	"strings"

	"tttt/game"
)

// Matrix is one tournament entrant: a labeled weight matrix. Labels key
// every report row, so they must be unique per tournament and must not
// carry CSV-hostile characters.
type Matrix struct {
	Label       string
	Description string
	Weights     game.Weights
}

func (m Matrix) validate() error {
	if strings.TrimSpace(m.Label) == "" {
		return fmt.Errorf("matrix label is empty")
	}
	if strings.ContainsAny(m.Label, ",\"\n\r") {
		return fmt.Errorf("matrix label %q contains a comma, quote or newline", m.Label)
	}
	return nil
}
