package game

// countLines tallies, for every winning line, how many cells each side
// holds on it. Both Score and DetectWin recompute the tallies from the
// full board on every call; nothing is cached between moves.
func countLines(b Board) (human, machine [Lines]int) {
	for cell, p := range b {
		if p == Nobody {
			continue
		}
		for _, line := range winLines[cell] {
			if line == noLine {
				continue
			}
			if p == Human {
				human[line]++
			} else {
				machine[line]++
			}
		}
	}
	return human, machine
}

// Score rates the board under the weight matrix: the sum over all 76
// lines of w[humanPieces][machinePieces]. Lower is better for the
// machine. An empty board scores 76*w[0][0].
func Score(b Board, w Weights) int {
	human, machine := countLines(b)
	total := 0
	for line := 0; line < Lines; line++ {
		total += w[human[line]][machine[line]]
	}
	return total
}

// Win is a completed line: who owns it and its four cells in ascending
// order.
type Win struct {
	Winner Player
	Cells  [WinSize]int
}

// DetectWin scans every line for four-of-a-kind. The scan runs over all
// 76 lines without stopping at the first hit, so when a hand-built board
// completes several lines at once the one with the highest line id is
// reported. In normal play a move ends the game immediately and only one
// line can complete.
func DetectWin(b Board) (Win, bool) {
	human, machine := countLines(b)
	var win Win
	found := false
	for line := 0; line < Lines; line++ {
		if machine[line] == WinSize {
			win = Win{Winner: Machine, Cells: lineCells(line)}
			found = true
		}
		if human[line] == WinSize {
			win = Win{Winner: Human, Cells: lineCells(line)}
			found = true
		}
	}
	return win, found
}
