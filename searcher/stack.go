package searcher

// scoredMove is a candidate cell with the board score it would produce.
type scoredMove struct {
	cell  int
	score int
}

// moveStack backs the randomized tie-break: candidates pile up during
// the scan and come back off in reverse.
type moveStack struct {
	moves []scoredMove
}

func (s *moveStack) push(m scoredMove) {
	s.moves = append(s.moves, m)
}

func (s *moveStack) pop() (scoredMove, bool) {
	if len(s.moves) == 0 {
		return scoredMove{}, false
	}
	m := s.moves[len(s.moves)-1]
	s.moves = s.moves[:len(s.moves)-1]
	return m, true
}

func (s *moveStack) size() int {
	return len(s.moves)
}
