package searcher

import (
	"time"

	"golang.org/x/exp/rand"

	"tttt/game"
)

// Selector picks moves by one-ply lookahead: every empty cell is tried,
// the resulting board is scored under the weight matrix, and the best
// score wins. The machine minimizes, the human maximizes. In randomized
// mode ties at the best score are broken uniformly; otherwise the
// lowest-index best cell is chosen.
type Selector struct {
	randomized bool
	rng        *rand.Rand
}

type Option func(s *Selector)

func WithRandomized(randomized bool) Option {
	return func(s *Selector) {
		s.randomized = randomized
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Selector) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Selector) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func New(options ...Option) *Selector {
	s := &Selector{
		rng: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// SetRandomized switches the tie-break mode for subsequent picks.
func (s *Selector) SetRandomized(randomized bool) {
	s.randomized = randomized
}

func (s *Selector) Randomized() bool {
	return s.randomized
}

// BestMove is the deterministic scan: the first cell reaching the best
// score wins. It is a pure query and repeated calls on the same board
// return the same cell. ok is false when the board is full.
func BestMove(b game.Board, w game.Weights, p game.Player) (cell int, ok bool) {
	best := 0
	move := -1
	for try := 0; try < game.Positions; try++ {
		if b[try] != game.Nobody {
			continue
		}
		b[try] = p
		score := game.Score(b, w)
		b[try] = game.Nobody
		// The first empty cell seeds the running best; scores have no
		// a-priori bound once the caller supplies its own weights.
		if move < 0 || improves(p, score, best) {
			best = score
			move = try
		}
	}
	if move < 0 {
		return -1, false
	}
	return move, true
}

// Pick chooses a move for the player, honoring the randomized flag.
// ok is false when the board is full.
func (s *Selector) Pick(b game.Board, w game.Weights, p game.Player) (cell int, ok bool) {
	if !s.randomized {
		return BestMove(b, w, p)
	}
	return s.pickRandomized(b, w, p)
}

// pickRandomized runs the two-stack tie-break. The scan pushes every
// candidate that ties or improves the running best; the refill keeps
// only candidates matching the final best score. Each cell is scored
// once, so the second stack holds each best-scoring cell exactly once
// and the draw is uniform across them.
func (s *Selector) pickRandomized(b game.Board, w game.Weights, p game.Player) (int, bool) {
	var scanned, best moveStack
	runningBest := 0
	found := false

	for try := 0; try < game.Positions; try++ {
		if b[try] != game.Nobody {
			continue
		}
		b[try] = p
		score := game.Score(b, w)
		b[try] = game.Nobody
		if !found || score == runningBest || improves(p, score, runningBest) {
			runningBest = score
			found = true
			scanned.push(scoredMove{cell: try, score: score})
		}
	}
	if !found {
		return -1, false
	}

	anchor, _ := scanned.pop()
	best.push(anchor)
	for {
		m, ok := scanned.pop()
		if !ok {
			break
		}
		if m.score == anchor.score {
			best.push(m)
		}
	}

	picks := s.rng.Intn(best.size()) + 1
	var chosen scoredMove
	for ; picks > 0; picks-- {
		chosen, _ = best.pop()
	}
	return chosen.cell, true
}

func improves(p game.Player, score, best int) bool {
	if p == game.Human {
		return score > best
	}
	return score < best
}
