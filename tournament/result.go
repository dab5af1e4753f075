package tournament

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Winner values in a GameResult. Player1 is always the side that
// opened the game.
const (
	WinnerPlayer1 = "player1"
	WinnerPlayer2 = "player2"
	WinnerTie     = "tie"
)

// GameResult records one finished game between two entrants.
type GameResult struct {
	Player1  string // label of the opening side
	Player2  string
	Winner   string // WinnerPlayer1, WinnerPlayer2 or WinnerTie
	Moves    int
	Duration time.Duration
	Final    string // final board string
	When     time.Time
}

func (g GameResult) Tie() bool {
	return g.Winner == WinnerTie
}

// WinnerLabel resolves the winner to a matrix label, or "" for a tie.
func (g GameResult) WinnerLabel() string {
	switch g.Winner {
	case WinnerPlayer1:
		return g.Player1
	case WinnerPlayer2:
		return g.Player2
	default:
		return ""
	}
}

// MatchupResult aggregates every game one pair of entrants played
// against each other, in both playing orders.
type MatchupResult struct {
	Matrix1 string
	Matrix2 string

	Games       int
	Matrix1Wins int
	Matrix2Wins int
	Ties        int

	// Wins counted only when the winner also opened the game.
	Matrix1FirstWins int
	Matrix2FirstWins int

	totalDuration time.Duration
	totalMoves    int
	results       []GameResult
}

func NewMatchupResult(matrix1, matrix2 string) *MatchupResult {
	return &MatchupResult{Matrix1: matrix1, Matrix2: matrix2}
}

// AddGame folds a finished game into the tallies. matrix1First says
// whether Matrix1 opened this particular game.
func (r *MatchupResult) AddGame(g GameResult, matrix1First bool) error {
	if !r.belongs(g) {
		return fmt.Errorf("game between %q and %q does not belong to matchup %q vs %q",
			g.Player1, g.Player2, r.Matrix1, r.Matrix2)
	}

	r.Games++
	r.totalDuration += g.Duration
	r.totalMoves += g.Moves

	switch g.WinnerLabel() {
	case "":
		r.Ties++
	case r.Matrix1:
		r.Matrix1Wins++
		if matrix1First {
			r.Matrix1FirstWins++
		}
	case r.Matrix2:
		r.Matrix2Wins++
		if !matrix1First {
			r.Matrix2FirstWins++
		}
	}

	r.results = append(r.results, g)
	return nil
}

func (r *MatchupResult) belongs(g GameResult) bool {
	return (g.Player1 == r.Matrix1 && g.Player2 == r.Matrix2) ||
		(g.Player1 == r.Matrix2 && g.Player2 == r.Matrix1)
}

func (r *MatchupResult) Matrix1WinRate() float64 {
	return rate(r.Matrix1Wins, r.Games)
}

func (r *MatchupResult) Matrix2WinRate() float64 {
	return rate(r.Matrix2Wins, r.Games)
}

func (r *MatchupResult) TieRate() float64 {
	return rate(r.Ties, r.Games)
}

// AverageDuration is the mean game length in wall time.
func (r *MatchupResult) AverageDuration() time.Duration {
	if r.Games == 0 {
		return 0
	}
	return r.totalDuration / time.Duration(r.Games)
}

// AverageMoves is the mean number of moves per game.
func (r *MatchupResult) AverageMoves() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.totalMoves) / float64(r.Games)
}

// FirstPlayerAdvantage measures how much opening helped across this
// matchup: the mean of each side's win rate when opening, minus 0.5.
// Positive values mean the opener won more than half the time.
func (r *MatchupResult) FirstPlayerAdvantage() float64 {
	if r.Games == 0 {
		return 0
	}
	matrix1First := 0
	for _, g := range r.results {
		if g.Player1 == r.Matrix1 {
			matrix1First++
		}
	}
	matrix2First := r.Games - matrix1First
	if matrix1First == 0 || matrix2First == 0 {
		return 0
	}
	rate1 := float64(r.Matrix1FirstWins) / float64(matrix1First)
	rate2 := float64(r.Matrix2FirstWins) / float64(matrix2First)
	return (rate1+rate2)/2 - 0.5
}

// Results returns a copy of the individual games.
func (r *MatchupResult) Results() []GameResult {
	out := make([]GameResult, len(r.results))
	copy(out, r.results)
	return out
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// Ranking is one entrant's tournament-wide standing.
type Ranking struct {
	Rank        int
	Label       string
	Description string
	Games       int
	Wins        int
	Losses      int
	Ties        int
	WinRate     float64
}

// Report collects everything a tournament run produced.
type Report struct {
	ID       string // run id, assigned by the Runner
	Config   Config
	Started  time.Time
	Finished time.Time
	Matchups []*MatchupResult
	Games    []GameResult
}

func NewReport(cfg Config) *Report {
	return &Report{Config: cfg}
}

func (r *Report) Start() {
	r.Started = time.Now()
}

func (r *Report) Finish() {
	r.Finished = time.Now()
}

// AddMatchup folds a completed matchup and its games into the report.
func (r *Report) AddMatchup(m *MatchupResult) {
	r.Matchups = append(r.Matchups, m)
	r.Games = append(r.Games, m.Results()...)
}

func (r *Report) TotalGames() int {
	return len(r.Games)
}

func (r *Report) Duration() time.Duration {
	if r.Started.IsZero() || r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// GamesPerHour is the execution rate over the whole run.
func (r *Report) GamesPerHour() float64 {
	hours := r.Duration().Hours()
	if hours == 0 {
		return 0
	}
	return float64(r.TotalGames()) / hours
}

// Rankings orders the roster by overall win rate. Ties in win rate keep
// roster order.
func (r *Report) Rankings() []Ranking {
	index := map[string]int{}
	rankings := make([]Ranking, len(r.Config.Matrices))
	for i, m := range r.Config.Matrices {
		rankings[i] = Ranking{Label: m.Label, Description: m.Description}
		index[m.Label] = i
	}

	for _, g := range r.Games {
		for _, label := range []string{g.Player1, g.Player2} {
			i, ok := index[label]
			if !ok {
				continue
			}
			rankings[i].Games++
			switch {
			case g.Tie():
				rankings[i].Ties++
			case g.WinnerLabel() == label:
				rankings[i].Wins++
			default:
				rankings[i].Losses++
			}
		}
	}

	for i := range rankings {
		rankings[i].WinRate = rate(rankings[i].Wins, rankings[i].Games)
	}
	sort.SliceStable(rankings, func(a, b int) bool {
		return rankings[a].WinRate > rankings[b].WinRate
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// FirstPlayerAdvantage averages the per-matchup opener advantage.
func (r *Report) FirstPlayerAdvantage() float64 {
	if len(r.Matchups) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range r.Matchups {
		sum += m.FirstPlayerAdvantage()
	}
	return sum / float64(len(r.Matchups))
}

// Summary renders the human-readable results digest.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tournament Results Summary\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(&b, "Total Games Played: %d\n", r.TotalGames())
	fmt.Fprintf(&b, "Tournament Duration: %.1f seconds\n", r.Duration().Seconds())
	fmt.Fprintf(&b, "Games per Hour: %.1f\n", r.GamesPerHour())
	fmt.Fprintf(&b, "\nMatrix Rankings:\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 20))
	for _, rank := range r.Rankings() {
		fmt.Fprintf(&b, "%2d. %-15s Win Rate: %5.1f%% (%3dW/%3dL/%3dT)\n",
			rank.Rank, rank.Label, rank.WinRate*100, rank.Wins, rank.Losses, rank.Ties)
	}
	if r.Config.Randomized {
		fmt.Fprintf(&b, "\nFirst Player Advantage: %+.3f\n", r.FirstPlayerAdvantage())
	}
	return b.String()
}
