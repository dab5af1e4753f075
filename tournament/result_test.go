package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func gameWonBy(winner string) GameResult {
	return GameResult{
		Player1:  "alpha",
		Player2:  "beta",
		Winner:   winner,
		Moves:    20,
		Duration: 10 * time.Millisecond,
		When:     time.Now(),
	}
}

func TestMatchupResult(t *testing.T) {
	t.Run("tallies wins, losses and ties", func(t *testing.T) {
		r := NewMatchupResult("alpha", "beta")

		require.NoError(t, r.AddGame(gameWonBy(WinnerPlayer1), true))
		require.NoError(t, r.AddGame(gameWonBy(WinnerPlayer2), true))
		require.NoError(t, r.AddGame(gameWonBy(WinnerTie), false))

		require.Equal(t, 3, r.Games)
		require.Equal(t, 1, r.Matrix1Wins)
		require.Equal(t, 1, r.Matrix2Wins)
		require.Equal(t, 1, r.Ties)
		require.InDelta(t, 1.0/3.0, r.Matrix1WinRate(), 1e-9)
		require.InDelta(t, 1.0/3.0, r.TieRate(), 1e-9)
	})

	t.Run("attributes first-player wins by playing order", func(t *testing.T) {
		r := NewMatchupResult("alpha", "beta")

		// alpha opens and wins
		require.NoError(t, r.AddGame(gameWonBy(WinnerPlayer1), true))
		// beta opens and wins
		g := GameResult{Player1: "beta", Player2: "alpha", Winner: WinnerPlayer1}
		require.NoError(t, r.AddGame(g, false))
		// alpha opens, beta wins from second seat
		require.NoError(t, r.AddGame(gameWonBy(WinnerPlayer2), true))

		require.Equal(t, 1, r.Matrix1FirstWins)
		require.Equal(t, 1, r.Matrix2FirstWins)
	})

	t.Run("rejects games from other matchups", func(t *testing.T) {
		r := NewMatchupResult("alpha", "beta")
		g := GameResult{Player1: "gamma", Player2: "delta", Winner: WinnerTie}

		require.ErrorContains(t, r.AddGame(g, true), "does not belong")
	})

	t.Run("averages moves and duration", func(t *testing.T) {
		r := NewMatchupResult("alpha", "beta")
		g1 := gameWonBy(WinnerPlayer1)
		g1.Moves, g1.Duration = 10, 10*time.Millisecond
		g2 := gameWonBy(WinnerPlayer2)
		g2.Moves, g2.Duration = 30, 30*time.Millisecond
		require.NoError(t, r.AddGame(g1, true))
		require.NoError(t, r.AddGame(g2, true))

		require.InDelta(t, 20.0, r.AverageMoves(), 1e-9)
		require.Equal(t, 20*time.Millisecond, r.AverageDuration())
	})
}

func TestReportRankings(t *testing.T) {
	cfg := Config{Matrices: testMatrices("alpha", "beta"), Iterations: 1}
	report := NewReport(cfg)

	m := NewMatchupResult("alpha", "beta")
	require.NoError(t, m.AddGame(gameWonBy(WinnerPlayer1), true))
	require.NoError(t, m.AddGame(gameWonBy(WinnerPlayer1), false))
	require.NoError(t, m.AddGame(gameWonBy(WinnerTie), true))
	report.AddMatchup(m)

	rankings := report.Rankings()

	require.Len(t, rankings, 2)
	require.Equal(t, 1, rankings[0].Rank)
	require.Equal(t, "alpha", rankings[0].Label, "Two wins put alpha on top")
	require.Equal(t, 2, rankings[0].Wins)
	require.Equal(t, 1, rankings[0].Ties)
	require.Equal(t, "beta", rankings[1].Label)
	require.Equal(t, 2, rankings[1].Losses)
	require.InDelta(t, 2.0/3.0, rankings[0].WinRate, 1e-9)
}

func TestReportSummary(t *testing.T) {
	cfg := Config{Matrices: testMatrices("alpha", "beta"), Iterations: 1}
	report := NewReport(cfg)
	report.Start()

	m := NewMatchupResult("alpha", "beta")
	require.NoError(t, m.AddGame(gameWonBy(WinnerPlayer1), true))
	report.AddMatchup(m)
	report.Finish()

	summary := report.Summary()

	require.Contains(t, summary, "Total Games Played: 1")
	require.Contains(t, summary, "alpha")
	require.Contains(t, summary, "beta")
}
