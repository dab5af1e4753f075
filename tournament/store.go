package tournament

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists finished tournament games in PostgreSQL. It is
// optional: the runner works without one, and callers only open a
// store when a DSN is configured.
type Store struct {
	pool *pgxpool.Pool
}

// OpenStore connects to the database and creates the games table if it
// does not exist yet.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open results store: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tournament_games (
			id          BIGSERIAL PRIMARY KEY,
			run_id      UUID NOT NULL,
			player1     TEXT NOT NULL,
			player2     TEXT NOT NULL,
			winner      TEXT NOT NULL,
			moves       INT NOT NULL,
			duration_ms BIGINT NOT NULL,
			final_board CHAR(64) NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tournament_games_run ON tournament_games(run_id);
		CREATE INDEX IF NOT EXISTS idx_tournament_games_finished ON tournament_games(finished_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate results store: %w", err)
	}
	return nil
}

// SaveGame inserts one finished game. Implements GameStore.
func (s *Store) SaveGame(ctx context.Context, runID string, g GameResult) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tournament_games
			(run_id, player1, player2, winner, moves, duration_ms, final_board, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, runID, g.Player1, g.Player2, g.Winner, g.Moves, g.Duration.Milliseconds(), g.Final, g.When)
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// StoredGame is one persisted game row.
type StoredGame struct {
	RunID    string
	Player1  string
	Player2  string
	Winner   string
	Moves    int
	Duration time.Duration
	Final    string
	When     time.Time
}

// RecentGames returns the most recently finished games, newest first.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]StoredGame, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT run_id, player1, player2, winner, moves, duration_ms, final_board, finished_at
		FROM tournament_games
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent games: %w", err)
	}
	defer rows.Close()

	var out []StoredGame
	for rows.Next() {
		var g StoredGame
		var durationMS int64
		if err := rows.Scan(&g.RunID, &g.Player1, &g.Player2, &g.Winner,
			&g.Moves, &durationMS, &g.Final, &g.When); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		g.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game rows: %w", err)
	}
	return out, nil
}

func (s *Store) Close() {
	s.pool.Close()
}
