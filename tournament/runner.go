package tournament

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tttt/engine"
	"tttt/game"
	"tttt/searcher"
)

// GameStore persists finished games, keyed by the tournament run id.
// Implementations must tolerate being called once per game.
type GameStore interface {
	SaveGame(ctx context.Context, runID string, g GameResult) error
}

// EventEmitter publishes progress events to an analytics sink. Calls are
// fire-and-forget; a lost event never fails the tournament.
type EventEmitter interface {
	GameFinished(runID string, g GameResult)
	TournamentFinished(runID string, r *Report)
}

// Runner plays a full round-robin tournament: every pair of entrants,
// both playing orders, Iterations games each. Games run in-process
// through engine.Match, so winners come from real win detection rather
// than move-count inference.
type Runner struct {
	config  Config
	store   GameStore
	emitter EventEmitter
	timeout time.Duration
	seed    uint64
	seeded  bool
}

type RunnerOption func(r *Runner)

// WithStore persists every finished game. Nil disables persistence.
func WithStore(store GameStore) RunnerOption {
	return func(r *Runner) {
		r.store = store
	}
}

// WithEmitter publishes game and tournament events. Nil disables it.
func WithEmitter(emitter EventEmitter) RunnerOption {
	return func(r *Runner) {
		r.emitter = emitter
	}
}

// WithGameTimeout aborts any single game running longer than d.
func WithGameTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithSeed fixes the randomized tie-break sequence for reproducible
// runs. Only meaningful when the config enables randomization.
func WithSeed(seed uint64) RunnerOption {
	return func(r *Runner) {
		r.seed = seed
		r.seeded = true
	}
}

// defaultGameTimeout guards against a stuck game. A 4x4x4 game lasts at
// most 64 moves and each move scans 64 cells, so anything near this
// limit is a bug, not a slow game.
const defaultGameTimeout = 5 * time.Minute

func NewRunner(config Config, options ...RunnerOption) *Runner {
	r := &Runner{
		config:  config,
		timeout: defaultGameTimeout,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run validates the config and plays the whole tournament. The context
// is checked between games; cancellation abandons the run and returns
// the context's error.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tournament config: %w", err)
	}

	runID := uuid.NewString()
	report := NewReport(r.config)
	report.ID = runID
	report.Start()

	matchups := r.config.Matchups()
	log.Info().Msgf("starting tournament %s: %d matrices, %d matchups, %d games total",
		runID, len(r.config.Matrices), len(matchups), r.config.TotalGames())

	gameIndex := uint64(0)
	for mi, pair := range matchups {
		result := NewMatchupResult(pair[0].Label, pair[1].Label)
		log.Info().Msgf("starting matchup %d of %d: %s vs %s",
			mi+1, len(matchups), pair[0].Label, pair[1].Label)

		for i := 0; i < r.config.Iterations; i++ {
			for order := 0; order < 2; order++ {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				default:
				}

				first, second := pair[order], pair[1-order]
				g, err := r.playGame(first, second, gameIndex)
				gameIndex++
				if err != nil {
					return nil, fmt.Errorf("matchup %s vs %s game %d failed: %w",
						first.Label, second.Label, i+1, err)
				}
				if err := result.AddGame(g, order == 0); err != nil {
					return nil, err
				}

				if r.store != nil {
					if err := r.store.SaveGame(ctx, runID, g); err != nil {
						log.Warn().Err(err).Msgf("failed to persist game %s vs %s", g.Player1, g.Player2)
					}
				}
				if r.emitter != nil {
					r.emitter.GameFinished(runID, g)
				}
			}
		}

		report.AddMatchup(result)
		log.Info().Msgf("completed matchup %d of %d: %s %d - %d %s (%d ties)",
			mi+1, len(matchups), result.Matrix1, result.Matrix1Wins,
			result.Matrix2Wins, result.Matrix2, result.Ties)
	}

	report.Finish()
	log.Info().Msgf("completed tournament %s: %d games in %.1fs",
		runID, report.TotalGames(), report.Duration().Seconds())

	if r.emitter != nil {
		r.emitter.TournamentFinished(runID, report)
	}
	return report, nil
}

// playGame runs one game with first opening on the X side under its own
// weights and second answering on the O side under its weights. Under a
// fixed seed each game draws from its own stream, offset by its position
// in the run, so iterations differ while the run stays reproducible.
func (r *Runner) playGame(first, second Matrix, gameIndex uint64) (GameResult, error) {
	options := []engine.MatchOption{engine.WithTimeout(r.timeout)}
	if r.config.Randomized {
		selectorOptions := []searcher.Option{searcher.WithRandomized(true)}
		if r.seeded {
			selectorOptions = append(selectorOptions, searcher.WithSeed(r.seed+gameIndex))
		}
		options = append(options, engine.WithMatchSelector(searcher.New(selectorOptions...)))
	}

	match := engine.NewMatch(first.Weights, second.Weights, options...)
	res, err := match.Play()
	if err != nil {
		return GameResult{}, err
	}

	return GameResult{
		Player1:  first.Label,
		Player2:  second.Label,
		Winner:   winnerValue(res),
		Moves:    res.Moves,
		Duration: res.Duration,
		Final:    res.Final.String(),
		When:     time.Now(),
	}, nil
}

// winnerValue maps the board-level winner onto playing order: the X
// side always belongs to player1.
func winnerValue(res engine.MatchResult) string {
	switch res.Winner {
	case game.Human:
		return WinnerPlayer1
	case game.Machine:
		return WinnerPlayer2
	default:
		return WinnerTie
	}
}
