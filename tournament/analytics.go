package tournament

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Analytics streams tournament events to Kafka. Like the Store it is
// optional; a nil *Analytics is a valid no-op emitter, so callers can
// wire it unconditionally.
type Analytics struct {
	writer *kafka.Writer
}

// DefaultAnalyticsTopic is used when the caller does not pick one.
const DefaultAnalyticsTopic = "tournament-events"

func NewAnalytics(broker, topic string) *Analytics {
	if topic == "" {
		topic = DefaultAnalyticsTopic
	}
	return &Analytics{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(broker),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// GameFinished implements EventEmitter.
func (a *Analytics) GameFinished(runID string, g GameResult) {
	a.emit("game_finished", map[string]any{
		"run_id":      runID,
		"player1":     g.Player1,
		"player2":     g.Player2,
		"winner":      g.Winner,
		"moves":       g.Moves,
		"duration_ms": g.Duration.Milliseconds(),
	})
}

// TournamentFinished implements EventEmitter.
func (a *Analytics) TournamentFinished(runID string, r *Report) {
	a.emit("tournament_finished", map[string]any{
		"run_id":           runID,
		"total_games":      r.TotalGames(),
		"duration_seconds": r.Duration().Seconds(),
		"matrices":         len(r.Config.Matrices),
	})
}

// emit is fire-and-forget: a broker outage costs the event, never the
// tournament.
func (a *Analytics) emit(event string, payload map[string]any) {
	if a == nil || a.writer == nil {
		return
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC()
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.writer.WriteMessages(ctx, kafka.Message{Value: data}); err != nil {
		log.Warn().Err(err).Msgf("failed to emit %s event", event)
	}
}

func (a *Analytics) Close() error {
	if a == nil || a.writer == nil {
		return nil
	}
	return a.writer.Close()
}
