// Command ttttourney runs a round-robin tournament between weight
// matrices loaded from a CSV roster and writes the reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tttt/tournament"
)

const (
	exitOK          = 0
	exitConfigError = 1
	exitRunError    = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the CSV roster of weight matrices (required)")
	iterations := flag.Int("iterations", 10, "games per matchup per playing order")
	randomized := flag.Bool("randomized", false, "break tied move scores at random")
	outputDir := flag.String("output-dir", "./tournament_results", "directory for report files")
	formats := flag.String("formats", "csv,json,text", "comma-separated report formats")
	gameTimeout := flag.Duration("game-timeout", 5*time.Minute, "abort any single game running longer than this")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("TOURNAMENT_POSTGRES_DSN"), "optional PostgreSQL DSN for persisting games")
	kafkaBroker := flag.String("kafka-broker", os.Getenv("TOURNAMENT_KAFKA_BROKER"), "optional Kafka broker for analytics events")
	kafkaTopic := flag.String("kafka-topic", tournament.DefaultAnalyticsTopic, "Kafka topic for analytics events")
	verbose := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "-config is required")
		flag.Usage()
		return exitConfigError
	}

	matrices, err := tournament.LoadMatrices(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load roster")
		return exitConfigError
	}

	cfg := tournament.Config{
		Matrices:   matrices,
		Iterations: *iterations,
		Randomized: *randomized,
		Formats:    splitFormats(*formats),
		ConfigPath: *configPath,
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid tournament configuration")
		return exitConfigError
	}

	log.Info().Msgf("tournament configuration: %d matrices, %d iterations per order, randomized=%t, formats=%s",
		len(cfg.Matrices), cfg.Iterations, cfg.Randomized, strings.Join(cfg.Formats, ","))
	log.Info().Msgf("%d games to play", cfg.TotalGames())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	options := []tournament.RunnerOption{tournament.WithGameTimeout(*gameTimeout)}

	if *postgresDSN != "" {
		store, err := tournament.OpenStore(ctx, *postgresDSN)
		if err != nil {
			log.Error().Err(err).Msg("failed to open results store")
			return exitRunError
		}
		defer store.Close()
		options = append(options, tournament.WithStore(store))
		log.Info().Msg("persisting games to PostgreSQL")
	}

	if *kafkaBroker != "" {
		analytics := tournament.NewAnalytics(*kafkaBroker, *kafkaTopic)
		defer analytics.Close()
		options = append(options, tournament.WithEmitter(analytics))
		log.Info().Msgf("emitting analytics events to %s", *kafkaBroker)
	}

	report, err := tournament.NewRunner(cfg, options...).Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("tournament failed")
		return exitRunError
	}

	writer, err := tournament.NewWriter(*outputDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to prepare report directory")
		return exitRunError
	}
	if err := writer.WriteAll(report, cfg.Formats); err != nil {
		log.Error().Err(err).Msg("failed to write reports")
		return exitRunError
	}
	log.Info().Msgf("reports written to %s", writer.Dir())

	fmt.Print(report.Summary())
	return exitOK
}

func splitFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
