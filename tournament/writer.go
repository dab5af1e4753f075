package tournament

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Writer renders a tournament report to disk. Each writer owns a
// timestamped directory under the output root, so repeated runs never
// clobber each other.
type Writer struct {
	baseDir string
}

func NewWriter(outputDir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	baseDir := filepath.Join(outputDir, "tournament_"+timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir is the directory this writer's files land in.
func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteAll renders the report in every requested format.
func (w *Writer) WriteAll(report *Report, formats []string) error {
	for _, format := range formats {
		var err error
		switch format {
		case "csv":
			err = w.WriteCSV(report)
		case "json":
			err = w.WriteJSON(report)
		case "text":
			err = w.WriteText(report)
		default:
			err = fmt.Errorf("unknown report format %q", format)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes the spreadsheet-friendly files: matchup results,
// rankings, every individual game, and a one-row run summary.
func (w *Writer) WriteCSV(report *Report) error {
	if err := w.writeMatchupsCSV(report); err != nil {
		return err
	}
	if err := w.writeRankingsCSV(report); err != nil {
		return err
	}
	if err := w.writeGamesCSV(report); err != nil {
		return err
	}
	return w.writeSummaryCSV(report)
}

func (w *Writer) writeMatchupsCSV(report *Report) error {
	f, err := os.Create(filepath.Join(w.baseDir, "matchup_results.csv"))
	if err != nil {
		return fmt.Errorf("failed to create matchup results file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"matrix1_label", "matrix2_label", "total_games",
		"matrix1_wins", "matrix2_wins", "ties",
		"matrix1_win_rate", "matrix2_win_rate", "tie_rate",
		"matrix1_as_first_wins", "matrix2_as_first_wins",
		"average_game_duration", "average_move_count", "first_player_advantage",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write matchup header: %w", err)
	}

	for _, m := range report.Matchups {
		row := []string{
			m.Matrix1,
			m.Matrix2,
			strconv.Itoa(m.Games),
			strconv.Itoa(m.Matrix1Wins),
			strconv.Itoa(m.Matrix2Wins),
			strconv.Itoa(m.Ties),
			fmt.Sprintf("%.4f", m.Matrix1WinRate()),
			fmt.Sprintf("%.4f", m.Matrix2WinRate()),
			fmt.Sprintf("%.4f", m.TieRate()),
			strconv.Itoa(m.Matrix1FirstWins),
			strconv.Itoa(m.Matrix2FirstWins),
			fmt.Sprintf("%.3f", m.AverageDuration().Seconds()),
			fmt.Sprintf("%.2f", m.AverageMoves()),
			fmt.Sprintf("%.6f", m.FirstPlayerAdvantage()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write matchup row: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeRankingsCSV(report *Report) error {
	f, err := os.Create(filepath.Join(w.baseDir, "matrix_rankings.csv"))
	if err != nil {
		return fmt.Errorf("failed to create rankings file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"rank", "matrix_label", "win_rate", "total_wins",
		"total_losses", "total_ties", "total_games", "description",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write rankings header: %w", err)
	}

	for _, rank := range report.Rankings() {
		row := []string{
			strconv.Itoa(rank.Rank),
			rank.Label,
			fmt.Sprintf("%.4f", rank.WinRate),
			strconv.Itoa(rank.Wins),
			strconv.Itoa(rank.Losses),
			strconv.Itoa(rank.Ties),
			strconv.Itoa(rank.Games),
			rank.Description,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write rankings row: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeGamesCSV(report *Report) error {
	f, err := os.Create(filepath.Join(w.baseDir, "individual_games.csv"))
	if err != nil {
		return fmt.Errorf("failed to create games file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"game", "player1", "player2", "winner", "moves",
		"duration", "final_board", "finished_at",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write games header: %w", err)
	}

	for i, g := range report.Games {
		row := []string{
			strconv.Itoa(i + 1),
			g.Player1,
			g.Player2,
			g.Winner,
			strconv.Itoa(g.Moves),
			g.Duration.String(),
			g.Final,
			g.When.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game row: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeSummaryCSV(report *Report) error {
	f, err := os.Create(filepath.Join(w.baseDir, "tournament_summary.csv"))
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"run_id", "matrices", "iterations", "randomized", "total_games",
		"started", "finished", "duration_seconds", "games_per_hour",
		"first_player_advantage",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	row := []string{
		report.ID,
		strconv.Itoa(len(report.Config.Matrices)),
		strconv.Itoa(report.Config.Iterations),
		strconv.FormatBool(report.Config.Randomized),
		strconv.Itoa(report.TotalGames()),
		report.Started.Format(time.RFC3339),
		report.Finished.Format(time.RFC3339),
		fmt.Sprintf("%.3f", report.Duration().Seconds()),
		fmt.Sprintf("%.1f", report.GamesPerHour()),
		fmt.Sprintf("%.6f", report.FirstPlayerAdvantage()),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write summary row: %w", err)
	}
	return nil
}

// jsonReport is the machine-readable report document.
type jsonReport struct {
	RunID        string            `json:"run_id"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Config       jsonConfig        `json:"config"`
	Started      time.Time         `json:"started"`
	Finished     time.Time         `json:"finished"`
	DurationSecs float64           `json:"duration_seconds"`
	TotalGames   int               `json:"total_games"`
	GamesPerHour float64           `json:"games_per_hour"`
	FirstAdvtg   float64           `json:"first_player_advantage"`
	Rankings     []jsonRanking     `json:"rankings"`
	Matchups     []jsonMatchup     `json:"matchups"`
}

type jsonConfig struct {
	Matrices   []string `json:"matrices"`
	Iterations int      `json:"iterations"`
	Randomized bool     `json:"randomized"`
	ConfigPath string   `json:"config_path,omitempty"`
}

type jsonRanking struct {
	Rank        int     `json:"rank"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Ties        int     `json:"ties"`
	WinRate     float64 `json:"win_rate"`
}

type jsonMatchup struct {
	Matrix1          string  `json:"matrix1"`
	Matrix2          string  `json:"matrix2"`
	Games            int     `json:"games"`
	Matrix1Wins      int     `json:"matrix1_wins"`
	Matrix2Wins      int     `json:"matrix2_wins"`
	Ties             int     `json:"ties"`
	Matrix1WinRate   float64 `json:"matrix1_win_rate"`
	Matrix2WinRate   float64 `json:"matrix2_win_rate"`
	TieRate          float64 `json:"tie_rate"`
	Matrix1FirstWins int     `json:"matrix1_as_first_wins"`
	Matrix2FirstWins int     `json:"matrix2_as_first_wins"`
	AverageMoves     float64 `json:"average_move_count"`
	AverageDuration  float64 `json:"average_game_duration"`
	FirstAdvtg       float64 `json:"first_player_advantage"`
}

// WriteJSON writes the full report as one JSON document.
func (w *Writer) WriteJSON(report *Report) error {
	labels := make([]string, len(report.Config.Matrices))
	for i, m := range report.Config.Matrices {
		labels[i] = m.Label
	}

	doc := jsonReport{
		RunID:        report.ID,
		GeneratedAt:  time.Now().UTC(),
		Config: jsonConfig{
			Matrices:   labels,
			Iterations: report.Config.Iterations,
			Randomized: report.Config.Randomized,
			ConfigPath: report.Config.ConfigPath,
		},
		Started:      report.Started,
		Finished:     report.Finished,
		DurationSecs: report.Duration().Seconds(),
		TotalGames:   report.TotalGames(),
		GamesPerHour: report.GamesPerHour(),
		FirstAdvtg:   report.FirstPlayerAdvantage(),
	}
	for _, rank := range report.Rankings() {
		doc.Rankings = append(doc.Rankings, jsonRanking{
			Rank:        rank.Rank,
			Label:       rank.Label,
			Description: rank.Description,
			Games:       rank.Games,
			Wins:        rank.Wins,
			Losses:      rank.Losses,
			Ties:        rank.Ties,
			WinRate:     rank.WinRate,
		})
	}
	for _, m := range report.Matchups {
		doc.Matchups = append(doc.Matchups, jsonMatchup{
			Matrix1:          m.Matrix1,
			Matrix2:          m.Matrix2,
			Games:            m.Games,
			Matrix1Wins:      m.Matrix1Wins,
			Matrix2Wins:      m.Matrix2Wins,
			Ties:             m.Ties,
			Matrix1WinRate:   m.Matrix1WinRate(),
			Matrix2WinRate:   m.Matrix2WinRate(),
			TieRate:          m.TieRate(),
			Matrix1FirstWins: m.Matrix1FirstWins,
			Matrix2FirstWins: m.Matrix2FirstWins,
			AverageMoves:     m.AverageMoves(),
			AverageDuration:  m.AverageDuration().Seconds(),
			FirstAdvtg:       m.FirstPlayerAdvantage(),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	path := filepath.Join(w.baseDir, "tournament_report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

const textWidth = 80

// WriteText writes the human-readable report plus a short summary file.
func (w *Writer) WriteText(report *Report) error {
	full := w.formatText(report)
	path := filepath.Join(w.baseDir, "tournament_report.txt")
	if err := os.WriteFile(path, []byte(full), 0644); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}

	path = filepath.Join(w.baseDir, "tournament_summary.txt")
	if err := os.WriteFile(path, []byte(report.Summary()), 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

func (w *Writer) formatText(report *Report) string {
	var b strings.Builder
	separator := strings.Repeat("=", textWidth)

	fmt.Fprintf(&b, "%s\n", separator)
	fmt.Fprintf(&b, "%s\n", center("TOURNAMENT RESULTS REPORT", textWidth))
	fmt.Fprintf(&b, "%s\n\n", separator)

	fmt.Fprintf(&b, "Run ID:             %s\n", report.ID)
	fmt.Fprintf(&b, "Started:            %s\n", report.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "Finished:           %s\n", report.Finished.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration:           %.1f seconds\n", report.Duration().Seconds())
	fmt.Fprintf(&b, "Matrices:           %d\n", len(report.Config.Matrices))
	fmt.Fprintf(&b, "Games per Matchup:  %d per playing order\n", report.Config.Iterations)
	fmt.Fprintf(&b, "Randomized:         %t\n", report.Config.Randomized)
	fmt.Fprintf(&b, "Total Games:        %d\n", report.TotalGames())
	fmt.Fprintf(&b, "Games per Hour:     %.1f\n\n", report.GamesPerHour())

	fmt.Fprintf(&b, "MATRIX RANKINGS\n%s\n", strings.Repeat("-", textWidth))
	fmt.Fprintf(&b, "%-4s %-20s %-10s %6s %6s %6s %6s\n",
		"Rank", "Matrix", "Win Rate", "Wins", "Losses", "Ties", "Games")
	for _, rank := range report.Rankings() {
		fmt.Fprintf(&b, "%-4d %-20s %8.1f%% %6d %6d %6d %6d\n",
			rank.Rank, rank.Label, rank.WinRate*100,
			rank.Wins, rank.Losses, rank.Ties, rank.Games)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "MATCHUP DETAILS\n%s\n", strings.Repeat("-", textWidth))
	for _, m := range report.Matchups {
		fmt.Fprintf(&b, "%s vs %s\n", m.Matrix1, m.Matrix2)
		fmt.Fprintf(&b, "  Games: %d   %s: %d (%.1f%%)   %s: %d (%.1f%%)   Ties: %d (%.1f%%)\n",
			m.Games,
			m.Matrix1, m.Matrix1Wins, m.Matrix1WinRate()*100,
			m.Matrix2, m.Matrix2Wins, m.Matrix2WinRate()*100,
			m.Ties, m.TieRate()*100)
		fmt.Fprintf(&b, "  Avg moves: %.1f   Avg duration: %.3fs   First-player advantage: %+.3f\n\n",
			m.AverageMoves(), m.AverageDuration().Seconds(), m.FirstPlayerAdvantage())
	}

	fmt.Fprintf(&b, "PERFORMANCE ANALYSIS\n%s\n", strings.Repeat("-", textWidth))
	fmt.Fprintf(&b, "Overall first-player advantage: %+.3f\n", report.FirstPlayerAdvantage())
	fmt.Fprintf(&b, "(positive values mean the opening side won more than half its games)\n\n")

	fmt.Fprintf(&b, "%s\n", separator)
	fmt.Fprintf(&b, "Generated at %s\n", time.Now().UTC().Format(time.RFC3339))
	return b.String()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
