// Command tttt is the console front end of the 4x4x4 four-in-a-row
// engine: an interactive game, a board evaluator, a board-string
// generator, and the single-move protocol the tournament tooling
// drives.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tttt/engine"
	"tttt/game"
	"tttt/searcher"
)

const version = "2.0.0"

func main() {
	play := flag.Bool("play", false, "play an interactive console game")
	eval := flag.String("eval", "", "print the score of a 64-character board string")
	gen := flag.Bool("gen", false, "build a board string from 1-based move lists")
	humanMoves := flag.String("human", "", `human move list for -gen, e.g. "1 22 43"`)
	machineMoves := flag.String("machine", "", "machine move list for -gen")
	turn := flag.String("turn", "", "make one move for side h or m and print it (tournament protocol)")
	board := flag.String("board", "", "board string for -turn")
	weights := flag.String("weights", "", "25 space-separated integers replacing the default weight matrix")
	randomized := flag.Bool("randomized", false, "break tied move scores at random")
	quiet := flag.Bool("quiet", false, "print protocol output only")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tttt %s\n", version)
		return
	}

	w := game.DefaultWeights()
	if *weights != "" {
		parsed, err := game.ParseWeights(*weights)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		w = parsed
	}

	switch {
	case *play:
		playInteractive(w, *randomized)
	case *eval != "":
		os.Exit(evaluateBoard(*eval, w, *quiet))
	case *gen:
		os.Exit(generateBoard(*humanMoves, *machineMoves))
	case *turn != "":
		os.Exit(playTurn(*turn, *board, w, *randomized, *quiet))
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func newSession(w game.Weights, randomized bool) *engine.Session {
	return engine.NewSession(
		engine.WithWeights(w),
		engine.WithSelector(searcher.New(searcher.WithRandomized(randomized))),
	)
}

// renderBoard prints the cube layer by layer, four 4x4 blocks from the
// top layer down.
func renderBoard(rep string) string {
	var b strings.Builder
	for layer := 0; layer < 4; layer++ {
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				b.WriteByte(rep[game.CellAt(layer, row, col)])
				b.WriteByte(' ')
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func printBoard(s *engine.Session) {
	fmt.Print(renderBoard(s.WinnerBoardString()))
	fmt.Println(s.BoardString())
}

// announceWinner reports a decided game. It returns true once the game
// is over.
func announceWinner(s *engine.Session) bool {
	switch s.Winner() {
	case game.Machine:
		fmt.Println("\nGame Over:  Machine Wins")
		return true
	case game.Human:
		fmt.Println("\nGame Over:  You Win")
		return true
	}
	if s.Board().Full() {
		fmt.Println("\nGame Over:  Draw")
		return true
	}
	return false
}

// playInteractive runs the console loop: the human enters 1-based cell
// numbers, the machine answers each move. Any non-numeric input quits.
func playInteractive(w game.Weights, randomized bool) {
	s := newSession(w, randomized)
	scanner := bufio.NewScanner(os.Stdin)
	printBoard(s)

	for {
		fmt.Println("\nEnter move (1-64), or any other char to quit.")
		if !scanner.Scan() {
			fmt.Println("Quitting...")
			return
		}
		move, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || move < 1 || move > game.Positions {
			fmt.Println("Quitting...")
			return
		}

		fmt.Printf("\nyour move is:  %d\n", move)
		if err := s.HumanMove(move - 1); err != nil {
			fmt.Printf("invalid move: cell %d is taken\n", move)
			continue
		}
		if done := announceWinner(s); done {
			printBoard(s)
			return
		}

		cell, err := s.MachineMove()
		if err != nil {
			// Board filled by the human's move.
			fmt.Println("\nGame Over:  Draw")
			printBoard(s)
			return
		}
		fmt.Printf("\ncomputer move is:  %d\n", cell+1)
		if done := announceWinner(s); done {
			printBoard(s)
			return
		}
		printBoard(s)
	}
}

func evaluateBoard(rep string, w game.Weights, quiet bool) int {
	s := newSession(w, false)
	value, err := s.EvaluateBoard(rep)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if quiet {
		fmt.Println(value)
		return 0
	}
	fmt.Printf("Board StringRep is: %s\n\n", rep)
	fmt.Printf("Board Value is: %d\n", value)
	return 0
}

// generateBoard converts 1-based move lists into a board string, a
// representation convenience with no game play involved.
func generateBoard(humanMoves, machineMoves string) int {
	var b game.Board
	if err := applyMoves(&b, humanMoves, game.Human); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := applyMoves(&b, machineMoves, game.Machine); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(b.String())
	return 0
}

func applyMoves(b *game.Board, list string, p game.Player) error {
	for _, field := range strings.Fields(list) {
		move, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("move %q is not a number", field)
		}
		if move < 1 || move > game.Positions {
			return fmt.Errorf("move %d out of range 1-64", move)
		}
		b[move-1] = p
	}
	return nil
}

// playTurn makes one move for the given side and prints the protocol
// line the tournament driver parses: "MOVE BOARD" for a live game, or
// "MOVE game_over" with the board on the next line once the move ends
// it.
func playTurn(side, rep string, w game.Weights, randomized, quiet bool) int {
	s := newSession(w, randomized)
	if err := s.SetBoardString(rep); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	s.RefreshWinner()

	var cell int
	var err error
	switch side {
	case "m":
		cell, err = s.MachineMove()
	case "h":
		cell, err = s.BestMove(game.Human)
		if err == nil {
			err = s.HumanMove(cell)
		}
	default:
		fmt.Fprintf(os.Stderr, "side must be h or m, got %q\n", side)
		return 1
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if s.Winner() != game.Nobody || s.Board().Full() {
		fmt.Printf("%d game_over\n%s\n", cell+1, s.BoardString())
	} else {
		fmt.Printf("%d %s\n", cell+1, s.BoardString())
	}
	if !quiet {
		fmt.Println()
		fmt.Print(renderBoard(s.WinnerBoardString()))
	}
	return 0
}
