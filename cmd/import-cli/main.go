// Package main implements an interactive client for validating PGN
// records locally. With a terminal it runs a readline REPL; with piped
// input it validates stdin and prints a summary.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"chessimport/internal/pgn"
)

// Terminal color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type session struct {
	lastGame *pgn.ValidatedGame
	lastFile string
}

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Piped mode: validate stdin, exit 1 on rejection
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
			os.Exit(1)
		}
		game, err := validate(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "rejected: %v\n", err)
			os.Exit(1)
		}
		printSummary(os.Stdout, game)
		return
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorYellow + "pgn > " + colorReset,
		HistoryFile:     ".import_cli_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", colorRed, err.Error(), colorReset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sPGN Import Client%s\n", colorCyan, colorReset)
	fmt.Printf("Type 'help' for commands\n\n")

	s := &session{}

	for {
		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		s.execute(line)
	}
}

func (s *session) execute(line string) {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "load":
		if len(args) != 1 {
			fail("usage: load <file>")
			return
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			fail(err.Error())
			return
		}
		game, err := validate(string(data))
		if err != nil {
			fail(fmt.Sprintf("rejected: %v", err))
			return
		}
		s.lastGame = game
		s.lastFile = args[0]
		fmt.Printf("%sok%s %s vs %s, %d plies\n",
			colorGreen, colorReset, game.Headers.White, game.Headers.Black, game.PlyCount)

	case "show":
		if s.lastGame == nil {
			fail("no game loaded")
			return
		}
		printSummary(os.Stdout, s.lastGame)

	case "moves":
		if s.lastGame == nil {
			fail("no game loaded")
			return
		}
		for i, san := range s.lastGame.Moves {
			if i%2 == 0 {
				fmt.Printf("%d. %s", i/2+1, san)
			} else {
				fmt.Printf(" %s\n", san)
			}
		}
		if len(s.lastGame.Moves)%2 == 1 {
			fmt.Println()
		}

	case "fen":
		if s.lastGame == nil {
			fail("no game loaded")
			return
		}
		fmt.Println(s.lastGame.FinalFEN)

	case "help":
		fmt.Print(`Commands:
  load <file>  validate a PGN file
  show         summary of the last validated game
  moves        move list of the last validated game
  fen          final position of the last validated game
  exit         quit
`)

	default:
		fail(fmt.Sprintf("unknown command: %s (try 'help')", cmd))
	}
}

func validate(text string) (*pgn.ValidatedGame, error) {
	parsed, err := pgn.Parse(text)
	if err != nil {
		return nil, err
	}
	return pgn.Validate(parsed)
}

func printSummary(w io.Writer, game *pgn.ValidatedGame) {
	if game.Headers.Event != "" {
		fmt.Fprintf(w, "Event:  %s\n", game.Headers.Event)
	}
	fmt.Fprintf(w, "White:  %s\n", game.Headers.White)
	fmt.Fprintf(w, "Black:  %s\n", game.Headers.Black)
	fmt.Fprintf(w, "Result: %s\n", game.Headers.Result)
	fmt.Fprintf(w, "Plies:  %d\n", game.PlyCount)
	fmt.Fprintf(w, "Final:  %s\n", game.FinalFEN)
}

func fail(msg string) {
	fmt.Printf("%s%s%s\n", colorRed, msg, colorReset)
}
