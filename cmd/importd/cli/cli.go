// FILE: cmd/importd/cli/cli.go
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"chessimport/internal/server/storage"
)

// Run is the entry point for the CLI mini-app
func Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, or query")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "query":
		return runQuery(args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func openStore(path string) (*storage.Store, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return storage.NewStore(path, false, logger.Sugar())
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := openStore(*path)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Printf("Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := openStore(*path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Printf("Database deleted: %s\n", *path)
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	player := fs.String("player", "", "Player name to filter (optional)")
	limit := fs.Int("limit", 50, "Maximum games to list")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := openStore(*path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	games, _, err := store.ListGames("", *limit, *player)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Println("No games found")
		return nil
	}

	// Print results in tabular format
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tWhite\tBlack\tResult\tPlies\tImported")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		imported := time.UnixMicro(g.ImportedAtUTC).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			g.GameID[:8], g.White, g.Black, g.Result, g.PlyCount, imported)
	}

	return w.Flush()
}
