package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/maestro/internal/config"
	"github.com/tessellate-ai/maestro/internal/state"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [session]",
	Short: "Show conversation history",
	Long: `Show past turns for a session.

Without arguments, lists the known sessions. With a session ID, prints that
session's turns oldest first. Use --limit to cap the number of turns shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of turns to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := state.Open(filepath.Join(cfg.Paths.DataDir, "maestro.db"))
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if len(args) == 0 {
		return listSessions(db)
	}
	return listTurns(db, args[0])
}

func listSessions(db *state.DB) error {
	sessions, err := db.Sessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return nil
	}

	for _, id := range sessions {
		fmt.Println(id)
	}
	return nil
}

func listTurns(db *state.DB, sessionID string) error {
	turns, err := db.History(sessionID, historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(turns) == 0 {
		fmt.Fprintf(os.Stderr, "No turns for session %q.\n", sessionID)
		return nil
	}

	userColor := color.New(color.FgCyan, color.Bold)
	timeColor := color.New(color.Faint)

	for _, t := range turns {
		timeColor.Printf("[%s]\n", t.CreatedAt.Format("2006-01-02 15:04"))
		userColor.Printf("You: ")
		fmt.Println(t.UserInput)
		fmt.Printf("Maestro: %s\n\n", t.Response)
	}
	return nil
}
