package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	rootSession  string
	rootDebugLog string
)

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Multi-agent task orchestrator",
	Long: `Maestro routes your request through a team of specialist agents.

A planner decomposes the request into steps, a supervisor executes them in
order through the right specialist (researcher, coder, writer), and a critic
reviews the work before it is accepted.

With no arguments, launches interactive mode with a persistent chat TUI.

Core capabilities:
- Plans multi-step work from a single request
- Routes each step to a specialist agent with bound tools
- Reviews risky steps with a critic, retrying on rejection
- Persists conversation history per session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootSession, "session", "default", "Conversation session ID")
	rootCmd.PersistentFlags().StringVar(&rootDebugLog, "debug-log", "", "Write supervisor debug log to this file")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
