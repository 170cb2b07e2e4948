package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/maestro/internal/config"
	"github.com/tessellate-ai/maestro/internal/state"
	"github.com/tessellate-ai/maestro/internal/supervisor"
)

var askQuiet bool

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Run a single request and print the answer",
	Long: `Run one request through the agent team and print the assembled answer.

The request is planned into steps, each step is executed by its specialist,
and reviewed steps go through the critic before being accepted. Progress is
printed as steps execute; use --quiet to print only the final answer.

The turn is recorded in the session history (see 'maestro history').`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askQuiet, "quiet", "q", false, "Print only the final answer")
}

func runAsk(cmd *cobra.Command, args []string) error {
	userInput := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Supervisor.TurnTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Supervisor.TurnTimeout)
		defer cancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if !askQuiet {
		go printEvents(rt.supervisor.Events())
	}

	st, err := rt.supervisor.Invoke(ctx, userInput)
	if err != nil {
		return fmt.Errorf("run turn: %w", err)
	}

	response := supervisor.AssembleResponse(st)
	fmt.Println(response)

	saveTurn(rt, st, userInput, response)

	if !askQuiet {
		in, out, calls := rt.client.Tracker().Totals()
		fmt.Fprintf(os.Stderr, "\n%s %d calls, %d in / %d out tokens\n",
			color.New(color.Faint).Sprint("usage:"), calls, in, out)
	}
	return nil
}

// printEvents renders supervisor progress to stderr as steps execute.
func printEvents(events <-chan supervisor.Event) {
	stepColor := color.New(color.FgCyan)
	retryColor := color.New(color.FgYellow)
	doneColor := color.New(color.FgGreen)

	for e := range events {
		switch e.Type {
		case supervisor.EventStepStarted:
			stepColor.Fprintf(os.Stderr, "→ %s working on %s (attempt %d)\n", e.Agent, e.StepID, e.Attempt)
		case supervisor.EventReviewStarted:
			stepColor.Fprintf(os.Stderr, "→ critic reviewing %s\n", e.StepID)
		case supervisor.EventStepRetrying:
			retryColor.Fprintf(os.Stderr, "↻ %s rejected, retrying\n", e.StepID)
		case supervisor.EventStepFinalized:
			doneColor.Fprintf(os.Stderr, "✓ %s finalized\n", e.StepID)
		}
	}
}

// saveTurn records a completed turn in the history store. Failures are
// reported but do not fail the command; the answer was already printed.
func saveTurn(rt *runtime, st *supervisor.ExecutionState, userInput, response string) {
	planJSON := ""
	if data, err := json.Marshal(st.Plan); err == nil {
		planJSON = string(data)
	}

	err := rt.db.SaveTurn(&state.Turn{
		SessionID:     rootSession,
		CorrelationID: st.CorrelationID.String(),
		UserInput:     userInput,
		Response:      response,
		PlanJSON:      planJSON,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save turn: %v\n", err)
	}
}
