package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tessellate-ai/maestro/internal/config"
	"github.com/tessellate-ai/maestro/internal/supervisor"
	"github.com/tessellate-ai/maestro/internal/tui"
)

func runInteractive() error {
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

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Suppress log output while TUI is active
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	program, app := tui.NewChatProgram()

	// Forward supervisor progress into the TUI.
	go func() {
		for e := range rt.supervisor.Events() {
			program.Send(tui.SupervisorEventMsg{Event: e})
		}
	}()

	// Run each submitted turn async to avoid blocking the TUI.
	app.SetSubmitHandler(func(text string) {
		go func() {
			turnCtx := ctx
			var turnCancel context.CancelFunc
			if cfg.Supervisor.TurnTimeout > 0 {
				turnCtx, turnCancel = context.WithTimeout(ctx, cfg.Supervisor.TurnTimeout)
				defer turnCancel()
			}

			st, err := rt.supervisor.Invoke(turnCtx, text)
			if err != nil {
				// A consumed stop signal applies to this turn only.
				if errors.Is(err, supervisor.ErrStopped) {
					rt.signals.Clear()
				}
				program.Send(tui.TurnResultMsg{Err: err})
				return
			}

			response := supervisor.AssembleResponse(st)
			saveTurn(rt, st, text, response)
			program.Send(tui.TurnResultMsg{Response: response})
		}()
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
