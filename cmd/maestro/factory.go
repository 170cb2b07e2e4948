package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/tessellate-ai/maestro/internal/agent"
	"github.com/tessellate-ai/maestro/internal/config"
	"github.com/tessellate-ai/maestro/internal/llm"
	"github.com/tessellate-ai/maestro/internal/planner"
	"github.com/tessellate-ai/maestro/internal/signals"
	"github.com/tessellate-ai/maestro/internal/skill"
	"github.com/tessellate-ai/maestro/internal/state"
	"github.com/tessellate-ai/maestro/internal/supervisor"
)

// runtime bundles the wired collaborators for one maestro process.
type runtime struct {
	cfg        *config.Config
	client     *llm.Client
	supervisor *supervisor.Supervisor
	db         *state.DB
	signals    *signals.Monitor
	logger     *supervisor.DebugLogger
}

// buildRuntime wires the full agent stack from configuration: LLM client,
// skills, personas, specialists, planner, supervisor, history store, and the
// stop-signal monitor.
func buildRuntime(cfg *config.Config) (*runtime, error) {
	apiKey, _, err := config.ResolveAPIKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w\n\nSet ANTHROPIC_API_KEY or run: maestro config anthropic.api_key <key>", err)
	}

	client, err := llm.NewClient(llm.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        apiKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}

	skills, err := skill.NewRegistry(
		skill.NewWebSearch(nil),
		skill.NewSystemInfo(),
		skill.NewFileOps(cfg.Paths.Workspace),
	)
	if err != nil {
		return nil, fmt.Errorf("build skill registry: %w", err)
	}

	personas := agent.DefaultPersonas()
	if cfg.Paths.Personas != "" {
		personas, err = agent.LoadPersonas(cfg.Paths.Personas)
		if err != nil {
			return nil, fmt.Errorf("load personas: %w", err)
		}
	}

	researcher, err := agent.NewResearcher(client, skills, personas)
	if err != nil {
		return nil, fmt.Errorf("create researcher: %w", err)
	}
	coder, err := agent.NewCoder(client, skills, personas)
	if err != nil {
		return nil, fmt.Errorf("create coder: %w", err)
	}
	agents := agent.NewRegistry(
		researcher,
		coder,
		agent.NewWriter(client, personas),
		agent.NewCritic(client, personas),
	)

	db, err := state.Open(filepath.Join(cfg.Paths.DataDir, "maestro.db"))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	monitor, err := newSignalMonitor(cfg.Paths.DataDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create signal monitor: %w", err)
	}

	logPath := rootDebugLog
	if logPath == "" {
		logPath = cfg.Supervisor.DebugLog
	}
	logger, err := supervisor.NewDebugLogger(logPath)
	if err != nil {
		monitor.Close()
		db.Close()
		return nil, fmt.Errorf("create debug logger: %w", err)
	}

	sup := supervisor.New(supervisor.Config{
		Planner:    planner.New(client),
		Agents:     agents,
		MaxRetries: cfg.Supervisor.MaxRetries,
		Logger:     logger,
		Signals:    monitor,
	})

	return &runtime{
		cfg:        cfg,
		client:     client,
		supervisor: sup,
		db:         db,
		signals:    monitor,
		logger:     logger,
	}, nil
}

// newSignalMonitor creates the signal monitor and discards signal files left
// over from a previous run, so a stale stop file cannot abort fresh turns.
func newSignalMonitor(dataDir string) (*signals.Monitor, error) {
	monitor, err := signals.NewMonitor(dataDir)
	if err != nil {
		return nil, err
	}
	if err := monitor.Clear(); err != nil {
		log.Printf("Warning: could not clear stale signal files: %v", err)
	}
	return monitor, nil
}

// Close releases the runtime's resources.
func (r *runtime) Close() {
	r.logger.Close()
	r.signals.Close()
	r.db.Close()
}
