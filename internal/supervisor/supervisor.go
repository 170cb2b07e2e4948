// Package supervisor drives one execution plan to completion: it routes each
// step to its specialist, runs critic reviews, manages retries, and assembles
// the turn's final state.
package supervisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tessellate-ai/maestro/internal/agent"
	"github.com/tessellate-ai/maestro/pkg/models"
)

// DefaultMaxRetries is the retry ceiling for a rejected step. Once reached,
// the step is force-finalized with a warning instead of looping forever.
const DefaultMaxRetries = 3

// forcedApprovalWarning is attached to a step's output when the retry
// ceiling is reached despite continued rejection.
const forcedApprovalWarning = "Critic validation failed after max retries. Moving forward."

// ErrStopped is returned when a stop signal aborts the turn between steps.
var ErrStopped = errors.New("stop signal received")

// Planner produces an execution plan for a user utterance.
type Planner interface {
	Plan(ctx context.Context, userText string) (*models.ExecutionPlan, error)
}

// ControlSignals reports externally raised run-control signals. The
// supervisor polls them between state transitions only; they never interrupt
// an in-flight specialist call. A stop signal aborts the turn; a pause
// signal holds it at the step boundary until the signal clears.
type ControlSignals interface {
	ShouldStop() bool
	Paused() bool
}

// pausePollInterval is how often a paused turn re-checks its signals.
const pausePollInterval = 100 * time.Millisecond

// Config contains the supervisor's collaborators.
type Config struct {
	// Planner turns user input into a plan. Required.
	Planner Planner
	// Agents is the specialist capability table. Required; must contain the
	// critic if any plan step requires review.
	Agents *agent.Registry
	// MaxRetries is the per-step retry ceiling. Zero uses DefaultMaxRetries.
	MaxRetries int
	// Logger receives per-turn debug logging. Nil disables it.
	Logger *DebugLogger
	// Signals optionally stops or pauses turns between steps. Nil disables it.
	Signals ControlSignals
}

// Supervisor owns the plan-execution state machine. It is safe for use by
// concurrent turns: all mutable state lives in the per-turn ExecutionState.
type Supervisor struct {
	planner    Planner
	agents     *agent.Registry
	maxRetries int
	logger     *DebugLogger
	signals    ControlSignals
	events     chan Event
}

// New creates a Supervisor.
func New(cfg Config) *Supervisor {
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger()
	}
	return &Supervisor{
		planner:    cfg.Planner,
		agents:     cfg.Agents,
		maxRetries: maxRetries,
		logger:     logger,
		signals:    cfg.Signals,
		events:     make(chan Event, 64),
	}
}

// Invoke runs one full user turn: plan, execute every step through the state
// machine, and return the final execution state. An error aborts the turn;
// steps finalized before the failure remain in the returned state only when
// the error is nil, so callers must treat an error as "no usable response".
func (s *Supervisor) Invoke(ctx context.Context, userInput string) (*ExecutionState, error) {
	plan, err := s.planner.Plan(ctx, userInput)
	if err != nil {
		return nil, fmt.Errorf("plan turn: %w", err)
	}

	st := newExecutionState(plan)
	s.logger.Log("turn %s: plan has %d steps (%s)", st.CorrelationID, len(plan.Steps), plan.StrategyRationale)

	if err := s.run(ctx, st); err != nil {
		return nil, err
	}

	s.emit(Event{Type: EventTurnDone, Message: fmt.Sprintf("%d steps finalized", len(st.StepResults))})
	s.logger.Log("turn %s: done, %d results", st.CorrelationID, len(st.StepResults))
	return st, nil
}

// run drives the state machine from SUPERVISE to DONE. Total step attempts
// are bounded by len(plan.Steps) * (maxRetries + 1).
func (s *Supervisor) run(ctx context.Context, st *ExecutionState) error {
	phase := PhaseSupervise
	for phase != PhaseDone {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.signals != nil {
			if s.signals.ShouldStop() {
				return ErrStopped
			}
			if err := s.waitWhilePaused(ctx, st); err != nil {
				return err
			}
		}

		var err error
		switch phase {
		case PhaseSupervise:
			phase = s.supervise(st)
		case PhaseExecute:
			phase, err = s.executeStep(ctx, st)
		case PhaseReview:
			phase, err = s.reviewStep(ctx, st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// waitWhilePaused blocks at the step boundary until the pause signal clears.
// A stop signal or context cancellation raised while paused aborts the wait.
func (s *Supervisor) waitWhilePaused(ctx context.Context, st *ExecutionState) error {
	if !s.signals.Paused() {
		return nil
	}
	s.logger.Log("turn %s: paused, waiting for resume", st.CorrelationID)

	for s.signals.Paused() {
		if s.signals.ShouldStop() {
			return ErrStopped
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pausePollInterval):
		}
	}

	s.logger.Log("turn %s: resumed", st.CorrelationID)
	return nil
}

// supervise is the decision-only node: finish when the step pointer has
// passed the last step, otherwise execute the step it points at.
func (s *Supervisor) supervise(st *ExecutionState) Phase {
	if st.CurrentStep >= len(st.Plan.Steps) {
		return PhaseDone
	}
	return PhaseExecute
}

// executeStep invokes the current step's specialist. Steps that skip review
// finalize immediately; reviewed steps hand their output to the critic.
func (s *Supervisor) executeStep(ctx context.Context, st *ExecutionState) (Phase, error) {
	step := st.Plan.Steps[st.CurrentStep]

	specialist, ok := s.agents.Lookup(step.Agent)
	if !ok {
		return PhaseDone, fmt.Errorf("step %q references unregistered agent %q", step.StepID, step.Agent)
	}

	instruction := step.Instruction
	if st.CriticFeedback != "" {
		instruction += "\n\n" + agent.FeedbackMarker + st.CriticFeedback
	}

	msg, err := models.NewTaskMessage(st.CorrelationID, step, instruction, st.CriticFeedback)
	if err != nil {
		return PhaseDone, fmt.Errorf("step %q: %w", step.StepID, err)
	}

	s.emit(Event{Type: EventStepStarted, StepID: step.StepID, Agent: step.Agent, Attempt: st.RetryCount + 1})
	s.logger.Log("turn %s: executing step %d/%d (%s, attempt %d)",
		st.CorrelationID, st.CurrentStep+1, len(st.Plan.Steps), step.Agent, st.RetryCount+1)

	response, err := specialist.Run(ctx, msg)
	if err != nil {
		return PhaseDone, fmt.Errorf("step %q (%s): %w", step.StepID, step.Agent, err)
	}
	st.LastAgentOutput = response

	if !step.RequiresReview {
		s.finalize(st, step, response, "")
		return PhaseSupervise, nil
	}
	return PhaseReview, nil
}

// reviewStep invokes the critic on the current step's output and routes the
// verdict: approve finalizes, reject retries until the ceiling, and a
// rejection at the ceiling force-finalizes with a warning.
func (s *Supervisor) reviewStep(ctx context.Context, st *ExecutionState) (Phase, error) {
	// Unreachable via a valid SUPERVISE transition; treat as a no-op rather
	// than indexing out of range.
	if st.CurrentStep >= len(st.Plan.Steps) {
		return PhaseSupervise, nil
	}
	step := st.Plan.Steps[st.CurrentStep]

	critic, ok := s.agents.Lookup(models.AgentCritic)
	if !ok {
		return PhaseDone, fmt.Errorf("step %q requires review but no critic is registered", step.StepID)
	}

	msg, err := models.NewReviewMessage(st.CorrelationID, step, formatForReview(st.LastAgentOutput))
	if err != nil {
		return PhaseDone, fmt.Errorf("step %q review: %w", step.StepID, err)
	}

	s.emit(Event{Type: EventReviewStarted, StepID: step.StepID, Agent: models.AgentCritic})
	s.logger.Log("turn %s: reviewing step %d/%d", st.CorrelationID, st.CurrentStep+1, len(st.Plan.Steps))

	verdict, err := critic.Run(ctx, msg)
	if err != nil {
		return PhaseDone, fmt.Errorf("step %q review: %w", step.StepID, err)
	}

	if verdict.Status == models.StatusSuccess {
		s.finalize(st, step, st.LastAgentOutput, "approved")
		return PhaseSupervise, nil
	}

	feedback := verdict.Output[models.OutputFeedback]
	if feedback == "" {
		feedback = "No specific feedback provided."
	}

	if st.RetryCount >= s.maxRetries {
		// Retry ceiling reached: accept the degraded output so the turn
		// cannot stall on a permanently-rejected step.
		forced := st.LastAgentOutput
		if forced.Output == nil {
			forced.Output = make(map[string]string)
		}
		forced.Output[models.OutputWarning] = forcedApprovalWarning
		forced.Notes = "Critic Feedback: " + feedback
		s.logger.Log("turn %s: step %q exhausted %d retries, forcing approval",
			st.CorrelationID, step.StepID, s.maxRetries)
		s.finalize(st, step, forced, "forced approval after max retries")
		return PhaseSupervise, nil
	}

	st.RetryCount++
	st.CriticFeedback = feedback
	s.emit(Event{Type: EventStepRetrying, StepID: step.StepID, Agent: step.Agent, Attempt: st.RetryCount, Message: feedback})
	s.logger.Log("turn %s: step %q rejected, retry %d/%d", st.CorrelationID, step.StepID, st.RetryCount, s.maxRetries)
	return PhaseExecute, nil
}

// finalize records the step's result and advances the step pointer. Every
// step passes through here exactly once, whether via approval, review skip,
// or forced approval.
func (s *Supervisor) finalize(st *ExecutionState, step models.ExecutionStep, response *models.AgentResponse, note string) {
	st.StepResults[step.StepID] = response
	st.CurrentStep++
	st.RetryCount = 0
	st.CriticFeedback = ""
	s.emit(Event{Type: EventStepFinalized, StepID: step.StepID, Agent: step.Agent, Message: note})
}

// formatForReview renders an agent response's output map as the review
// target handed to the critic.
func formatForReview(response *models.AgentResponse) string {
	if response == nil || len(response.Output) == 0 {
		return "(no output)"
	}
	data, err := json.Marshal(response.Output)
	if err != nil {
		return response.PrimaryText()
	}
	return string(data)
}
