package supervisor

import (
	"github.com/google/uuid"

	"github.com/tessellate-ai/maestro/pkg/models"
)

// Phase is a node of the plan-execution state machine.
type Phase int

const (
	// PhaseSupervise decides whether to execute the next step or finish.
	// It performs no work.
	PhaseSupervise Phase = iota
	// PhaseExecute invokes the specialist for the current step.
	PhaseExecute
	// PhaseReview invokes the critic on the current step's output.
	PhaseReview
	// PhaseDone is terminal: every step has finalized.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSupervise:
		return "supervise"
	case PhaseExecute:
		return "execute"
	case PhaseReview:
		return "review"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ExecutionState is the per-turn state owned exclusively by the supervisor
// while a plan runs. Turns are independent; no state is shared across them.
type ExecutionState struct {
	// Plan is the immutable plan for this turn.
	Plan *models.ExecutionPlan
	// StepResults maps step IDs to finalized responses. It is append-only
	// and gains exactly one entry per step, in execution order.
	StepResults map[string]*models.AgentResponse
	// CurrentStep indexes the step being executed. It only ever advances,
	// one step at a time, upon finalization of the step at that index.
	CurrentStep int
	// CorrelationID is shared by every message in this turn's execution.
	CorrelationID uuid.UUID
	// LastAgentOutput is scratch space holding the most recent
	// not-yet-finalized response, used between execution and review.
	LastAgentOutput *models.AgentResponse
	// RetryCount counts attempts on the current step since its last
	// rejection. It resets to zero whenever a step finalizes.
	RetryCount int
	// CriticFeedback is the feedback from the most recent rejection,
	// injected into the next retry's instruction. Cleared on finalization.
	CriticFeedback string
}

// newExecutionState builds the initial state for one turn.
func newExecutionState(plan *models.ExecutionPlan) *ExecutionState {
	return &ExecutionState{
		Plan:          plan,
		StepResults:   make(map[string]*models.AgentResponse),
		CorrelationID: uuid.New(),
	}
}
