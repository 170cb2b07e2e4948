package supervisor

import (
	"time"

	"github.com/tessellate-ai/maestro/pkg/models"
)

// EventType identifies a supervisor event.
type EventType string

const (
	// EventStepStarted indicates a specialist invocation began.
	EventStepStarted EventType = "step_started"
	// EventReviewStarted indicates a critic review began.
	EventReviewStarted EventType = "review_started"
	// EventStepRetrying indicates a step was rejected and will re-run.
	EventStepRetrying EventType = "step_retrying"
	// EventStepFinalized indicates a step's result was recorded.
	EventStepFinalized EventType = "step_finalized"
	// EventTurnDone indicates the whole plan reached the terminal phase.
	EventTurnDone EventType = "turn_done"
)

// Event is a progress notification emitted while a plan executes. Events are
// advisory; slow consumers may miss them.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// StepID is the related step, if any.
	StepID string
	// Agent is the specialist handling the step, if any.
	Agent models.AgentName
	// Attempt is the 1-based attempt number for execution events.
	Attempt int
	// Message provides additional context.
	Message string
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Events returns the supervisor's event channel.
func (s *Supervisor) Events() <-chan Event {
	return s.events
}

// emit sends an event without blocking; if the buffer is full the event is
// dropped rather than stalling the state machine.
func (s *Supervisor) emit(event Event) {
	event.Timestamp = time.Now()
	select {
	case s.events <- event:
	default:
	}
}
