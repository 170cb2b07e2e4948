package models

import (
	"errors"

	"github.com/google/uuid"
)

// ErrEmptyInstruction is returned when a task message has no instruction.
var ErrEmptyInstruction = errors.New("task message requires an instruction")

// ErrEmptyTarget is returned when a review message has no target output.
var ErrEmptyTarget = errors.New("review message requires a target output")

// Payload carries the per-intent fields of an agent-to-agent message.
// Each specialist reads the fields it understands and ignores the rest.
type Payload struct {
	// Instruction is the task description for the receiving agent.
	Instruction string `json:"instruction,omitempty"`
	// Feedback is critic feedback from a rejected prior attempt, verbatim.
	Feedback string `json:"feedback,omitempty"`
	// Query is an explicit search query for the researcher.
	Query string `json:"query,omitempty"`
	// TargetOutput is the content a critic should evaluate.
	TargetOutput string `json:"target_output,omitempty"`
	// BackgroundInfo is context material for the writer.
	BackgroundInfo string `json:"background_info,omitempty"`
}

// A2AMessage is one agent-to-agent message. Messages are created fresh per
// step invocation and are not persisted beyond the call.
type A2AMessage struct {
	// CorrelationID is shared by all messages in one plan's execution.
	CorrelationID uuid.UUID `json:"correlation_id"`
	// FromAgent is the sender (usually "supervisor").
	FromAgent string `json:"from_agent"`
	// ToAgent is the receiving specialist.
	ToAgent AgentName `json:"to_agent"`
	// Intent is the task category tag from the plan step.
	Intent string `json:"intent"`
	// Payload carries the task content.
	Payload Payload `json:"payload"`
	// Constraints holds optional criteria used by the critic.
	Constraints map[string]string `json:"constraints,omitempty"`
}

// NewTaskMessage builds a validated message instructing a specialist to
// execute a plan step. feedback, when non-empty, is delivered to the agent so
// a retried step sees why the previous attempt was rejected.
func NewTaskMessage(correlationID uuid.UUID, step ExecutionStep, instruction, feedback string) (*A2AMessage, error) {
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}
	return &A2AMessage{
		CorrelationID: correlationID,
		FromAgent:     "supervisor",
		ToAgent:       step.Agent,
		Intent:        step.Intent,
		Payload: Payload{
			Instruction: instruction,
			Feedback:    feedback,
		},
	}, nil
}

// NewReviewMessage builds a validated message asking the critic to evaluate
// target against the instruction the producing step was given.
func NewReviewMessage(correlationID uuid.UUID, step ExecutionStep, target string) (*A2AMessage, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}
	return &A2AMessage{
		CorrelationID: correlationID,
		FromAgent:     "supervisor",
		ToAgent:       AgentCritic,
		Intent:        "review",
		Payload: Payload{
			Instruction:  step.Instruction,
			TargetOutput: target,
		},
		Constraints: map[string]string{
			"criteria": "Check if output matches instruction and is high quality.",
		},
	}, nil
}
