package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tessellate-ai/maestro/internal/llm"
	"github.com/tessellate-ai/maestro/pkg/models"
)

// rejectedToken is the literal the critic must emit to reject a review.
// Approval is the absence of this token; this is a lexical gate, not semantic
// parsing, and the critic prompt is written around it.
const rejectedToken = "REJECTED"

// Critic is the specialist for quality assurance. It reviews another agent's
// output against the original instruction and either approves or rejects it
// with feedback.
type Critic struct {
	base
	capabilities Capabilities
}

// NewCritic creates a critic.
func NewCritic(caller llm.Caller, personas Personas) *Critic {
	return &Critic{
		base: base{
			name:    models.AgentCritic,
			persona: personas.For(models.AgentCritic),
			caller:  caller,
		},
		capabilities: Capabilities{
			AcceptsIntents: []string{"review", "validate"},
			Produces:       []string{models.OutputFeedback},
		},
	}
}

// Name implements Specialist.
func (c *Critic) Name() models.AgentName { return c.base.name }

// Capabilities returns the critic's capability descriptor.
func (c *Critic) Capabilities() Capabilities { return c.capabilities }

// Run implements Specialist. Status is success when the review approves the
// target output and needs_rework when it rejects it.
func (c *Critic) Run(ctx context.Context, msg *models.A2AMessage) (*models.AgentResponse, error) {
	criteria := "none provided"
	if v, ok := msg.Constraints["criteria"]; ok && v != "" {
		criteria = v
	}

	content := fmt.Sprintf("Review request from: %s\n"+
		"Instruction the work was given: %s\n"+
		"Content to review: %s\n"+
		"Acceptance criteria: %s\n\n"+
		"Evaluate if the content meets the instruction and criteria. "+
		"Reply with 'APPROVED' or 'REJECTED' followed by your reasons.",
		msg.FromAgent, msg.Payload.Instruction, msg.Payload.TargetOutput, criteria)

	text, err := c.converse(ctx, content)
	if err != nil {
		return nil, err
	}

	status := models.StatusSuccess
	if strings.Contains(text, rejectedToken) {
		status = models.StatusNeedsRework
	}

	return &models.AgentResponse{
		Status: status,
		Output: map[string]string{
			models.OutputFeedback: text,
		},
		Confidence: 1.0,
	}, nil
}
