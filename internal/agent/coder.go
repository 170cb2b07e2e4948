package agent

import (
	"context"
	"fmt"

	"github.com/tessellate-ai/maestro/internal/llm"
	"github.com/tessellate-ai/maestro/internal/skill"
	"github.com/tessellate-ai/maestro/pkg/models"
)

// Coder is the specialist for system operations and code generation.
type Coder struct {
	base
	capabilities Capabilities
}

// NewCoder creates a coder bound to the system-info and file-management skills.
func NewCoder(caller llm.Caller, skills *skill.Registry, personas Personas) (*Coder, error) {
	bound, err := skills.Select("get_system_info", "manage_files")
	if err != nil {
		return nil, fmt.Errorf("coder: %w", err)
	}
	return &Coder{
		base: base{
			name:    models.AgentCoder,
			persona: personas.For(models.AgentCoder),
			caller:  caller,
			skills:  bound,
		},
		capabilities: Capabilities{
			AcceptsIntents: []string{"code_generation", "refactor"},
			Produces:       []string{models.OutputContent, models.OutputCode},
		},
	}, nil
}

// Name implements Specialist.
func (c *Coder) Name() models.AgentName { return c.base.name }

// Capabilities returns the coder's capability descriptor.
func (c *Coder) Capabilities() Capabilities { return c.capabilities }

// Run implements Specialist.
func (c *Coder) Run(ctx context.Context, msg *models.A2AMessage) (*models.AgentResponse, error) {
	content, err := c.converse(ctx, c.taskContent(msg, msg.Payload.Instruction))
	if err != nil {
		return nil, err
	}

	return &models.AgentResponse{
		Status: models.StatusSuccess,
		Output: map[string]string{
			models.OutputContent: content,
			models.OutputCode:    content,
		},
		Confidence: 1.0,
	}, nil
}
