package agent

import (
	"context"
	"fmt"

	"github.com/tessellate-ai/maestro/internal/llm"
	"github.com/tessellate-ai/maestro/internal/skill"
	"github.com/tessellate-ai/maestro/pkg/models"
)

// Researcher is the specialist for internet search and information gathering.
type Researcher struct {
	base
	capabilities Capabilities
}

// NewResearcher creates a researcher bound to the web_search skill.
func NewResearcher(caller llm.Caller, skills *skill.Registry, personas Personas) (*Researcher, error) {
	bound, err := skills.Select("web_search")
	if err != nil {
		return nil, fmt.Errorf("researcher: %w", err)
	}
	return &Researcher{
		base: base{
			name:    models.AgentResearcher,
			persona: personas.For(models.AgentResearcher),
			caller:  caller,
			skills:  bound,
		},
		capabilities: Capabilities{
			AcceptsIntents: []string{"research", "fact_check"},
			Produces:       []string{models.OutputContent, models.OutputSummary},
		},
	}, nil
}

// Name implements Specialist.
func (r *Researcher) Name() models.AgentName { return r.base.name }

// Capabilities returns the researcher's capability descriptor.
func (r *Researcher) Capabilities() Capabilities { return r.capabilities }

// Run implements Specialist. The query payload field takes precedence over
// the instruction; the supervisor commonly sends only an instruction.
func (r *Researcher) Run(ctx context.Context, msg *models.A2AMessage) (*models.AgentResponse, error) {
	task := msg.Payload.Query
	if task == "" {
		task = msg.Payload.Instruction
	}

	content, err := r.converse(ctx, r.taskContent(msg, task))
	if err != nil {
		return nil, err
	}

	return &models.AgentResponse{
		Status: models.StatusSuccess,
		Output: map[string]string{
			models.OutputContent: content,
			models.OutputSummary: content,
		},
		Confidence: 1.0,
	}, nil
}
