package agent

import (
	"context"
	"fmt"

	"github.com/tessellate-ai/maestro/internal/llm"
	"github.com/tessellate-ai/maestro/pkg/models"
)

// Writer is the specialist for synthesis, documentation, and conversational
// replies. Writers work from provided context and carry no tools.
type Writer struct {
	base
	capabilities Capabilities
}

// NewWriter creates a writer.
func NewWriter(caller llm.Caller, personas Personas) *Writer {
	return &Writer{
		base: base{
			name:    models.AgentWriter,
			persona: personas.For(models.AgentWriter),
			caller:  caller,
		},
		capabilities: Capabilities{
			AcceptsIntents: []string{"write", "summarize", "format", "reply"},
			Produces:       []string{models.OutputContent, models.OutputDocument},
		},
	}
}

// Name implements Specialist.
func (w *Writer) Name() models.AgentName { return w.base.name }

// Capabilities returns the writer's capability descriptor.
func (w *Writer) Capabilities() Capabilities { return w.capabilities }

// Run implements Specialist.
func (w *Writer) Run(ctx context.Context, msg *models.A2AMessage) (*models.AgentResponse, error) {
	background := msg.Payload.BackgroundInfo
	if background == "" {
		background = "No background provided."
	}

	content := fmt.Sprintf("Context from: %s\nBackground: %s\n\nTask: %s",
		msg.FromAgent, background, msg.Payload.Instruction)
	if msg.Payload.Feedback != "" {
		content += "\n\n" + FeedbackMarker + msg.Payload.Feedback
	}

	text, err := w.converse(ctx, content)
	if err != nil {
		return nil, err
	}

	return &models.AgentResponse{
		Status: models.StatusSuccess,
		Output: map[string]string{
			models.OutputContent:  text,
			models.OutputDocument: text,
		},
		Confidence: 1.0,
	}, nil
}
