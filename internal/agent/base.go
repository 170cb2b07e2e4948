package agent

import (
	"context"
	"fmt"

	"github.com/tessellate-ai/maestro/internal/llm"
	"github.com/tessellate-ai/maestro/internal/skill"
	"github.com/tessellate-ai/maestro/pkg/models"
)

// FeedbackMarker prefixes critic feedback appended to a retried step's task
// content. The literal feedback text follows the marker verbatim so the agent
// sees exactly why the previous attempt was rejected.
const FeedbackMarker = "[CRITICAL FEEDBACK FROM PREVIOUS ATTEMPT]: "

// base carries the shared plumbing of every specialist: persona, cognitive
// caller, and bound skill subset.
type base struct {
	name    models.AgentName
	persona string
	caller  llm.Caller
	skills  []skill.Skill
}

// systemPrompt constructs the specialist's system prompt from its persona.
func (b *base) systemPrompt() string {
	return "PERSONA: " + b.persona + "\n\n" +
		"You are a specialized agent in the Maestro orchestration system. " +
		"Your goal is to fulfill the intent provided in the inbound message using your tools and expertise. " +
		"Always be concise and return structured, high-quality results."
}

// taskContent renders the inbound message into the user-visible task text,
// appending critic feedback verbatim when the step is a retry.
func (b *base) taskContent(msg *models.A2AMessage, task string) string {
	content := fmt.Sprintf("Request from: %s\nIntent: %s\nTask: %s", msg.FromAgent, msg.Intent, task)
	if msg.Payload.Feedback != "" {
		content += "\n\n" + FeedbackMarker + msg.Payload.Feedback
	}
	return content
}

// toolSpecs returns the specs of the agent's bound skills.
func (b *base) toolSpecs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(b.skills))
	for _, s := range b.skills {
		specs = append(specs, s.Spec())
	}
	return specs
}

// converse issues one cognitive call with the agent's tools bound. If the
// model requests tool invocations, each named tool is executed synchronously
// with the model-supplied arguments, the results are appended to the
// conversation, and one more cognitive call synthesizes the final answer.
//
// A model request for a tool outside the bound set fails loudly; silently
// skipping the call would hand the model a hole in the conversation.
func (b *base) converse(ctx context.Context, content string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleUser, Text: content},
	}

	completion, err := b.caller.Complete(ctx, llm.Request{
		System:   b.systemPrompt(),
		Messages: messages,
		Tools:    b.toolSpecs(),
	})
	if err != nil {
		return "", fmt.Errorf("%s: cognitive call: %w", b.name, err)
	}

	if len(completion.ToolCalls) == 0 {
		return completion.Text, nil
	}

	results := make([]llm.ToolResult, 0, len(completion.ToolCalls))
	for _, call := range completion.ToolCalls {
		s, ok := b.findSkill(call.Name)
		if !ok {
			return "", fmt.Errorf("%s: model requested unknown tool %q", b.name, call.Name)
		}

		output, err := s.Invoke(ctx, call.Input)
		if err != nil {
			results = append(results, llm.ToolResult{ID: call.ID, Content: err.Error(), IsError: true})
			continue
		}
		results = append(results, llm.ToolResult{ID: call.ID, Content: output})
	}

	messages = append(messages,
		llm.Message{Role: llm.RoleAssistant, Text: completion.Text, ToolCalls: completion.ToolCalls},
		llm.Message{Role: llm.RoleUser, Text: "Please synthesize the final answer from the tool results.", ToolResults: results},
	)

	// Synthesis call, no tools bound.
	final, err := b.caller.Complete(ctx, llm.Request{
		System:   b.systemPrompt(),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("%s: synthesis call: %w", b.name, err)
	}

	return final.Text, nil
}

// findSkill returns the bound skill with the given name.
func (b *base) findSkill(name string) (skill.Skill, bool) {
	for _, s := range b.skills {
		if s.Spec().Name == name {
			return s, true
		}
	}
	return nil, false
}
