// Package planner turns a user utterance into an execution plan of
// specialist-agent steps.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tessellate-ai/maestro/internal/llm"
	"github.com/tessellate-ai/maestro/pkg/models"
)

// Planner produces execution plans via a cognitive call with a structured
// JSON contract and a manual fallback parse.
type Planner struct {
	caller llm.Caller
}

// New creates a Planner.
func New(caller llm.Caller) *Planner {
	return &Planner{caller: caller}
}

// Plan decomposes userText into an ordered plan of specialist steps. When the
// model output is ultimately unparseable, it returns a plan with an empty
// step list and an explanatory rationale rather than an error; the supervisor
// treats an empty plan as trivially done.
func (p *Planner) Plan(ctx context.Context, userText string) (*models.ExecutionPlan, error) {
	plan, err := p.request(ctx, userText, "")
	if err != nil {
		return nil, err
	}
	if plan == nil {
		// First parse failed; retry once with explicit format instructions.
		log.Printf("[planner] structured output parse failed, falling back to manual format prompt")
		plan, err = p.request(ctx, userText, formatInstructions)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return &models.ExecutionPlan{
				StrategyRationale: "Planner could not produce a structured plan for this request.",
			}, nil
		}
	}

	if err := Validate(plan); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	if plan.Empty() {
		return &models.ExecutionPlan{
			StrategyRationale: "No actionable steps found.",
		}, nil
	}

	return plan, nil
}

// request makes one planning call and attempts to parse the response.
// A nil plan with nil error means the response did not contain parseable JSON.
func (p *Planner) request(ctx context.Context, userText, extraInstructions string) (*models.ExecutionPlan, error) {
	messages := []llm.Message{
		{Role: llm.RoleUser, Text: userText},
	}
	if extraInstructions != "" {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Text: extraInstructions})
	}

	completion, err := p.caller.Complete(ctx, llm.Request{
		System:   planningPrompt,
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("planning call: %w", err)
	}

	plan, ok := extractPlan(completion.Text)
	if !ok {
		return nil, nil
	}
	return plan, nil
}

// extractPlan finds the outermost JSON object in the response and unmarshals
// it. Models sometimes wrap JSON in prose; take the widest braces.
func extractPlan(response string) (*models.ExecutionPlan, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}

	var plan models.ExecutionPlan
	if err := json.Unmarshal([]byte(response[start:end+1]), &plan); err != nil {
		return nil, false
	}
	return &plan, true
}
