package supervisor

import (
	"testing"

	"github.com/tessellate-ai/maestro/pkg/models"
)

func TestAssembleResponse(t *testing.T) {
	tests := []struct {
		name string
		st   *ExecutionState
		want string
	}{
		{
			name: "nil state",
			st:   nil,
			want: fallbackResponse,
		},
		{
			name: "empty plan",
			st: &ExecutionState{
				Plan:        &models.ExecutionPlan{},
				StepResults: map[string]*models.AgentResponse{},
			},
			want: fallbackResponse,
		},
		{
			name: "single step",
			st: &ExecutionState{
				Plan: &models.ExecutionPlan{Steps: []models.ExecutionStep{
					{StepID: "step1"},
				}},
				StepResults: map[string]*models.AgentResponse{
					"step1": {Output: map[string]string{models.OutputContent: "Hello!"}},
				},
			},
			want: "Hello!",
		},
		{
			name: "multiple steps join in plan order",
			st: &ExecutionState{
				Plan: &models.ExecutionPlan{Steps: []models.ExecutionStep{
					{StepID: "step1"},
					{StepID: "step2"},
				}},
				StepResults: map[string]*models.AgentResponse{
					"step2": {Output: map[string]string{models.OutputContent: "second"}},
					"step1": {Output: map[string]string{models.OutputContent: "first"}},
				},
			},
			want: "first\n\nsecond",
		},
		{
			name: "summary used when content missing",
			st: &ExecutionState{
				Plan: &models.ExecutionPlan{Steps: []models.ExecutionStep{
					{StepID: "step1"},
				}},
				StepResults: map[string]*models.AgentResponse{
					"step1": {Output: map[string]string{models.OutputSummary: "findings"}},
				},
			},
			want: "findings",
		},
		{
			name: "steps with no text fall back",
			st: &ExecutionState{
				Plan: &models.ExecutionPlan{Steps: []models.ExecutionStep{
					{StepID: "step1"},
				}},
				StepResults: map[string]*models.AgentResponse{
					"step1": {Output: map[string]string{}},
				},
			},
			want: fallbackResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssembleResponse(tt.st); got != tt.want {
				t.Errorf("AssembleResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}
