package models

// AgentName identifies a registered specialist agent.
type AgentName string

const (
	// AgentResearcher performs web search and information gathering.
	AgentResearcher AgentName = "researcher"
	// AgentCoder performs system operations and code generation.
	AgentCoder AgentName = "coder"
	// AgentWriter performs synthesis, documentation, and conversational replies.
	AgentWriter AgentName = "writer"
	// AgentCritic reviews another agent's output against its instruction.
	AgentCritic AgentName = "critic"
)

// Valid returns true if the name is a known specialist.
func (n AgentName) Valid() bool {
	switch n {
	case AgentResearcher, AgentCoder, AgentWriter, AgentCritic:
		return true
	default:
		return false
	}
}

// ExecutionStep is one unit of work assigned to a specialist agent.
type ExecutionStep struct {
	// StepID is the identifier for this step, unique within a plan.
	StepID string `json:"step_id"`
	// Agent is the specialist that executes this step.
	Agent AgentName `json:"agent"`
	// Intent is a short tag describing the task category (research, reply, ...).
	Intent string `json:"intent"`
	// Instruction is the natural-language task description.
	Instruction string `json:"instruction"`
	// DependsOn lists step IDs this step builds on. Execution is strictly
	// sequential by plan order; dependencies are informational for the planner.
	DependsOn []string `json:"depends_on,omitempty"`
	// RequiresReview indicates a critic must approve the output before the
	// step counts as done.
	RequiresReview bool `json:"requires_review"`
}

// ExecutionPlan is the ordered sequence of steps produced once per user turn.
// Step order is the execution order. A plan is immutable once created.
type ExecutionPlan struct {
	// Steps are executed sequentially by index.
	Steps []ExecutionStep `json:"steps"`
	// StrategyRationale explains why the planner chose this decomposition.
	StrategyRationale string `json:"strategy_rationale,omitempty"`
}

// Empty returns true if the plan has no actionable steps.
func (p *ExecutionPlan) Empty() bool {
	return p == nil || len(p.Steps) == 0
}
