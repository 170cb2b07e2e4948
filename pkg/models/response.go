package models

import (
	"sort"
	"strings"
)

// ResponseStatus is the outcome of a single agent invocation.
type ResponseStatus string

const (
	// StatusSuccess indicates the agent produced a usable result. For the
	// critic this means the reviewed output is approved.
	StatusSuccess ResponseStatus = "success"
	// StatusNeedsRework indicates the critic rejected the reviewed output.
	StatusNeedsRework ResponseStatus = "needs_rework"
)

// Valid returns true if the status is a known value.
func (s ResponseStatus) Valid() bool {
	return s == StatusSuccess || s == StatusNeedsRework
}

// Output key conventions shared by the specialists.
const (
	// OutputContent is the primary text result of a step.
	OutputContent = "content"
	// OutputSummary is the researcher's condensed findings.
	OutputSummary = "summary"
	// OutputCode is the coder's generated code.
	OutputCode = "code"
	// OutputDocument is the writer's produced document.
	OutputDocument = "document"
	// OutputFeedback is the critic's review text.
	OutputFeedback = "feedback"
	// OutputWarning is attached when a step is force-finalized after the
	// retry ceiling.
	OutputWarning = "warning"
)

// AgentResponse is the structured result of one agent invocation. Once a step
// finalizes, its response is stored in the execution state keyed by step ID.
type AgentResponse struct {
	// Status is success or needs_rework.
	Status ResponseStatus `json:"status"`
	// Output maps result keys (content, code, summary, ...) to values.
	Output map[string]string `json:"output"`
	// Confidence is the agent's self-reported confidence in [0, 1].
	Confidence float64 `json:"confidence"`
	// Notes carries auxiliary information, such as the critic feedback
	// recorded on a forced finalization.
	Notes string `json:"notes,omitempty"`
}

// PrimaryText returns the best user-facing text from the output: content,
// then summary, then all output values joined in key order.
func (r *AgentResponse) PrimaryText() string {
	if r == nil || len(r.Output) == 0 {
		return ""
	}
	if v, ok := r.Output[OutputContent]; ok && v != "" {
		return v
	}
	if v, ok := r.Output[OutputSummary]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(r.Output))
	for k := range r.Output {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if r.Output[k] != "" {
			parts = append(parts, r.Output[k])
		}
	}
	return strings.Join(parts, "\n")
}
