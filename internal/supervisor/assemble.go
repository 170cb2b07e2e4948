package supervisor

import "strings"

// fallbackResponse is shown when no step produced user-facing text.
const fallbackResponse = "I couldn't generate a specific response."

// AssembleResponse builds the user-facing answer from a completed turn:
// each step's primary text in plan order, blank-line separated. Steps missing
// from the results (which the state machine invariants preclude) are skipped.
func AssembleResponse(st *ExecutionState) string {
	if st == nil || st.Plan == nil {
		return fallbackResponse
	}

	var parts []string
	for _, step := range st.Plan.Steps {
		result, ok := st.StepResults[step.StepID]
		if !ok {
			continue
		}
		if text := result.PrimaryText(); text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return fallbackResponse
	}
	return strings.Join(parts, "\n\n")
}
