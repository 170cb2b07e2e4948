package planner

import (
	"fmt"
	"log"

	"github.com/tessellate-ai/maestro/pkg/models"
)

// Validate checks plan structure: unique step IDs, known agent names, and
// non-empty instructions. Dependency references are advisory only, since
// execution is strictly sequential by plan order, so a dangling depends_on
// entry is logged rather than rejected.
func Validate(plan *models.ExecutionPlan) error {
	seen := make(map[string]bool, len(plan.Steps))
	for i, step := range plan.Steps {
		if step.StepID == "" {
			return fmt.Errorf("step %d has no step_id", i)
		}
		if seen[step.StepID] {
			return fmt.Errorf("duplicate step_id %q", step.StepID)
		}
		seen[step.StepID] = true

		if !step.Agent.Valid() {
			return fmt.Errorf("step %q references unknown agent %q", step.StepID, step.Agent)
		}
		if step.Agent == models.AgentCritic {
			return fmt.Errorf("step %q schedules the critic; review is implicit", step.StepID)
		}
		if step.Instruction == "" {
			return fmt.Errorf("step %q has no instruction", step.StepID)
		}
	}

	for _, step := range plan.Steps {
		for _, dep := range step.DependsOn {
			if !seen[dep] {
				log.Printf("[planner] step %q declares unknown dependency %q (informational only)", step.StepID, dep)
			}
		}
	}

	return nil
}
