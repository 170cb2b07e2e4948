// Package agent implements the specialist agents coordinated by the
// supervisor: researcher, coder, writer, and critic.
package agent

import (
	"context"
	"sort"

	"github.com/tessellate-ai/maestro/pkg/models"
)

// Specialist is a stateless executor bound to a persona and a capability set.
// It consumes one task message and produces one structured response.
type Specialist interface {
	// Name returns the registered agent name.
	Name() models.AgentName
	// Run executes the agent logic for the received message.
	Run(ctx context.Context, msg *models.A2AMessage) (*models.AgentResponse, error)
}

// Capabilities describes what a specialist accepts and produces. The planner
// prompt is generated from these descriptors.
type Capabilities struct {
	// AcceptsIntents lists the task categories the agent handles.
	AcceptsIntents []string
	// Produces lists the output keys the agent emits.
	Produces []string
}

// Registry is the capability table mapping agent names to instances. It is
// built once at process start, injected into the supervisor, and read-only
// afterwards, so concurrent in-flight turns may share it.
type Registry struct {
	specialists map[models.AgentName]Specialist
}

// NewRegistry builds a registry from the given specialists.
// A later specialist with a duplicate name replaces the earlier one.
func NewRegistry(specialists ...Specialist) *Registry {
	r := &Registry{specialists: make(map[models.AgentName]Specialist, len(specialists))}
	for _, s := range specialists {
		r.specialists[s.Name()] = s
	}
	return r
}

// Lookup returns the specialist registered under name.
func (r *Registry) Lookup(name models.AgentName) (Specialist, bool) {
	s, ok := r.specialists[name]
	return s, ok
}

// Names returns all registered agent names, sorted.
func (r *Registry) Names() []models.AgentName {
	names := make([]models.AgentName, 0, len(r.specialists))
	for name := range r.specialists {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
