// Package skill provides the callable tools specialists expose to the model.
package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tessellate-ai/maestro/internal/llm"
)

// Skill is one callable tool: a name, a declared argument schema, and an
// invocable body. Skills must be safe for concurrent use by independent turns.
type Skill interface {
	// Spec declares the tool to the model.
	Spec() llm.ToolSpec
	// Invoke executes the skill with model-supplied argument JSON.
	Invoke(ctx context.Context, input json.RawMessage) (string, error)
}

// Registry is the process-wide capability table mapping skill names to
// instances. It is constructed once at startup and read-only afterwards, so
// it may be shared by concurrent in-flight turns.
type Registry struct {
	skills map[string]Skill
}

// NewRegistry builds a registry from the given skills.
// Duplicate names are an error.
func NewRegistry(skills ...Skill) (*Registry, error) {
	r := &Registry{skills: make(map[string]Skill, len(skills))}
	for _, s := range skills {
		name := s.Spec().Name
		if _, exists := r.skills[name]; exists {
			return nil, fmt.Errorf("duplicate skill name %q", name)
		}
		r.skills[name] = s
	}
	return r, nil
}

// Get returns the skill with the given name.
func (r *Registry) Get(name string) (Skill, bool) {
	s, ok := r.skills[name]
	return s, ok
}

// Select returns the named skills in the given order.
// An unknown name is an error; wiring an agent to a missing skill is a
// configuration defect that must surface at startup, not mid-turn.
func (r *Registry) Select(names ...string) ([]Skill, error) {
	out := make([]Skill, 0, len(names))
	for _, name := range names {
		s, ok := r.skills[name]
		if !ok {
			return nil, fmt.Errorf("unknown skill %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// Names returns all registered skill names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.skills))
	for name := range r.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
