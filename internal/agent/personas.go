package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tessellate-ai/maestro/pkg/models"
)

// Personas maps agent names to persona text used in their system prompts.
type Personas map[models.AgentName]string

// DefaultPersonas returns the built-in persona set.
func DefaultPersonas() Personas {
	return Personas{
		models.AgentResearcher: "You are a meticulous Research Specialist. You excel at finding precise, current information " +
			"on the web and synthesizing findings into clear summaries with sources.",
		models.AgentCoder: "You are a Senior Software Engineer and System Administrator. You specialize in " +
			"operating system interaction, file management, and writing clean, executable code.",
		models.AgentWriter: "You are a versatile AI Assistant and Technical Writer. You excel at both clear, structured " +
			"documentation and friendly, concise conversational replies. Adapt your tone to the task.",
		models.AgentCritic: "You are a strict Quality Assurance Critic. Your job is to review the outputs of other agents " +
			"against their instructions and constraints. You reject sloppy work, point out missing requirements, " +
			"and approve only high-quality results.",
	}
}

// LoadPersonas reads persona overrides from a YAML file and merges them over
// the defaults. An empty path returns the defaults unchanged.
//
// File format:
//
//	researcher: "persona text"
//	writer: "persona text"
func LoadPersonas(path string) (Personas, error) {
	personas := DefaultPersonas()
	if path == "" {
		return personas, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personas file: %w", err)
	}

	overrides := map[string]string{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse personas file: %w", err)
	}

	for name, persona := range overrides {
		agentName := models.AgentName(name)
		if !agentName.Valid() {
			return nil, fmt.Errorf("personas file references unknown agent %q", name)
		}
		if persona != "" {
			personas[agentName] = persona
		}
	}

	return personas, nil
}

// For returns the persona for the given agent, falling back to the default
// set when the map has no entry.
func (p Personas) For(name models.AgentName) string {
	if persona, ok := p[name]; ok && persona != "" {
		return persona
	}
	return DefaultPersonas()[name]
}
