package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tessellate-ai/maestro/internal/llm"
)

const (
	maxQueryLen = 500
	minQueryLen = 2
)

// Searcher performs a web search and returns formatted results.
// Implementations back the WebSearch skill with a concrete provider.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// WebSearch looks up current information on the internet. The provider is
// pluggable; the default simulates results for offline operation.
type WebSearch struct {
	provider Searcher
}

// NewWebSearch creates the web_search skill with the given provider.
// A nil provider falls back to simulated results.
func NewWebSearch(provider Searcher) *WebSearch {
	if provider == nil {
		provider = simulatedSearch{}
	}
	return &WebSearch{provider: provider}
}

// Spec implements Skill.
func (w *WebSearch) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name: "web_search",
		Description: "Search the internet for current information, recent news, or real-time data " +
			"the assistant doesn't know. Use for time-sensitive queries or topics " +
			"that require up-to-date information.",
		Properties: map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "The exact term or question to search for on the internet",
			},
		},
		Required: []string{"query"},
	}
}

// Invoke implements Skill.
func (w *WebSearch) Invoke(ctx context.Context, input json.RawMessage) (string, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return "", fmt.Errorf("invalid web_search parameters: %w", err)
	}

	if msg := validateQuery(params.Query); msg != "" {
		log.Printf("[skill] invalid search query %q: %s", params.Query, msg)
		return "Search error: " + msg, nil
	}

	return w.provider.Search(ctx, strings.TrimSpace(params.Query))
}

// validateQuery returns a non-empty message when the query is unusable.
func validateQuery(query string) string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "search query cannot be empty"
	}
	if len(trimmed) < minQueryLen {
		return "search query is too short, provide more specific terms"
	}
	if len(query) > maxQueryLen {
		return "search query is too long, shorten it"
	}
	return ""
}

// simulatedSearch returns canned topical results. It keeps the researcher
// usable offline and in tests; a production deployment swaps in a real
// provider via NewWebSearch.
type simulatedSearch struct{}

func (simulatedSearch) Search(_ context.Context, query string) (string, error) {
	patterns := []struct {
		keyword string
		result  string
	}{
		{"python", "Python 3.13 includes better error messages, interpreter performance improvements, and an enhanced type system."},
		{"weather", "Current weather information shows mild conditions across most regions. A real-time weather API would provide precise forecasts."},
		{"news", "Top stories cover technology advancements, global events, and economic developments from reputable news sources."},
		{"ai", "Recent AI developments include new language models, computer vision breakthroughs, and ongoing ethics discussions."},
	}

	lower := strings.ToLower(query)
	for _, p := range patterns {
		if strings.Contains(lower, p.keyword) {
			return fmt.Sprintf("Search results for %q: %s", query, p.result), nil
		}
	}

	return fmt.Sprintf("Search results for %q: found multiple relevant sources discussing this topic. "+
		"A production search provider would return current results with summaries and links.", query), nil
}
