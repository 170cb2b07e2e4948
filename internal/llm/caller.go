package llm

import (
	"context"
	"encoding/json"
)

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser is a message sent to the model.
	RoleUser Role = "user"
	// RoleAssistant is a message produced by the model.
	RoleAssistant Role = "assistant"
)

// ToolSpec declares a callable tool the model may request.
type ToolSpec struct {
	// Name is the tool identifier the model uses in tool calls.
	Name string
	// Description tells the model what the tool does.
	Description string
	// Properties is the JSON-schema property map for the tool arguments.
	Properties map[string]interface{}
	// Required lists the mandatory argument names.
	Required []string
}

// ToolCall is a model request to invoke a named tool with arguments.
type ToolCall struct {
	// ID correlates the call with its result in the follow-up message.
	ID string
	// Name is the requested tool.
	Name string
	// Input is the model-supplied argument JSON.
	Input json.RawMessage
}

// ToolResult is the outcome of executing a requested tool call.
type ToolResult struct {
	// ID matches the originating ToolCall.
	ID string
	// Content is the tool output delivered back to the model.
	Content string
	// IsError marks the result as a tool failure.
	IsError bool
}

// Message is one turn of a model conversation. Assistant turns may carry tool
// calls; user turns may carry tool results.
type Message struct {
	Role        Role
	Text        string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// Request is a single completion request.
type Request struct {
	// System is the system prompt, empty for none.
	System string
	// Messages is the conversation so far, oldest first.
	Messages []Message
	// Tools are bound for this call; empty means no tool access.
	Tools []ToolSpec
	// MaxTokens caps the response length; 0 uses the client default.
	MaxTokens int64
}

// Completion is the model's reply to a Request.
type Completion struct {
	// Text is the concatenated text content.
	Text string
	// ToolCalls are the tool invocations the model requested, if any.
	ToolCalls []ToolCall
}

// Caller is the cognitive capability the agents depend on: given a prompt and
// a set of callable tools, produce either final text or tool-call requests.
type Caller interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}
