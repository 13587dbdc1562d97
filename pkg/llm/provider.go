package llm

import (
	"context"
)

// Message roles in the provider-agnostic format.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a tool invocation requested by the model. ID is provider
// assigned (Anthropic) and may be empty for providers without call ids.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]interface{}
}

// Message represents a chat message in a provider-agnostic format.
// Assistant messages may carry tool calls; tool messages carry the result
// of executing one call (matched by ToolCallID where the provider uses ids).
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	ToolName   string
}

// ToolDefinition declares a callable tool to the model. InputSchema is a
// JSON-schema object describing the arguments.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
}

// Response is one model turn: final text, or a set of tool calls, or both.
type Response struct {
	Content    string
	ToolCalls  []ToolCall
	StopReason string
}

// HasToolCalls reports whether the model asked for tool execution this turn.
func (r *Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	System      string
	Tools       []ToolDefinition
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystem(system string) Option {
	return func(o *Options) {
		o.System = system
	}
}

func WithTools(tools []ToolDefinition) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response,
	// which may contain tool calls when tools were declared.
	Chat(ctx context.Context, history []Message, options ...Option) (*Response, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
