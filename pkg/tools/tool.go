package tools

import (
	"context"

	"course-rag-be/internal/entity"
	"course-rag-be/pkg/llm"
)

// Result is the outcome of one tool execution: the formatted text handed
// back to the model plus the citation sources for the final answer. Sources
// travel by value; tools hold no per-call state.
type Result struct {
	Content string
	Sources []entity.Source
}

// Tool is a capability the model may invoke during generation.
type Tool interface {
	Definition() llm.ToolDefinition
	Execute(ctx context.Context, args map[string]interface{}) (*Result, error)
}
