package tools

import (
	"context"
	"errors"
	"fmt"

	"course-rag-be/pkg/llm"
)

// ErrUnknownTool means the model asked for a tool that was never registered.
// That is a programming error (declaration/registration mismatch), so the
// caller fails the generation instead of retrying.
var ErrUnknownTool = errors.New("unknown tool")

// Manager registers tools and dispatches model tool calls by name.
type Manager struct {
	tools map[string]Tool
	order []string
}

func NewManager(tools ...Tool) *Manager {
	m := &Manager{tools: make(map[string]Tool)}
	for _, t := range tools {
		m.Register(t)
	}
	return m
}

func (m *Manager) Register(t Tool) {
	name := t.Definition().Name
	if _, exists := m.tools[name]; !exists {
		m.order = append(m.order, name)
	}
	m.tools[name] = t
}

// Definitions returns tool declarations in registration order.
func (m *Manager) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(m.order))
	for _, name := range m.order {
		defs = append(defs, m.tools[name].Definition())
	}
	return defs
}

func (m *Manager) Execute(ctx context.Context, name string, args map[string]interface{}) (*Result, error) {
	tool, ok := m.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return tool.Execute(ctx, args)
}
