package generator

import (
	"context"
	"fmt"

	"course-rag-be/internal/entity"
	"course-rag-be/pkg/llm"
	"course-rag-be/pkg/tools"
)

const systemPrompt = `You are an AI assistant specialized in course materials and educational content with access to tools for course information.

Tool usage:
- Use the content search tool only for questions about specific course content or detailed educational materials
- Use the course outline tool for questions about a course's structure: its title, link, and full lesson list
- Synthesize tool results into accurate, fact-based responses
- If a tool yields no results, state this clearly without offering alternatives

Response protocol:
- General knowledge questions: answer using existing knowledge without using tools
- Course-specific questions: use the appropriate tool first, then answer
- No meta-commentary (no reasoning process, no "based on the search results")

All responses must be:
1. Brief, concise and focused - get to the point quickly
2. Educational - maintain instructional value
3. Clear - use accessible language
4. Example-supported - include relevant examples when they aid understanding
Provide only the direct answer to what was asked.`

const (
	answerTemperature = 0.0
	answerMaxTokens   = 800
)

// Result is one generated answer and the citations accumulated from any
// tool executions along the way.
type Result struct {
	Answer  string
	Sources []entity.Source
}

// Generator drives the bounded tool-calling conversation with the LLM.
// Tool definitions are only declared while the round budget lasts, so a
// query can cost at most maxToolRounds+1 upstream calls; with the default
// budget of 1 that is exactly two calls for tool queries and one otherwise.
type Generator struct {
	provider      llm.LLMProvider
	maxToolRounds int
}

func New(provider llm.LLMProvider, maxToolRounds int) *Generator {
	if maxToolRounds < 0 {
		maxToolRounds = 0
	}
	return &Generator{
		provider:      provider,
		maxToolRounds: maxToolRounds,
	}
}

// Generate answers one user query given the trailing session history.
// manager may be nil to disable tools entirely.
func (g *Generator) Generate(ctx context.Context, query string, history []entity.Exchange, manager *tools.Manager) (*Result, error) {
	messages := buildMessages(query, history)

	var sources []entity.Source

	for round := 0; ; round++ {
		opts := []llm.Option{
			llm.WithTemperature(answerTemperature),
			llm.WithMaxTokens(answerMaxTokens),
			llm.WithSystem(systemPrompt),
		}
		toolsAllowed := manager != nil && round < g.maxToolRounds
		if toolsAllowed {
			opts = append(opts, llm.WithTools(manager.Definitions()))
		}

		resp, err := g.provider.Chat(ctx, messages, opts...)
		if err != nil {
			return nil, fmt.Errorf("llm chat: %w", err)
		}

		if !resp.HasToolCalls() || !toolsAllowed {
			return &Result{Answer: resp.Content, Sources: sources}, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result, err := manager.Execute(ctx, call.Name, call.Arguments)
			if err != nil {
				return nil, fmt.Errorf("execute tool %s: %w", call.Name, err)
			}
			sources = append(sources, result.Sources...)
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    result.Content,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}
}

// buildMessages lays out prior exchanges as alternating user/assistant
// turns, followed by the current query.
func buildMessages(query string, history []entity.Exchange) []llm.Message {
	messages := make([]llm.Message, 0, len(history)*2+1)
	for _, exchange := range history {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: exchange.Query},
			llm.Message{Role: llm.RoleAssistant, Content: exchange.Answer},
		)
	}
	return append(messages, llm.Message{Role: llm.RoleUser, Content: query})
}
