package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"course-rag-be/pkg/embedding"
	"course-rag-be/pkg/llm"
	"course-rag-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a local Ollama with the models pulled. Skipped unless
// TEST_OLLAMA_BASE_URL is set, e.g. http://localhost:11434.
func ollamaBaseURL(t *testing.T) string {
	t.Helper()
	baseURL := os.Getenv("TEST_OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("TEST_OLLAMA_BASE_URL not set, skipping Ollama integration test")
	}
	return baseURL
}

func TestOllamaEmbeddingIsNormalized(t *testing.T) {
	provider := embedding.NewOllamaProvider(ollamaBaseURL(t), "nomic-embed-text")

	res, err := provider.Generate("model context protocol servers", embedding.TaskTypeDocument)
	require.NoError(t, err)
	require.NotEmpty(t, res.Embedding.Values)

	var magnitude float64
	for _, v := range res.Embedding.Values {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, magnitude, 0.01, "embedding should be unit length")
}

func TestOllamaChatSimpleResponse(t *testing.T) {
	provider := ollama.NewOllamaProvider(ollamaBaseURL(t), "llama3.1")

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	resp, err := provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: "Reply with the single word: pong"},
	}, llm.WithTemperature(0))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Content)
	assert.False(t, resp.HasToolCalls())
}

func TestOllamaChatWithToolDeclaration(t *testing.T) {
	provider := ollama.NewOllamaProvider(ollamaBaseURL(t), "llama3.1")

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	tools := []llm.ToolDefinition{{
		Name:        "search_course_content",
		Description: "Search course materials",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{"type": "string"},
			},
			"required": []string{"query"},
		},
	}}

	resp, err := provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: "Search the course materials for 'vector databases'."},
	}, llm.WithTemperature(0), llm.WithTools(tools))
	require.NoError(t, err)

	// Tool-capable models should request the declared tool; if the model
	// answers directly instead we only log it, model behaviour is not ours
	// to assert.
	if resp.HasToolCalls() {
		assert.Equal(t, "search_course_content", resp.ToolCalls[0].Name)
		t.Logf("tool call arguments: %v", resp.ToolCalls[0].Arguments)
	} else {
		t.Logf("model answered directly: %s", resp.Content)
	}
}
