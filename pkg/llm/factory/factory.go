package factory

import (
	"fmt"

	"course-rag-be/pkg/llm"
	"course-rag-be/pkg/llm/anthropic"
	"course-rag-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, anthropicKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "anthropic":
		if anthropicKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY")
		}
		return anthropic.NewAnthropicProvider(anthropicKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
