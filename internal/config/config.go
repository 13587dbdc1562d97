package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RAGConfig
	Session  SessionConfig
	Ingest   IngestConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Anthropic    string
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	LLMProvider       string // "anthropic" or "ollama"
	LLMModel          string // e.g. "claude-sonnet-4-20250514", "llama3"
}

type RAGConfig struct {
	ChunkSize     int
	ChunkOverlap  int
	MaxResults    int
	MaxHistory    int
	MaxToolRounds int
}

type SessionConfig struct {
	Store string // "memory" or "redis"
}

type IngestConfig struct {
	DocsPath string
	Topic    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Anthropic:    getEnv("ANTHROPIC_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "anthropic"),
			LLMModel:          getEnv("LLM_MODEL", "claude-sonnet-4-20250514"),
		},
		Rag: RAGConfig{
			ChunkSize:     getEnvAsInt("CHUNK_SIZE", 800),
			ChunkOverlap:  getEnvAsInt("CHUNK_OVERLAP", 100),
			MaxResults:    getEnvAsInt("MAX_RESULTS", 5),
			MaxHistory:    getEnvAsInt("MAX_HISTORY", 2),
			MaxToolRounds: getEnvAsInt("MAX_TOOL_ROUNDS", 1),
		},
		Session: SessionConfig{
			Store: getEnv("SESSION_STORE", "memory"),
		},
		Ingest: IngestConfig{
			DocsPath: getEnv("DOCS_PATH", ""),
			Topic:    getEnv("INGEST_TOPIC", "INDEX_COURSE_DOCUMENT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
