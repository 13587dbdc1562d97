package bootstrap

import (
	"context"
	"log"

	"course-rag-be/internal/config"
	"course-rag-be/internal/controller"
	"course-rag-be/internal/pkg/logger"
	"course-rag-be/internal/repository/contract"
	"course-rag-be/internal/repository/implementation"
	"course-rag-be/internal/repository/memory"
	"course-rag-be/internal/repository/redisstore"
	"course-rag-be/internal/repository/unitofwork"
	"course-rag-be/internal/service"
	"course-rag-be/pkg/docproc"
	"course-rag-be/pkg/embedding"
	"course-rag-be/pkg/generator"
	"course-rag-be/pkg/llm/factory"
	"course-rag-be/pkg/tools"
	"course-rag-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	CourseController controller.ICourseController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	IngestService   service.IIngestService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.Anthropic,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Session Storage
	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb, cfg.Rag.MaxHistory)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Rag.MaxHistory)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	// 5. RAG Core
	catalogRepo := implementation.NewCourseCatalogRepository(db)
	chunkRepo := implementation.NewCourseChunkRepository(db)
	store := vectorstore.New(catalogRepo, chunkRepo, embeddingProvider, cfg.Rag.MaxResults)

	toolManager := tools.NewManager(
		tools.NewCourseSearchTool(store),
		tools.NewCourseOutlineTool(store),
	)
	aiGenerator := generator.New(llmProvider, cfg.Rag.MaxToolRounds)

	// 6. Services
	processor := docproc.NewProcessor(cfg.Rag.ChunkSize, cfg.Rag.ChunkOverlap)
	publisherService := service.NewPublisherService(cfg.Ingest.Topic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ingest.Topic,
		uowFactory,
		embeddingProvider,
	)
	ingestService := service.NewIngestService(processor, uowFactory, publisherService, sysLogger)

	ragService := service.NewRagService(aiGenerator, toolManager, sessionRepo, sysLogger)
	courseService := service.NewCourseService(store)

	// 7. Controllers
	return &Container{
		ChatController:   controller.NewChatController(ragService),
		CourseController: controller.NewCourseController(courseService),

		ConsumerService: consumerService,
		IngestService:   ingestService,

		Logger: sysLogger,
	}
}
