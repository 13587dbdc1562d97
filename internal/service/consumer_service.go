package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"course-rag-be/internal/dto"
	"course-rag-be/internal/repository/specification"
	"course-rag-be/internal/repository/unitofwork"
	"course-rag-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error

	// ProcessCourse embeds one course synchronously: title embedding on the
	// catalog row, content embedding on every chunk. The ingest CLI calls
	// this directly; the web process goes through the pub/sub topic.
	ProcessCourse(ctx context.Context, courseTitle string) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IndexCourseMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.ProcessCourse(ctx, payload.CourseTitle); err != nil {
		log.Printf("[ERROR] Failed to embed course %q: %v", payload.CourseTitle, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

func (cs *consumerService) ProcessCourse(ctx context.Context, courseTitle string) error {
	log.Printf("[INFO] Embedding course: %s", courseTitle)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseCatalogRepository().FindOne(ctx, specification.ByTitle{Title: courseTitle})
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		// Course deleted between publish and consume; nothing to do.
		log.Printf("[WARN] Course not found, skipping: %s", courseTitle)
		return nil
	}

	titleRes, err := cs.embeddingProvider.Generate(course.Title, embedding.TaskTypeDocument)
	if err != nil {
		return fmt.Errorf("embed course title: %w", err)
	}

	chunks, err := uow.CourseChunkRepository().FindAll(ctx,
		specification.ByCourseTitle{Title: courseTitle},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}

	log.Printf("[INFO] Generating embeddings for %d chunks of %q", len(chunks), courseTitle)
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk.Content, embedding.TaskTypeDocument)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", i, err)
		}
		chunk.Embedding = res.Embedding.Values
	}

	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.CourseCatalogRepository().UpdateTitleEmbedding(ctx, course.Title, titleRes.Embedding.Values); err != nil {
		return fmt.Errorf("store title embedding: %w", err)
	}
	for i, chunk := range chunks {
		if err := uow.CourseChunkRepository().UpdateEmbedding(ctx, chunk); err != nil {
			return fmt.Errorf("store chunk embedding %d: %w", i, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.Printf("[SUCCESS] Course embedded: %s (%d chunks)", courseTitle, len(chunks))
	return nil
}
