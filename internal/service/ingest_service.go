package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"course-rag-be/internal/pkg/logger"
	"course-rag-be/internal/repository/specification"
	"course-rag-be/internal/repository/unitofwork"
	"course-rag-be/pkg/docproc"
)

type IIngestService interface {
	// LoadCourseFolder parses every course document in the folder, stores
	// the new ones, and queues each for embedding. Returns the titles of
	// newly added courses.
	LoadCourseFolder(ctx context.Context, folderPath string) ([]string, error)
}

type ingestService struct {
	processor  *docproc.Processor
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewIngestService(
	processor *docproc.Processor,
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IIngestService {
	return &ingestService{
		processor:  processor,
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     sysLogger,
	}
}

func isCourseDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return true
	}
	return false
}

func (s *ingestService) LoadCourseFolder(ctx context.Context, folderPath string) ([]string, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, fmt.Errorf("read course folder: %w", err)
	}

	var added []string
	for _, entry := range entries {
		if entry.IsDir() || !isCourseDocument(entry.Name()) {
			continue
		}

		path := filepath.Join(folderPath, entry.Name())
		title, isNew, err := s.ingestFile(ctx, path)
		if err != nil {
			// One malformed or unreadable document never aborts the load.
			s.logger.Warn("ingest", "skipping course document", map[string]interface{}{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		if !isNew {
			s.logger.Info("ingest", "course already loaded", map[string]interface{}{
				"title": title,
			})
			continue
		}
		added = append(added, title)
	}
	return added, nil
}

// ingestFile stores the parsed catalog row and chunks in one transaction,
// then queues the course for embedding.
func (s *ingestService) ingestFile(ctx context.Context, path string) (string, bool, error) {
	doc, err := s.processor.ProcessFile(path)
	if err != nil {
		return "", false, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.CourseCatalogRepository().FindOne(ctx, specification.ByTitle{Title: doc.Course.Title})
	if err != nil {
		return "", false, fmt.Errorf("check existing course: %w", err)
	}
	if existing != nil {
		embedded, err := uow.CourseCatalogRepository().HasTitleEmbedding(ctx, doc.Course.Title)
		if err != nil {
			return "", false, fmt.Errorf("check course embedding: %w", err)
		}
		if embedded {
			return doc.Course.Title, false, nil
		}
		// Stored on a previous run but never embedded, e.g. the process died
		// before the index message was consumed. Queue it again so the course
		// becomes searchable instead of staying invisible forever.
		if err := s.publisher.PublishCourseIndex(ctx, doc.Course.Title); err != nil {
			return "", false, fmt.Errorf("requeue course for embedding: %w", err)
		}
		s.logger.Info("ingest", "requeued unembedded course", map[string]interface{}{
			"title": doc.Course.Title,
		})
		return doc.Course.Title, true, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return "", false, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.CourseCatalogRepository().Create(ctx, &doc.Course, nil); err != nil {
		return "", false, fmt.Errorf("create catalog entry: %w", err)
	}
	if err := uow.CourseChunkRepository().CreateBulk(ctx, doc.Chunks); err != nil {
		return "", false, fmt.Errorf("create chunks: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return "", false, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("ingest", "course stored", map[string]interface{}{
		"title":  doc.Course.Title,
		"chunks": len(doc.Chunks),
	})

	if err := s.publisher.PublishCourseIndex(ctx, doc.Course.Title); err != nil {
		return "", false, fmt.Errorf("queue course for embedding: %w", err)
	}
	return doc.Course.Title, true, nil
}
