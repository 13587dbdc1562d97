package unitofwork

import (
	"context"

	"course-rag-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CourseCatalogRepository() contract.CourseCatalogRepository
	CourseChunkRepository() contract.CourseChunkRepository
}
