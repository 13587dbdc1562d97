package contract

import (
	"context"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/repository/specification"
)

// ScoredCourse pairs a catalog entry with its title-embedding similarity.
type ScoredCourse struct {
	Course     *entity.Course
	Similarity float64
}

type CourseCatalogRepository interface {
	Create(ctx context.Context, course *entity.Course, titleEmbedding []float32) error
	UpdateTitleEmbedding(ctx context.Context, title string, embedding []float32) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	ListTitles(ctx context.Context) ([]string, error)

	// HasTitleEmbedding reports whether the catalog row for title has its
	// title embedding stored, i.e. the course survived a full index pass.
	HasTitleEmbedding(ctx context.Context, title string) (bool, error)

	// SearchSimilarTitles ranks catalog entries by cosine similarity of the
	// title embedding, filtered by threshold.
	SearchSimilarTitles(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredCourse, error)
}
