package contract

import (
	"context"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/repository/specification"
)

// ScoredCourseChunk pairs a chunk with its content-embedding similarity.
type ScoredCourseChunk struct {
	Chunk      *entity.CourseChunk
	Similarity float64
}

// ChunkSearchFilter narrows similarity search to one course and, optionally,
// one lesson within it. The zero value means unfiltered.
type ChunkSearchFilter struct {
	CourseTitle  string
	LessonNumber *int
}

type CourseChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.CourseChunk) error
	UpdateEmbedding(ctx context.Context, chunk *entity.CourseChunk) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilar ranks chunks by cosine similarity of the content
	// embedding, honouring the optional course/lesson filter.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, filter ChunkSearchFilter) ([]*ScoredCourseChunk, error)
}
