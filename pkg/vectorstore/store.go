package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/repository/contract"
	"course-rag-be/internal/repository/specification"
	"course-rag-be/pkg/embedding"
)

// ErrCourseNotFound means a course-name filter matched nothing in the
// catalog. It is an expected outcome, not a failure.
var ErrCourseNotFound = errors.New("course not found")

// titleMatchThreshold is the minimum cosine similarity for a partial course
// name to resolve against a catalog title.
const titleMatchThreshold = 0.3

// SearchResult is one ranked chunk hit.
type SearchResult struct {
	Content      string
	CourseTitle  string
	LessonNumber *int
	Similarity   float64
}

// SearchResults carries ranked hits, or a human-readable reason why the
// search produced nothing (e.g. an unresolvable course filter). Err is part
// of the result, not a Go error: the caller renders it for the model.
type SearchResults struct {
	Results []SearchResult
	Err     string
}

func (r *SearchResults) IsEmpty() bool {
	return len(r.Results) == 0
}

// VectorStore exposes semantic search over the two pgvector collections:
// the course catalog (title embeddings, for fuzzy name resolution) and the
// course chunks (content embeddings).
type VectorStore struct {
	catalog    contract.CourseCatalogRepository
	chunks     contract.CourseChunkRepository
	embedder   embedding.EmbeddingProvider
	maxResults int
}

func New(
	catalog contract.CourseCatalogRepository,
	chunks contract.CourseChunkRepository,
	embedder embedding.EmbeddingProvider,
	maxResults int,
) *VectorStore {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &VectorStore{
		catalog:    catalog,
		chunks:     chunks,
		embedder:   embedder,
		maxResults: maxResults,
	}
}

// ResolveCourseName matches a partial course name ("MCP", "Intro") against
// catalog titles by embedding similarity and returns the full title.
func (s *VectorStore) ResolveCourseName(ctx context.Context, name string) (string, error) {
	res, err := s.embedder.Generate(name, embedding.TaskTypeQuery)
	if err != nil {
		return "", fmt.Errorf("embed course name: %w", err)
	}

	matches, err := s.catalog.SearchSimilarTitles(ctx, res.Embedding.Values, 1, titleMatchThreshold)
	if err != nil {
		return "", fmt.Errorf("search catalog titles: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrCourseNotFound, name)
	}
	return matches[0].Course.Title, nil
}

// Search ranks course chunks against the query, optionally restricted to one
// course (fuzzy-matched) and one lesson. An unresolvable course filter
// yields empty results with the reason recorded, never an unfiltered search.
func (s *VectorStore) Search(ctx context.Context, query, courseName string, lessonNumber *int) (*SearchResults, error) {
	filter := contract.ChunkSearchFilter{LessonNumber: lessonNumber}

	if courseName != "" {
		resolved, err := s.ResolveCourseName(ctx, courseName)
		if err != nil {
			if errors.Is(err, ErrCourseNotFound) {
				return &SearchResults{
					Err: fmt.Sprintf("No course found matching '%s'", courseName),
				}, nil
			}
			return nil, err
		}
		filter.CourseTitle = resolved
	}

	res, err := s.embedder.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.chunks.SearchSimilar(ctx, res.Embedding.Values, s.maxResults, filter)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	out := &SearchResults{}
	for _, hit := range scored {
		out.Results = append(out.Results, SearchResult{
			Content:      hit.Chunk.Content,
			CourseTitle:  hit.Chunk.CourseTitle,
			LessonNumber: hit.Chunk.LessonNumber,
			Similarity:   hit.Similarity,
		})
	}
	return out, nil
}

// GetCourseOutline resolves the name and returns the full catalog entry:
// title, link, instructor and the ordered lesson list.
func (s *VectorStore) GetCourseOutline(ctx context.Context, courseName string) (*entity.Course, error) {
	title, err := s.ResolveCourseName(ctx, courseName)
	if err != nil {
		return nil, err
	}

	course, err := s.catalog.FindOne(ctx, specification.ByTitle{Title: title})
	if err != nil {
		return nil, fmt.Errorf("load course outline: %w", err)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, courseName)
	}
	return course, nil
}

// GetLessonLink returns the link of one lesson, or "" when the course or
// lesson has none.
func (s *VectorStore) GetLessonLink(ctx context.Context, courseTitle string, lessonNumber int) (string, error) {
	course, err := s.catalog.FindOne(ctx, specification.ByTitle{Title: courseTitle})
	if err != nil {
		return "", fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return "", nil
	}
	for _, lesson := range course.Lessons {
		if lesson.Number == lessonNumber {
			return lesson.Link, nil
		}
	}
	return "", nil
}

// GetCourseLink returns the course-level link, or "" when unknown.
func (s *VectorStore) GetCourseLink(ctx context.Context, courseTitle string) (string, error) {
	course, err := s.catalog.FindOne(ctx, specification.ByTitle{Title: courseTitle})
	if err != nil {
		return "", fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return "", nil
	}
	return course.Link, nil
}

func (s *VectorStore) CourseCount(ctx context.Context) (int64, error) {
	return s.catalog.Count(ctx)
}

func (s *VectorStore) CourseTitles(ctx context.Context) ([]string, error) {
	return s.catalog.ListTitles(ctx)
}
