package vectorstore

import (
	"context"
	"testing"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/repository/contract"
	"course-rag-be/internal/repository/specification"
	"course-rag-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- test fakes ---

type fakeEmbedder struct {
	texts []string
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.texts = append(f.texts, text)
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeCatalogRepo struct {
	courses []*entity.Course
	// matches drives SearchSimilarTitles; the fake ignores the query vector.
	matches []*contract.ScoredCourse
}

func (f *fakeCatalogRepo) Create(ctx context.Context, course *entity.Course, titleEmbedding []float32) error {
	f.courses = append(f.courses, course)
	return nil
}

func (f *fakeCatalogRepo) UpdateTitleEmbedding(ctx context.Context, title string, emb []float32) error {
	return nil
}

func (f *fakeCatalogRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	for _, spec := range specs {
		if byTitle, ok := spec.(specification.ByTitle); ok {
			for _, c := range f.courses {
				if c.Title == byTitle.Title {
					return c, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	return f.courses, nil
}

func (f *fakeCatalogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.courses)), nil
}

func (f *fakeCatalogRepo) ListTitles(ctx context.Context) ([]string, error) {
	titles := make([]string, 0, len(f.courses))
	for _, c := range f.courses {
		titles = append(titles, c.Title)
	}
	return titles, nil
}

func (f *fakeCatalogRepo) HasTitleEmbedding(ctx context.Context, title string) (bool, error) {
	return true, nil
}

func (f *fakeCatalogRepo) SearchSimilarTitles(ctx context.Context, emb []float32, limit int, threshold float64) ([]*contract.ScoredCourse, error) {
	if len(f.matches) > limit {
		return f.matches[:limit], nil
	}
	return f.matches, nil
}

type fakeChunkRepo struct {
	hits       []*contract.ScoredCourseChunk
	lastFilter contract.ChunkSearchFilter
	lastLimit  int
}

func (f *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.CourseChunk) error {
	return nil
}

func (f *fakeChunkRepo) UpdateEmbedding(ctx context.Context, chunk *entity.CourseChunk) error {
	return nil
}

func (f *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseChunk, error) {
	return nil, nil
}

func (f *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeChunkRepo) SearchSimilar(ctx context.Context, emb []float32, limit int, filter contract.ChunkSearchFilter) ([]*contract.ScoredCourseChunk, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	if len(f.hits) > limit {
		return f.hits[:limit], nil
	}
	return f.hits, nil
}

func intPtr(n int) *int { return &n }

func testCourse(title string) *entity.Course {
	return &entity.Course{
		Title: title,
		Link:  "https://example.com/" + title,
		Lessons: []entity.Lesson{
			{Number: 1, Title: "Basics", Link: "https://example.com/" + title + "/1"},
			{Number: 2, Title: "Advanced"},
		},
	}
}

// --- tests ---

func TestResolveCourseNameReturnsBestMatch(t *testing.T) {
	catalog := &fakeCatalogRepo{
		courses: []*entity.Course{testCourse("Introduction to MCP")},
		matches: []*contract.ScoredCourse{
			{Course: testCourse("Introduction to MCP"), Similarity: 0.9},
		},
	}
	store := New(catalog, &fakeChunkRepo{}, &fakeEmbedder{}, 5)

	title, err := store.ResolveCourseName(context.Background(), "MCP")
	require.NoError(t, err)
	assert.Equal(t, "Introduction to MCP", title)
}

func TestResolveCourseNameNotFound(t *testing.T) {
	store := New(&fakeCatalogRepo{}, &fakeChunkRepo{}, &fakeEmbedder{}, 5)

	_, err := store.ResolveCourseName(context.Background(), "Basket Weaving")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestSearchUnfiltered(t *testing.T) {
	chunks := &fakeChunkRepo{
		hits: []*contract.ScoredCourseChunk{
			{Chunk: &entity.CourseChunk{Content: "c1", CourseTitle: "A", LessonNumber: intPtr(1)}, Similarity: 0.8},
			{Chunk: &entity.CourseChunk{Content: "c2", CourseTitle: "B"}, Similarity: 0.6},
		},
	}
	store := New(&fakeCatalogRepo{}, chunks, &fakeEmbedder{}, 5)

	results, err := store.Search(context.Background(), "what is a server", "", nil)
	require.NoError(t, err)
	assert.Empty(t, results.Err)
	require.Len(t, results.Results, 2)
	assert.Equal(t, "c1", results.Results[0].Content)
	assert.Equal(t, contract.ChunkSearchFilter{}, chunks.lastFilter)
	assert.Equal(t, 5, chunks.lastLimit)
}

func TestSearchWithCourseAndLessonFilter(t *testing.T) {
	catalog := &fakeCatalogRepo{
		matches: []*contract.ScoredCourse{
			{Course: testCourse("Introduction to MCP"), Similarity: 0.9},
		},
	}
	chunks := &fakeChunkRepo{}
	store := New(catalog, chunks, &fakeEmbedder{}, 5)

	_, err := store.Search(context.Background(), "tools", "MCP", intPtr(2))
	require.NoError(t, err)

	assert.Equal(t, "Introduction to MCP", chunks.lastFilter.CourseTitle)
	require.NotNil(t, chunks.lastFilter.LessonNumber)
	assert.Equal(t, 2, *chunks.lastFilter.LessonNumber)
}

func TestSearchUnresolvableCourseFilterYieldsEmptyWithReason(t *testing.T) {
	chunks := &fakeChunkRepo{
		hits: []*contract.ScoredCourseChunk{
			{Chunk: &entity.CourseChunk{Content: "should not leak", CourseTitle: "A"}, Similarity: 0.9},
		},
	}
	store := New(&fakeCatalogRepo{}, chunks, &fakeEmbedder{}, 5)

	results, err := store.Search(context.Background(), "anything", "Nonexistent", nil)
	require.NoError(t, err)

	// The filter failure must NOT fall back to an unfiltered search.
	assert.True(t, results.IsEmpty())
	assert.Equal(t, "No course found matching 'Nonexistent'", results.Err)
	assert.Zero(t, chunks.lastLimit, "chunk search must not run with an unresolvable filter")
}

func TestGetCourseOutline(t *testing.T) {
	catalog := &fakeCatalogRepo{
		courses: []*entity.Course{testCourse("Introduction to MCP")},
		matches: []*contract.ScoredCourse{
			{Course: testCourse("Introduction to MCP"), Similarity: 0.9},
		},
	}
	store := New(catalog, &fakeChunkRepo{}, &fakeEmbedder{}, 5)

	course, err := store.GetCourseOutline(context.Background(), "MCP")
	require.NoError(t, err)
	assert.Equal(t, "Introduction to MCP", course.Title)
	assert.Len(t, course.Lessons, 2)
}

func TestGetLessonLink(t *testing.T) {
	catalog := &fakeCatalogRepo{
		courses: []*entity.Course{testCourse("Introduction to MCP")},
	}
	store := New(catalog, &fakeChunkRepo{}, &fakeEmbedder{}, 5)

	link, err := store.GetLessonLink(context.Background(), "Introduction to MCP", 1)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/Introduction to MCP/1", link)

	// Lesson without a link resolves to empty, not an error.
	link, err = store.GetLessonLink(context.Background(), "Introduction to MCP", 2)
	require.NoError(t, err)
	assert.Empty(t, link)
}
