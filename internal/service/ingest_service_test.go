package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/repository/contract"
	"course-rag-be/internal/repository/specification"
	"course-rag-be/internal/repository/unitofwork"
	"course-rag-be/pkg/docproc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- ingest fakes ---

type ingestCatalogRepo struct {
	courses  map[string]*entity.Course
	embedded map[string]bool
	created  []string
}

func newIngestCatalogRepo() *ingestCatalogRepo {
	return &ingestCatalogRepo{
		courses:  make(map[string]*entity.Course),
		embedded: make(map[string]bool),
	}
}

func (f *ingestCatalogRepo) Create(ctx context.Context, course *entity.Course, titleEmbedding []float32) error {
	f.courses[course.Title] = course
	f.created = append(f.created, course.Title)
	return nil
}

func (f *ingestCatalogRepo) UpdateTitleEmbedding(ctx context.Context, title string, embedding []float32) error {
	f.embedded[title] = true
	return nil
}

func (f *ingestCatalogRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	for _, spec := range specs {
		if byTitle, ok := spec.(specification.ByTitle); ok {
			return f.courses[byTitle.Title], nil
		}
	}
	return nil, nil
}

func (f *ingestCatalogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	return nil, nil
}

func (f *ingestCatalogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.courses)), nil
}

func (f *ingestCatalogRepo) ListTitles(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *ingestCatalogRepo) HasTitleEmbedding(ctx context.Context, title string) (bool, error) {
	return f.embedded[title], nil
}

func (f *ingestCatalogRepo) SearchSimilarTitles(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredCourse, error) {
	return nil, nil
}

type ingestChunkRepo struct {
	createdChunks int
}

func (f *ingestChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.CourseChunk) error {
	f.createdChunks += len(chunks)
	return nil
}

func (f *ingestChunkRepo) UpdateEmbedding(ctx context.Context, chunk *entity.CourseChunk) error {
	return nil
}

func (f *ingestChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseChunk, error) {
	return nil, nil
}

func (f *ingestChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *ingestChunkRepo) SearchSimilar(ctx context.Context, embedding []float32, limit int, filter contract.ChunkSearchFilter) ([]*contract.ScoredCourseChunk, error) {
	return nil, nil
}

type ingestUnitOfWork struct {
	catalog *ingestCatalogRepo
	chunks  *ingestChunkRepo
}

func (u *ingestUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *ingestUnitOfWork) Commit() error                   { return nil }
func (u *ingestUnitOfWork) Rollback() error                 { return nil }
func (u *ingestUnitOfWork) CourseCatalogRepository() contract.CourseCatalogRepository {
	return u.catalog
}
func (u *ingestUnitOfWork) CourseChunkRepository() contract.CourseChunkRepository {
	return u.chunks
}

type ingestUowFactory struct {
	uow *ingestUnitOfWork
}

func (f *ingestUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type recordingPublisher struct {
	titles []string
}

func (p *recordingPublisher) PublishCourseIndex(ctx context.Context, courseTitle string) error {
	p.titles = append(p.titles, courseTitle)
	return nil
}

func writeCourseDoc(t *testing.T, dir, filename, title string) {
	t.Helper()
	content := "Course Title: " + title + "\nCourse Link: https://example.com/c\nCourse Instructor: Ada\n\nLesson 1: One\nlesson one body text\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644))
}

func newTestIngestService(catalog *ingestCatalogRepo, chunks *ingestChunkRepo, publisher *recordingPublisher) IIngestService {
	factory := &ingestUowFactory{uow: &ingestUnitOfWork{catalog: catalog, chunks: chunks}}
	return NewIngestService(docproc.NewProcessor(800, 100), factory, publisher, noopLogger{})
}

// --- tests ---

func TestLoadCourseFolderStoresAndQueuesNewCourse(t *testing.T) {
	dir := t.TempDir()
	writeCourseDoc(t, dir, "fresh.txt", "Fresh Course")

	catalog := newIngestCatalogRepo()
	chunks := &ingestChunkRepo{}
	publisher := &recordingPublisher{}
	svc := newTestIngestService(catalog, chunks, publisher)

	added, err := svc.LoadCourseFolder(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Fresh Course"}, added)
	assert.Equal(t, []string{"Fresh Course"}, catalog.created)
	assert.Positive(t, chunks.createdChunks)
	assert.Equal(t, []string{"Fresh Course"}, publisher.titles)
}

func TestLoadCourseFolderSkipsFullyIndexedCourse(t *testing.T) {
	dir := t.TempDir()
	writeCourseDoc(t, dir, "done.txt", "Done Course")

	catalog := newIngestCatalogRepo()
	catalog.courses["Done Course"] = &entity.Course{Title: "Done Course"}
	catalog.embedded["Done Course"] = true
	publisher := &recordingPublisher{}
	svc := newTestIngestService(catalog, &ingestChunkRepo{}, publisher)

	added, err := svc.LoadCourseFolder(context.Background(), dir)
	require.NoError(t, err)

	assert.Empty(t, added)
	assert.Empty(t, catalog.created, "an indexed course is not stored twice")
	assert.Empty(t, publisher.titles)
}

func TestLoadCourseFolderRequeuesStoredButUnembeddedCourse(t *testing.T) {
	// A course whose catalog row was committed but whose index message was
	// lost (crash, or publish before the consumer subscribed) must be queued
	// again on the next load, not reported as already loaded.
	dir := t.TempDir()
	writeCourseDoc(t, dir, "stuck.txt", "Stuck Course")

	catalog := newIngestCatalogRepo()
	catalog.courses["Stuck Course"] = &entity.Course{Title: "Stuck Course"}
	publisher := &recordingPublisher{}
	svc := newTestIngestService(catalog, &ingestChunkRepo{}, publisher)

	added, err := svc.LoadCourseFolder(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Stuck Course"}, added, "requeued course is reported so the CLI embeds it")
	assert.Equal(t, []string{"Stuck Course"}, publisher.titles)
	assert.Empty(t, catalog.created, "the existing catalog row is reused")
}

func TestLoadCourseFolderSkipsMalformedFileAndContinues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("binary"), 0o644))
	writeCourseDoc(t, dir, "good.txt", "Good Course")

	catalog := newIngestCatalogRepo()
	publisher := &recordingPublisher{}
	svc := newTestIngestService(catalog, &ingestChunkRepo{}, publisher)

	added, err := svc.LoadCourseFolder(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Good Course"}, added)
}
