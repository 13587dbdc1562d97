package implementation

import (
	"context"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/mapper"
	"course-rag-be/internal/model"
	"course-rag-be/internal/repository/contract"
	"course-rag-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CourseChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseChunkMapper
}

func NewCourseChunkRepository(db *gorm.DB) contract.CourseChunkRepository {
	return &CourseChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseChunkMapper(),
	}
}

func (r *CourseChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CourseChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.CourseChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.CourseChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CourseChunkRepositoryImpl) UpdateEmbedding(ctx context.Context, chunk *entity.CourseChunk) error {
	vec := pgvector.NewVector(chunk.Embedding)
	return r.db.WithContext(ctx).
		Model(&model.CourseChunk{}).
		Where("id = ?", chunk.Id).
		Update("embedding", vec).Error
}

func (r *CourseChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CourseChunk, error) {
	var models []*model.CourseChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CourseChunk, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CourseChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CourseChunk{}).Count(&count).Error
	return count, err
}

func (r *CourseChunkRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, filter contract.ChunkSearchFilter) ([]*contract.ScoredCourseChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CourseChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("course_chunks").
		Select("course_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("embedding IS NOT NULL")

	if filter.CourseTitle != "" {
		query = query.Where("course_title = ?", filter.CourseTitle)
	}
	if filter.LessonNumber != nil {
		query = query.Where("lesson_number = ?", *filter.LessonNumber)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCourseChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCourseChunk{
			Chunk:      r.mapper.ToEntity(&res.CourseChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
