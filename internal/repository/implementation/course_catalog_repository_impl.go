package implementation

import (
	"context"
	"errors"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/mapper"
	"course-rag-be/internal/model"
	"course-rag-be/internal/repository/contract"
	"course-rag-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CourseCatalogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseCatalogMapper
}

func NewCourseCatalogRepository(db *gorm.DB) contract.CourseCatalogRepository {
	return &CourseCatalogRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseCatalogMapper(),
	}
}

func (r *CourseCatalogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CourseCatalogRepositoryImpl) Create(ctx context.Context, course *entity.Course, titleEmbedding []float32) error {
	m := r.mapper.ToModel(course, titleEmbedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*course = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseCatalogRepositoryImpl) UpdateTitleEmbedding(ctx context.Context, title string, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	return r.db.WithContext(ctx).
		Model(&model.CourseCatalog{}).
		Where("title = ?", title).
		Update("title_embedding", vec).Error
}

func (r *CourseCatalogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	var m model.CourseCatalog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseCatalogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	var models []*model.CourseCatalog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Course, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CourseCatalogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CourseCatalog{}).Count(&count).Error
	return count, err
}

func (r *CourseCatalogRepositoryImpl) ListTitles(ctx context.Context) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).
		Model(&model.CourseCatalog{}).
		Order("title ASC").
		Pluck("title", &titles).Error
	return titles, err
}

func (r *CourseCatalogRepositoryImpl) HasTitleEmbedding(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseCatalog{}).
		Where("title = ? AND title_embedding IS NOT NULL", title).
		Count(&count).Error
	return count > 0, err
}

func (r *CourseCatalogRepositoryImpl) SearchSimilarTitles(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredCourse, error) {
	if limit <= 0 {
		limit = 1
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (title_embedding <=> query_vector) = cosine_similarity.
	type result struct {
		model.CourseCatalog
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("course_catalog").
		Select("course_catalog.*, 1 - (title_embedding <=> ?) as similarity", queryVector).
		Where("title_embedding IS NOT NULL").
		Where("1 - (title_embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCourse, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCourse{
			Course:     r.mapper.ToEntity(&res.CourseCatalog),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
