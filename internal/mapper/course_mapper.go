package mapper

import (
	"encoding/json"

	"course-rag-be/internal/entity"
	"course-rag-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CourseCatalogMapper struct{}

func NewCourseCatalogMapper() *CourseCatalogMapper {
	return &CourseCatalogMapper{}
}

func (m *CourseCatalogMapper) ToModel(e *entity.Course, titleEmbedding []float32) *model.CourseCatalog {
	lessonsJSON, _ := json.Marshal(e.Lessons)

	out := &model.CourseCatalog{
		Id:          e.Id,
		Title:       e.Title,
		Link:        e.Link,
		Instructor:  e.Instructor,
		Lessons:     lessonsJSON,
		LessonCount: len(e.Lessons),
		CreatedAt:   e.CreatedAt,
	}
	if len(titleEmbedding) > 0 {
		vec := pgvector.NewVector(titleEmbedding)
		out.TitleEmbedding = &vec
	}
	return out
}

func (m *CourseCatalogMapper) ToEntity(mo *model.CourseCatalog) *entity.Course {
	var lessons []entity.Lesson
	if len(mo.Lessons) > 0 {
		// Lessons are written by our own mapper; a decode failure means a
		// corrupted row and is surfaced as an empty lesson list.
		_ = json.Unmarshal(mo.Lessons, &lessons)
	}

	return &entity.Course{
		Id:         mo.Id,
		Title:      mo.Title,
		Link:       mo.Link,
		Instructor: mo.Instructor,
		Lessons:    lessons,
		CreatedAt:  mo.CreatedAt,
	}
}
