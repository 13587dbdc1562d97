package mapper

import (
	"course-rag-be/internal/entity"
	"course-rag-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type CourseChunkMapper struct{}

func NewCourseChunkMapper() *CourseChunkMapper {
	return &CourseChunkMapper{}
}

func (m *CourseChunkMapper) ToModel(e *entity.CourseChunk) *model.CourseChunk {
	out := &model.CourseChunk{
		Id:           e.Id,
		Content:      e.Content,
		CourseTitle:  e.CourseTitle,
		LessonNumber: e.LessonNumber,
		ChunkIndex:   e.ChunkIndex,
		CreatedAt:    e.CreatedAt,
	}
	if len(e.Embedding) > 0 {
		vec := pgvector.NewVector(e.Embedding)
		out.Embedding = &vec
	}
	return out
}

func (m *CourseChunkMapper) ToEntity(mo *model.CourseChunk) *entity.CourseChunk {
	out := &entity.CourseChunk{
		Id:           mo.Id,
		Content:      mo.Content,
		CourseTitle:  mo.CourseTitle,
		LessonNumber: mo.LessonNumber,
		ChunkIndex:   mo.ChunkIndex,
		CreatedAt:    mo.CreatedAt,
	}
	if mo.Embedding != nil {
		out.Embedding = mo.Embedding.Slice()
	}
	return out
}
