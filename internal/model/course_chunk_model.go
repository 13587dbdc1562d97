package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type CourseChunk struct {
	Id           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content      string           `gorm:"type:text;not null"`
	CourseTitle  string           `gorm:"type:text;not null;index"`
	LessonNumber *int             `gorm:"index"`
	ChunkIndex   int              `gorm:"default:0"` // 0-based ordering within the course
	Embedding    *pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt    time.Time        `gorm:"autoCreateTime"`
}

func (CourseChunk) TableName() string {
	return "course_chunks"
}
