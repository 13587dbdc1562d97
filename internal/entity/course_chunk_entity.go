package entity

import (
	"time"

	"github.com/google/uuid"
)

// CourseChunk is one overlapping text window cut from a course document.
// Chunks are written once at ingest time and never mutated afterwards.
type CourseChunk struct {
	Id           uuid.UUID
	Content      string
	CourseTitle  string
	LessonNumber *int
	ChunkIndex   int
	Embedding    []float32
	CreatedAt    time.Time
}
