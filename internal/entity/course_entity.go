package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is a single numbered lesson inside a course. The link points at the
// lesson video/page when the source document provides one.
type Lesson struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// Course is a catalog entry: the parsed metadata of one course document.
// Title is unique across the catalog and is the join key to chunks.
type Course struct {
	Id         uuid.UUID
	Title      string
	Link       string
	Instructor string
	Lessons    []Lesson
	CreatedAt  time.Time
}
