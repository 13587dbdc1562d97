package specification

import "gorm.io/gorm"

// ByCourseTitle filters chunks (or catalog rows) on the exact course title.
type ByCourseTitle struct {
	Title string
}

func (s ByCourseTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_title = ?", s.Title)
}

// ByLessonNumber filters chunks on the owning lesson.
type ByLessonNumber struct {
	Number int
}

func (s ByLessonNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lesson_number = ?", s.Number)
}

// ByTitle filters catalog rows on the exact title.
type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}
