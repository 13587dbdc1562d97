package dto

// IndexCourseMessage is the pub/sub payload that asks the consumer to embed
// one freshly ingested course (its title row and all of its chunks).
type IndexCourseMessage struct {
	CourseTitle string `json:"course_title"`
}
