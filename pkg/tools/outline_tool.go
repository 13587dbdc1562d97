package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course-rag-be/internal/entity"
	"course-rag-be/pkg/llm"
	"course-rag-be/pkg/vectorstore"
)

// CourseOutlineTool returns a course's structure: title, link and the full
// numbered lesson list.
type CourseOutlineTool struct {
	store *vectorstore.VectorStore
}

func NewCourseOutlineTool(store *vectorstore.VectorStore) *CourseOutlineTool {
	return &CourseOutlineTool{store: store}
}

func (t *CourseOutlineTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "get_course_outline",
		Description: "Get the complete outline of a course: title, course link, and all lessons with their numbers and titles",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"course_name": map[string]interface{}{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
			},
			"required": []string{"course_name"},
		},
	}
}

func (t *CourseOutlineTool) Execute(ctx context.Context, args map[string]interface{}) (*Result, error) {
	courseName := stringArg(args, "course_name")
	if courseName == "" {
		return nil, fmt.Errorf("get_course_outline requires a 'course_name' argument")
	}

	course, err := t.store.GetCourseOutline(ctx, courseName)
	if err != nil {
		if errors.Is(err, vectorstore.ErrCourseNotFound) {
			return &Result{Content: fmt.Sprintf("No course found matching '%s'", courseName)}, nil
		}
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Course Title: %s\n", course.Title)
	if course.Link != "" {
		fmt.Fprintf(&sb, "Course Link: %s\n", course.Link)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&sb, "Instructor: %s\n", course.Instructor)
	}
	fmt.Fprintf(&sb, "Number of Lessons: %d\n", len(course.Lessons))
	if len(course.Lessons) > 0 {
		sb.WriteString("\nLessons:\n")
		for _, lesson := range course.Lessons {
			fmt.Fprintf(&sb, "%d. %s\n", lesson.Number, lesson.Title)
		}
	}

	return &Result{
		Content: strings.TrimRight(sb.String(), "\n"),
		Sources: []entity.Source{{Text: course.Title, Link: course.Link}},
	}, nil
}
