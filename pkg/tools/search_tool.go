package tools

import (
	"context"
	"fmt"
	"strings"

	"course-rag-be/internal/entity"
	"course-rag-be/pkg/llm"
	"course-rag-be/pkg/vectorstore"
)

// CourseSearchTool performs semantic search over course chunks with optional
// course and lesson filters.
type CourseSearchTool struct {
	store *vectorstore.VectorStore
}

func NewCourseSearchTool(store *vectorstore.VectorStore) *CourseSearchTool {
	return &CourseSearchTool{store: store}
}

func (t *CourseSearchTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to search for in course content",
				},
				"course_name": map[string]interface{}{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
				"lesson_number": map[string]interface{}{
					"type":        "integer",
					"description": "Specific lesson number to search within (e.g. 1, 2, 3)",
				},
			},
			"required": []string{"query"},
		},
	}
}

func (t *CourseSearchTool) Execute(ctx context.Context, args map[string]interface{}) (*Result, error) {
	query := stringArg(args, "query")
	if query == "" {
		return nil, fmt.Errorf("search_course_content requires a 'query' argument")
	}
	courseName := stringArg(args, "course_name")
	lessonNumber := intArg(args, "lesson_number")

	results, err := t.store.Search(ctx, query, courseName, lessonNumber)
	if err != nil {
		return nil, err
	}

	// A recorded resolution failure goes back to the model verbatim.
	if results.Err != "" {
		return &Result{Content: results.Err}, nil
	}

	if results.IsEmpty() {
		var filterInfo strings.Builder
		if courseName != "" {
			fmt.Fprintf(&filterInfo, " in course '%s'", courseName)
		}
		if lessonNumber != nil {
			fmt.Fprintf(&filterInfo, " in lesson %d", *lessonNumber)
		}
		return &Result{Content: fmt.Sprintf("No relevant content found%s.", filterInfo.String())}, nil
	}

	return t.formatResults(ctx, results), nil
}

// formatResults renders hits as "[Course - Lesson N]" blocks and collects
// one deduplicated source per course/lesson head.
func (t *CourseSearchTool) formatResults(ctx context.Context, results *vectorstore.SearchResults) *Result {
	var blocks []string
	var sources []entity.Source
	seen := make(map[string]bool)

	for _, hit := range results.Results {
		header := hit.CourseTitle
		if hit.LessonNumber != nil {
			header = fmt.Sprintf("%s - Lesson %d", hit.CourseTitle, *hit.LessonNumber)
		}
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", header, hit.Content))

		if seen[header] {
			continue
		}
		seen[header] = true

		source := entity.Source{Text: header}
		if hit.LessonNumber != nil {
			// Link lookup is best effort; a citation without a link is fine.
			if link, err := t.store.GetLessonLink(ctx, hit.CourseTitle, *hit.LessonNumber); err == nil {
				source.Link = link
			}
		} else if link, err := t.store.GetCourseLink(ctx, hit.CourseTitle); err == nil {
			source.Link = link
		}
		sources = append(sources, source)
	}

	return &Result{
		Content: strings.Join(blocks, "\n\n"),
		Sources: sources,
	}
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg reads an integer argument; JSON decoding delivers numbers as
// float64.
func intArg(args map[string]interface{}, key string) *int {
	switch v := args[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	}
	return nil
}
