package docproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `Course Title: Introduction to MCP
Course Link: https://example.com/mcp
Course Instructor: Ada Example

Lesson 0: Welcome
Lesson Link: https://example.com/mcp/lesson0
Welcome to the course. This lesson covers the basics.

Lesson 1: Building Servers
Lesson Link: https://example.com/mcp/lesson1
Servers expose tools over a protocol. This lesson shows how to build one.
`

func TestProcessParsesHeader(t *testing.T) {
	p := NewProcessor(800, 100)
	doc := p.Process("mcp.txt", sampleDocument)

	assert.Equal(t, "Introduction to MCP", doc.Course.Title)
	assert.Equal(t, "https://example.com/mcp", doc.Course.Link)
	assert.Equal(t, "Ada Example", doc.Course.Instructor)

	require.Len(t, doc.Course.Lessons, 2)
	assert.Equal(t, 0, doc.Course.Lessons[0].Number)
	assert.Equal(t, "Welcome", doc.Course.Lessons[0].Title)
	assert.Equal(t, "https://example.com/mcp/lesson0", doc.Course.Lessons[0].Link)
	assert.Equal(t, 1, doc.Course.Lessons[1].Number)
	assert.Equal(t, "Building Servers", doc.Course.Lessons[1].Title)
}

func TestProcessChunksCarryLessonAttribution(t *testing.T) {
	p := NewProcessor(800, 100)
	doc := p.Process("mcp.txt", sampleDocument)

	require.NotEmpty(t, doc.Chunks)
	for _, chunk := range doc.Chunks {
		assert.Equal(t, "Introduction to MCP", chunk.CourseTitle)
		require.NotNil(t, chunk.LessonNumber)
	}

	// Chunk indexes are contiguous from zero.
	for i, chunk := range doc.Chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
	}

	assert.Equal(t, 0, *doc.Chunks[0].LessonNumber)
	last := doc.Chunks[len(doc.Chunks)-1]
	assert.Equal(t, 1, *last.LessonNumber)
	assert.Contains(t, last.Content, "Servers expose tools")
}

func TestProcessMalformedHeaderFallsBackToFilename(t *testing.T) {
	p := NewProcessor(800, 100)
	doc := p.Process("my_course.txt", "just some text without any header\nmore text")

	assert.Equal(t, "my_course", doc.Course.Title)
	assert.Empty(t, doc.Course.Lessons)
	require.NotEmpty(t, doc.Chunks)
	assert.Nil(t, doc.Chunks[0].LessonNumber)
}

func TestProcessContentBeforeFirstLessonHasNoLesson(t *testing.T) {
	content := "Course Title: T\nCourse Link: l\nCourse Instructor: i\nintro text here\nLesson 1: One\nlesson one body"
	p := NewProcessor(800, 100)
	doc := p.Process("t.txt", content)

	require.Len(t, doc.Chunks, 2)
	assert.Nil(t, doc.Chunks[0].LessonNumber)
	require.NotNil(t, doc.Chunks[1].LessonNumber)
	assert.Equal(t, 1, *doc.Chunks[1].LessonNumber)
}

func TestSplitTextCoverageAndOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars
	chunks := SplitText(text, 100, 20)

	require.NotEmpty(t, chunks)

	// Every chunk respects the size bound.
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}

	// Consecutive chunks share the overlap region.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev[len(prev)-20:]
		assert.True(t, strings.HasPrefix(chunks[i], tail), "chunk %d should start with the previous tail", i)
	}

	// No input text is lost: stitching chunks (minus overlaps) rebuilds it.
	rebuilt := chunks[0]
	for i := 1; i < len(chunks); i++ {
		rebuilt += chunks[i][20:]
	}
	assert.Equal(t, text, rebuilt)
}

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 100, 20)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0])
}

func TestSplitTextMultibyteUnderLimitStaysWhole(t *testing.T) {
	// 60 runes but 120 bytes; the size bound is measured in runes, so this
	// must come back as a single chunk.
	text := strings.Repeat("é", 60)
	chunks := SplitText(text, 100, 20)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitTextRuneSafe(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 40)
	chunks := SplitText(text, 50, 10)

	for _, c := range chunks {
		// A mid-rune cut would produce invalid UTF-8.
		assert.True(t, strings.ToValidUTF8(c, "") == c)
	}
}
